package migrations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migrate runs every migration in order. Each migration is written to be
// re-runnable, so there is no version bookkeeping table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.SugaredLogger) {
	for _, m := range miglist {
		logger.Infow("Running migration", "name", m.name)
		m.fn(ctx, pool)
	}
}

// HasMigrated reports whether the schema the code expects is present.
func HasMigrated(ctx context.Context, pool *pgxpool.Pool) bool {
	return tableExists(ctx, pool, "tasks") &&
		tableExists(ctx, pool, "push_subscriptions") &&
		colExists(ctx, pool, "tasks", "notified")
}
