package migrations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var miglist = []migrator{
	{
		name: "create_tasks",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "tasks") {
				return
			}

			_, err := pool.Exec(ctx, `CREATE TABLE tasks (
				task_id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				date TEXT NOT NULL,
				start_time TEXT NOT NULL,
				reminder_offset INTEGER,
				completed BOOLEAN NOT NULL DEFAULT false,
				notified BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`)

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "create_push_subscriptions",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "push_subscriptions") {
				return
			}

			_, err := pool.Exec(ctx, `CREATE TABLE push_subscriptions (
				endpoint TEXT PRIMARY KEY,
				auth TEXT NOT NULL,
				p256dh TEXT NOT NULL,
				sub_id TEXT NOT NULL UNIQUE,
				ua TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`)

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "index_candidate_tasks",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			// Partial index over exactly the scheduler's candidate set
			_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_candidates
				ON tasks (date, start_time)
				WHERE completed = false AND notified = false`)

			if err != nil {
				panic(err)
			}
		},
	},
}
