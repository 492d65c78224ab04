// Package subscriptions is the durable registry of browser push endpoints.
//
// Subscriptions are keyed by their push service endpoint. They are upserted
// when a client registers (a browser re-registering an existing endpoint
// refreshes its keys) and deleted once the push service reports the endpoint
// permanently gone.
package subscriptions

import (
	"context"
	"fmt"
	"strings"

	"lifeos/types"
	"lifeos/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/infinitybotlist/eureka/crypto"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	subColsArr = utils.GetCols(types.PushSubscription{})
	subCols    = strings.Join(subColsArr, ", ")
)

// Store is the subscription registry consumed by the reminder scheduler and
// the HTTP API. Implementations must make Upsert and DeleteByEndpoint atomic
// at the store level, as the scheduler and API mutate the same rows
// concurrently.
type Store interface {
	// ListAll returns every registered subscription.
	ListAll(ctx context.Context) ([]types.PushSubscription, error)

	// Upsert registers a subscription, replacing any existing registration
	// for the same endpoint.
	Upsert(ctx context.Context, sub types.PushSubscription) error

	// DeleteByEndpoint removes a subscription. Deleting an endpoint that is
	// not registered is not an error.
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

// PgStore is the Postgres-backed Store used in production.
type PgStore struct {
	Pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Pool: pool}
}

func (s *PgStore) ListAll(ctx context.Context) ([]types.PushSubscription, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+subCols+" FROM push_subscriptions ORDER BY created_at ASC")

	if err != nil {
		return nil, fmt.Errorf("error querying push_subscriptions: %w", err)
	}

	var subs []types.PushSubscription

	err = pgxscan.ScanAll(&subs, rows)

	if err != nil {
		return nil, fmt.Errorf("error scanning push_subscriptions: %w", err)
	}

	return subs, nil
}

func (s *PgStore) Upsert(ctx context.Context, sub types.PushSubscription) error {
	if sub.SubID == "" {
		sub.SubID = crypto.RandString(32)
	}

	_, err := s.Pool.Exec(
		ctx,
		`INSERT INTO push_subscriptions (endpoint, auth, p256dh, sub_id, ua) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint) DO UPDATE SET auth = EXCLUDED.auth, p256dh = EXCLUDED.p256dh, ua = EXCLUDED.ua`,
		sub.Endpoint,
		sub.Auth,
		sub.P256dh,
		sub.SubID,
		sub.UA,
	)

	if err != nil {
		return fmt.Errorf("error upserting subscription: %w", err)
	}

	return nil
}

func (s *PgStore) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := s.Pool.Exec(ctx, "DELETE FROM push_subscriptions WHERE endpoint = $1", endpoint)

	if err != nil {
		return fmt.Errorf("error deleting subscription: %w", err)
	}

	return nil
}
