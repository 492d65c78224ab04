package subscriptions

import (
	"context"
	"sync"
	"time"

	"lifeos/types"

	"github.com/infinitybotlist/eureka/crypto"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu   sync.Mutex
	subs map[string]types.PushSubscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: map[string]types.PushSubscription{}}
}

func (s *MemoryStore) ListAll(_ context.Context) ([]types.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make([]types.PushSubscription, 0, len(s.subs))

	for _, sub := range s.subs {
		subs = append(subs, sub)
	}

	return subs, nil
}

func (s *MemoryStore) Upsert(_ context.Context, sub types.PushSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.subs[sub.Endpoint]; ok {
		sub.SubID = existing.SubID
		sub.CreatedAt = existing.CreatedAt
	} else {
		if sub.SubID == "" {
			sub.SubID = crypto.RandString(32)
		}
		sub.CreatedAt = time.Now()
	}

	s.subs[sub.Endpoint] = sub

	return nil
}

func (s *MemoryStore) DeleteByEndpoint(_ context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, endpoint)

	return nil
}
