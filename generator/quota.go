package generator

import (
	"context"
	"sync"
)

// QuotaStore is the per-user generation-limit collaborator. Read and
// Increment are separate calls with no transaction between them; two
// concurrent finalizations can both pass the read before either increments.
// That race is accepted: admission here is best-effort, not strict.
type QuotaStore interface {
	Read(ctx context.Context, userID string) (Quota, error)
	Increment(ctx context.Context, userID string) error
}

// MemoryQuotaStore keeps per-user counters in memory with a shared limit.
// It stands in for the externally owned quota record.
type MemoryQuotaStore struct {
	mu    sync.Mutex
	limit int
	used  map[string]int
}

func NewMemoryQuotaStore(limit int) *MemoryQuotaStore {
	return &MemoryQuotaStore{limit: limit, used: make(map[string]int)}
}

func (s *MemoryQuotaStore) Read(_ context.Context, userID string) (Quota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := s.used[userID]
	remaining := s.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Quota{Used: used, Limit: s.limit, Remaining: remaining}, nil
}

func (s *MemoryQuotaStore) Increment(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[userID]++
	return nil
}
