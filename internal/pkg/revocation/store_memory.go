package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process revocation record, used in tests and
// single-instance deployments without Redis. Expired entries are pruned
// lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	_, ok := s.revoked[jti]
	return ok, nil
}

// prune drops entries whose token has reached natural expiry. Caller holds mu.
func (s *MemoryStore) prune() {
	now := time.Now()
	for jti, until := range s.revoked {
		if now.After(until) {
			delete(s.revoked, jti)
		}
	}
}
