package presence

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory. Used when no Redis is
// configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time // userID -> expiry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory presence store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &MemoryStore{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Heartbeat marks the user online and refreshes the expiry.
func (s *MemoryStore) Heartbeat(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = s.now().Add(s.ttl)
	return nil
}

// SetOffline removes the user's presence entry immediately.
func (s *MemoryStore) SetOffline(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}

// IsOnline reports whether the user has an unexpired presence entry.
func (s *MemoryStore) IsOnline(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiry, ok := s.entries[userID]
	return ok && s.now().Before(expiry), nil
}

// OnlineStatus resolves presence for a batch of users.
func (s *MemoryStore) OnlineStatus(ctx context.Context, userIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]bool, len(userIDs))
	now := s.now()
	for _, id := range userIDs {
		expiry, ok := s.entries[id]
		result[id] = ok && now.Before(expiry)
	}
	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
