package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and redis-less development.
// Expired entries are dropped lazily on access.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Create stores the session under a fresh random token and returns the token.
func (s *MemoryStore) Create(_ context.Context, sess Session, ttl time.Duration) (string, error) {
	token := newToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{sess: sess, expiresAt: s.now().Add(ttl)}
	return token, nil
}

// Get resolves a token to its session, or (nil, nil) when absent or expired.
func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return nil, nil
	}
	sess := entry.sess
	return &sess, nil
}

// Delete invalidates a token. Deleting an unknown token is a no-op.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
