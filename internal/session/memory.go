package session

import (
	"context"
	"sync"

	"realmbot/internal/domain"
)

// MemoryStore is an in-process Store used in tests and local
// development. State does not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]domain.Session)}
}

// Get returns the user's session, or an idle session if absent
func (s *MemoryStore) Get(_ context.Context, userID int64) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[userID]
	if !exists {
		return domain.IdleSession(), nil
	}
	return sess, nil
}

// Set overwrites the user's session
func (s *MemoryStore) Set(_ context.Context, userID int64, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
	return nil
}

// Clear removes the user's session
func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
