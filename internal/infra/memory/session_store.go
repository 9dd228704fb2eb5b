package memory

import (
	"context"
	"sync"
	"time"

	"factcheck-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Entries expire ttl after their last save; a zero ttl keeps them forever.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	state     *domain.SessionState
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return NewSessionStoreWithClock(ttl, time.Now)
}

// NewSessionStoreWithClock is test-only for deterministic expiry.
func NewSessionStoreWithClock(ttl time.Duration, clock func() time.Time) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]storedSession),
	}
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.SessionState, error) {
	now := s.clock()

	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(entry, now) {
		s.mu.Lock()
		if current, ok := s.sessions[id]; ok && s.expired(current, now) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return entry.state.Clone(), nil
}

func (s *SessionStore) Save(_ context.Context, state *domain.SessionState) error {
	entry := storedSession{state: state.Clone()}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = entry
	s.evictExpiredLocked()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are held, expired ones included until evicted.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(entry storedSession, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !entry.expiresAt.After(now)
}

func (s *SessionStore) evictExpiredLocked() {
	now := s.clock()
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
}
