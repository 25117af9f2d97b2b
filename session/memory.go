package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	sessions map[string]Session
	lock     *sync.RWMutex
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		lock:     &sync.RWMutex{},
		now:      time.Now,
	}
}

// WithClock replaces the time source used to purge expired sessions.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Save(_ context.Context, token string, session Session, _ time.Duration) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()
	for t, existing := range s.sessions {
		if !now.Before(existing.ExpiresAt) {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = session

	return nil
}

func (s *MemoryStore) Load(_ context.Context, token string) (Session, error) {
	s.lock.RLock()
	session, ok := s.sessions[token]
	s.lock.RUnlock()

	if !ok {
		return Session{}, ErrNotFound
	}

	return session, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.lock.Lock()
	delete(s.sessions, token)
	s.lock.Unlock()

	return nil
}

func (s *MemoryStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.sessions)
}
