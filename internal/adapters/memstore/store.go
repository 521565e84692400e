// Package memstore provides an in-memory session store for development and
// tests. Sessions do not survive a process restart.
package memstore

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// ErrNotFound is returned when a session is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}

// Store keeps sessions in process memory behind a mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
	idTokens map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[string]domainauth.Session),
		idTokens: make(map[string]string),
	}
}

func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Store) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	if sess.Expired() {
		s.mu.Lock()
		delete(s.sessions, id)
		delete(s.idTokens, id)
		s.mu.Unlock()
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.idTokens, id)
	return nil
}

func (s *Store) SaveIDToken(_ context.Context, id, rawToken string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idTokens[id] = rawToken
	return nil
}

func (s *Store) GetIDToken(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.idTokens[id]
	if !ok {
		return "", ErrNotFound
	}
	return raw, nil
}
