package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/ports"
)

// SessionObserver is notified after a session change commits. A nil session
// means the session was cleared. Observers run synchronously in subscription
// order; a slow observer delays the caller, not other observers' order.
type SessionObserver func(ctx context.Context, sess *domainauth.Session)

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Store  ports.SessionStore
	Logger *slog.Logger
}

// SessionManager holds the authoritative in-memory view of live sessions and
// mirrors every change through to the persisted store. Reads fall back to the
// store once per unknown ID so sessions survive a restart; a corrupt or
// partial stored record is treated as no session at all.
type SessionManager struct {
	store  ports.SessionStore
	logger *slog.Logger

	mu        sync.RWMutex
	sessions  map[string]domainauth.Session
	observers []SessionObserver
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		store:    opts.Store,
		logger:   logger,
		sessions: make(map[string]domainauth.Session),
	}
}

// Subscribe registers an observer for session changes. Observers registered
// earlier are always notified earlier.
func (m *SessionManager) Subscribe(obs SessionObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, obs)
}

// Current returns the live session for id. A memory miss falls back to the
// persisted store and rehydrates on success. Expired sessions are cleared.
func (m *SessionManager) Current(ctx context.Context, id string) (domainauth.Session, bool) {
	if id == "" {
		return domainauth.Session{}, false
	}

	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		stored, err := m.store.Get(ctx, id)
		if err != nil {
			return domainauth.Session{}, false
		}
		if validateErr := stored.Validate(); validateErr != nil {
			// Half a session in storage is worse than none.
			m.logger.Warn("dropping invalid stored session", "session_id", id, "error", validateErr)
			if deleteErr := m.store.Delete(ctx, id); deleteErr != nil {
				m.logger.Warn("delete invalid stored session", "session_id", id, "error", deleteErr)
			}
			return domainauth.Session{}, false
		}
		m.mu.Lock()
		m.sessions[id] = stored
		m.mu.Unlock()
		sess = stored
	}

	if sess.Expired() {
		m.Clear(ctx, id)
		return domainauth.Session{}, false
	}
	return sess, true
}

// Set commits a session: memory first, then write-through to the store.
// The call does not return until the write-through attempt has completed, so
// a caller may navigate immediately afterwards. A storage failure is logged
// and does not fail the login; the in-memory session remains authoritative.
func (m *SessionManager) Set(ctx context.Context, sess domainauth.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	observers := append([]SessionObserver(nil), m.observers...)
	m.mu.Unlock()

	if err := m.store.Save(ctx, sess); err != nil {
		m.logger.Error("session write-through failed", "session_id", sess.ID, "error", err)
	}

	for _, obs := range observers {
		obs(ctx, &sess)
	}
	return nil
}

// SaveIDToken mirrors a provider identity token into the store. The token is
// auxiliary; failure to store it never fails a login.
func (m *SessionManager) SaveIDToken(ctx context.Context, sessionID, rawToken string, expiresAt time.Time) {
	if rawToken == "" {
		return
	}
	if err := m.store.SaveIDToken(ctx, sessionID, rawToken, expiresAt); err != nil {
		m.logger.Warn("store id token", "session_id", sessionID, "error", err)
	}
}

// IDToken returns the stored provider identity token, if any.
func (m *SessionManager) IDToken(ctx context.Context, sessionID string) (string, bool) {
	raw, err := m.store.GetIDToken(ctx, sessionID)
	if err != nil {
		return "", false
	}
	return raw, true
}

// Clear removes a session from memory and storage. Clearing an absent
// session is a no-op and does not notify observers, so repeated clears are
// safe (idempotent).
func (m *SessionManager) Clear(ctx context.Context, id string) {
	if id == "" {
		return
	}

	m.mu.Lock()
	_, existed := m.sessions[id]
	delete(m.sessions, id)
	observers := append([]SessionObserver(nil), m.observers...)
	m.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Warn("delete stored session", "session_id", id, "error", err)
	}

	if !existed {
		return
	}
	for _, obs := range observers {
		obs(ctx, nil)
	}
}
