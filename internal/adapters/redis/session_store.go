package redis

// Package redis provides Redis-based adapters for the sales back-office.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// SessionStore is a Redis-based persisted session store for production use.
// Sessions and their optional ID tokens are stored under separate keys so a
// session can be rehydrated without the token and vice versa. TTL semantics
// follow the session ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("refuse to persist session: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.prefix + sess.ID
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// A stored partial session means a write-through raced a code change;
	// treat it the same as absent rather than resurrecting half a login.
	if validateErr := sess.Validate(); validateErr != nil {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup partial session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + id
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	return s.client.Del(ctx, s.idTokenKey(id)).Err()
}

// SaveIDToken stores the raw OIDC ID token alongside a session so logout can
// hand it back to the identity provider. The token inherits the session TTL.
func (s *SessionStore) SaveIDToken(ctx context.Context, id, rawToken string, expiresAt time.Time) error {
	if id == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}
	return s.client.Set(ctx, s.idTokenKey(id), rawToken, ttl).Err()
}

// GetIDToken returns the raw ID token for a session, or ErrNotFound.
func (s *SessionStore) GetIDToken(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrNotFound
	}
	raw, err := s.client.Get(ctx, s.idTokenKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return raw, nil
}

func (s *SessionStore) idTokenKey(id string) string {
	return s.prefix + "idtoken:" + id
}

// ErrNotFound is returned when a session is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}
