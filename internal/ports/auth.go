package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions. The store is a durable
// mirror of the last known session, not a second source of truth; the session
// manager's in-memory state stays authoritative for the process lifetime.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error

	// SaveIDToken stores a provider-issued identity token independently of
	// the session, expiring with it. Absence of the token is never an error.
	SaveIDToken(ctx context.Context, sessionID, idToken string, expiresAt time.Time) error
	GetIDToken(ctx context.Context, sessionID string) (string, error)
}

// SSOGateway initiates and completes the Oracle SSO flow.
type SSOGateway interface {
	// AuthCodeURL returns the provider authorization URL for the given
	// opaque state value.
	AuthCodeURL(state string) string

	// DecodeInline decodes the inline callback payload (base64 of a JSON
	// string) delivered in the redirect URL.
	DecodeInline(encoded string) (*domainauth.CallbackPayload, error)

	// ExchangeCode redeems a short-lived exchange code against the backend
	// token-exchange endpoint. This is the one network suspend point in the
	// callback flow.
	ExchangeCode(ctx context.Context, code string) (*domainauth.CallbackPayload, error)

	// VerifyIDToken verifies a provider-issued identity token when a
	// verifier is configured; a gateway without one accepts any token.
	VerifyIDToken(ctx context.Context, rawToken string) error
}

// TokenSource derives the bearer token for a freshly translated SSO session.
// The scheme is pluggable; see service.LegacyTokenSource for the historical
// locally derived form.
type TokenSource interface {
	BearerToken(profile domainauth.Profile) string
}
