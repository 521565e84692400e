package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SSOGateway   = (*MockSSOGateway)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.TokenSource  = (*StaticTokenSource)(nil)
)

// MockSSOGateway simulates the SSO provider for tests with deterministic
// payloads and inline decoding hooks.
type MockSSOGateway struct {
	AuthCodeURLFunc   func(state string) string
	DecodeInlineFunc  func(encoded string) (*domainauth.CallbackPayload, error)
	ExchangeCodeFunc  func(ctx context.Context, code string) (*domainauth.CallbackPayload, error)
	VerifyIDTokenFunc func(ctx context.Context, rawToken string) error

	// Deterministic values for predictable testing
	AuthURL        string
	DefaultProfile domainauth.Profile

	// Internal state tracking for deterministic behavior
	exchangeCalls int
}

// NewMockSSOGateway creates a MockSSOGateway with sensible defaults.
func NewMockSSOGateway() *MockSSOGateway {
	return &MockSSOGateway{
		AuthURL: "https://mock-sso/authorize",
		DefaultProfile: domainauth.Profile{
			ID:             "42",
			SalesPersonID:  "u42",
			Name:           "Mock Seller",
			EmployeeNumber: "E9",
			Registered:     true,
		},
	}
}

func (m *MockSSOGateway) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-sso/authorize"
	}
	return fmt.Sprintf("%s?state=%s", authURL, state)
}

func (m *MockSSOGateway) DecodeInline(encoded string) (*domainauth.CallbackPayload, error) {
	if m.DecodeInlineFunc != nil {
		return m.DecodeInlineFunc(encoded)
	}
	if encoded == "" {
		return nil, errors.New("empty inline payload")
	}
	return m.defaultPayload(), nil
}

func (m *MockSSOGateway) ExchangeCode(
	ctx context.Context,
	code string,
) (*domainauth.CallbackPayload, error) {
	if m.ExchangeCodeFunc != nil {
		return m.ExchangeCodeFunc(ctx, code)
	}
	if code == "" {
		return nil, errors.New("empty exchange code")
	}
	m.exchangeCalls++
	return m.defaultPayload(), nil
}

func (m *MockSSOGateway) VerifyIDToken(ctx context.Context, rawToken string) error {
	if m.VerifyIDTokenFunc != nil {
		return m.VerifyIDTokenFunc(ctx, rawToken)
	}
	return nil
}

// ExchangeCalls reports how many default exchanges were served.
func (m *MockSSOGateway) ExchangeCalls() int { return m.exchangeCalls }

func (m *MockSSOGateway) defaultPayload() *domainauth.CallbackPayload {
	profile := m.DefaultProfile
	if profile.ID == "" {
		profile = domainauth.Profile{
			ID:            "42",
			SalesPersonID: "u42",
			Name:          "Mock Seller",
			Registered:    true,
		}
	}
	return &domainauth.CallbackPayload{
		Success: true,
		Data:    domainauth.CallbackData{SalesPerson: &profile},
	}
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
	idTokens map[string]string
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
		idTokens: make(map[string]string),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	delete(m.idTokens, id)
	return nil
}

func (m *MemorySessionStore) SaveIDToken(
	_ context.Context,
	sessionID, idToken string,
	_ time.Time,
) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.idTokens[sessionID] = idToken
	return nil
}

func (m *MemorySessionStore) GetIDToken(_ context.Context, sessionID string) (string, error) {
	token, ok := m.idTokens[sessionID]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// StaticTokenSource derives bearer tokens with a fixed prefix.
type StaticTokenSource struct {
	Prefix string
}

func (s StaticTokenSource) BearerToken(profile domainauth.Profile) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "mock-auth-"
	}
	return prefix + profile.ID
}
