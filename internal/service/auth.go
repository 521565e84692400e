package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/salesops/so-ui-api/internal/backend"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/domain/model"
	"github.com/salesops/so-ui-api/internal/ports"
)

// Post-login navigation targets.
const (
	PathHome     = "/"
	PathSignIn   = "/auth/signin"
	PathRegister = "/auth/register"
)

// LegacyTokenSource derives the backend bearer token locally from the
// profile key, the way the original Oracle integration did.
type LegacyTokenSource struct {
	Prefix string
}

// BearerToken returns prefix + profile ID.
func (s LegacyTokenSource) BearerToken(profile domainauth.Profile) string {
	return s.Prefix + profile.ID
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Sessions   *SessionManager
	Gateway    ports.SSOGateway
	Tokens     ports.TokenSource
	Backend    *backend.Client
	SessionTTL time.Duration // default 12h when zero
	Logger     *slog.Logger
	Now        func() time.Time // test hook
}

// AuthService orchestrates sign-in flows: the Oracle SSO callback, local
// credential sign-in against the backend, and logout.
type AuthService struct {
	sessions   *SessionManager
	gateway    ports.SSOGateway
	tokens     ports.TokenSource
	backend    *backend.Client
	sessionTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = LegacyTokenSource{Prefix: "oracle-auth-"}
	}
	return &AuthService{
		sessions:   opts.Sessions,
		gateway:    opts.Gateway,
		tokens:     tokens,
		backend:    opts.Backend,
		sessionTTL: ttl,
		logger:     logger,
		now:        now,
	}
}

// BeginSSOLogin returns the provider authorization URL for a new state value.
func (s *AuthService) BeginSSOLogin(state string) (string, error) {
	if state == "" {
		return "", errors.New("state is required")
	}
	return s.gateway.AuthCodeURL(state), nil
}

// TranslateProfile maps a provider profile onto session identity fields.
// Both callback carriers go through this single translation, so the mapping
// cannot drift between them. The role is always salesPerson: SSO is the
// sales-force door, and admin accounts come in through local sign-in.
func TranslateProfile(p domainauth.Profile) domainauth.Session {
	return domainauth.Session{
		UserID:       p.ID,
		Email:        p.SalesPersonID,
		FullName:     p.Name,
		PersonNumber: p.EmployeeNumber,
		Role:         domainauth.RoleSalesPerson,
		Registered:   p.Registered,
	}
}

// SSOCallbackInput carries the raw callback parameters. Empty string means
// the parameter was absent.
type SSOCallbackInput struct {
	InlineResponse string // base64 payload from the "response" parameter
	Code           string // short-lived exchange code
}

// SSOCallbackResult tells the handler where to navigate next.
type SSOCallbackResult struct {
	Session      domainauth.Session
	RedirectPath string
	// Flash is a one-shot message to surface after the redirect.
	Flash string
}

var (
	// ErrCallbackEmpty is returned when the callback carries neither an
	// inline payload nor an exchange code.
	ErrCallbackEmpty = errors.New("sso callback carried no payload and no code")
)

// CompleteSSOCallback runs the callback to completion. The inline payload
// takes precedence over the exchange code when both are present. Every
// failure path returns with no session written; the handler sends all of
// them back to the sign-in page. On success the session write-through has
// completed before this returns.
func (s *AuthService) CompleteSSOCallback(ctx context.Context, in SSOCallbackInput) (*SSOCallbackResult, error) {
	payload, err := s.resolvePayload(ctx, in)
	if err != nil {
		return nil, err
	}

	if validateErr := payload.Validate(); validateErr != nil {
		return nil, fmt.Errorf("sso payload: %w", validateErr)
	}

	if payload.Data.IDToken != "" {
		if verifyErr := s.gateway.VerifyIDToken(ctx, payload.Data.IDToken); verifyErr != nil {
			return nil, fmt.Errorf("sso id token: %w", verifyErr)
		}
	}

	profile := *payload.Data.SalesPerson
	session := TranslateProfile(profile)
	session.ID = generateSessionID()
	session.Token = s.tokens.BearerToken(profile)
	session.ExpiresAt = s.now().Add(s.sessionTTL)

	if setErr := s.sessions.Set(ctx, session); setErr != nil {
		return nil, fmt.Errorf("commit session: %w", setErr)
	}
	s.sessions.SaveIDToken(ctx, session.ID, payload.Data.IDToken, session.ExpiresAt)

	result := &SSOCallbackResult{Session: session}
	if session.Registered {
		result.RedirectPath = PathHome
		result.Flash = "Signed in successfully"
	} else {
		// Known to the provider but not to us yet; finish registration first.
		result.RedirectPath = PathRegister
		result.Flash = "Please complete your registration"
	}
	return result, nil
}

// resolvePayload picks the callback carrier: inline payload first, exchange
// code second.
func (s *AuthService) resolvePayload(ctx context.Context, in SSOCallbackInput) (*domainauth.CallbackPayload, error) {
	switch {
	case in.InlineResponse != "":
		payload, err := s.gateway.DecodeInline(in.InlineResponse)
		if err != nil {
			return nil, fmt.Errorf("inline payload: %w", err)
		}
		return payload, nil
	case in.Code != "":
		payload, err := s.gateway.ExchangeCode(ctx, in.Code)
		if err != nil {
			return nil, fmt.Errorf("code exchange: %w", err)
		}
		return payload, nil
	default:
		return nil, ErrCallbackEmpty
	}
}

// LocalSignIn authenticates email/password credentials against the backend
// and commits a session from the returned account.
func (s *AuthService) LocalSignIn(ctx context.Context, req model.SignInRequest) (domainauth.Session, error) {
	user, err := s.backend.SignIn(ctx, req)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("backend sign-in: %w", err)
	}
	if user.Token == "" {
		return domainauth.Session{}, errors.New("backend sign-in returned no token")
	}

	session := domainauth.Session{
		ID:           generateSessionID(),
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		PersonNumber: user.PersonNumber,
		Role:         user.Role,
		Token:        user.Token,
		Registered:   true,
		ExpiresAt:    s.now().Add(s.sessionTTL),
	}
	if setErr := s.sessions.Set(ctx, session); setErr != nil {
		return domainauth.Session{}, fmt.Errorf("commit session: %w", setErr)
	}
	return session, nil
}

// CompleteRegistration finishes the sign-up of an SSO-known user: the backend
// creates the account, then the live session is promoted to registered.
func (s *AuthService) CompleteRegistration(ctx context.Context, sessionID string, req model.RegisterRequest) error {
	sess, ok := s.sessions.Current(ctx, sessionID)
	if !ok {
		return errors.New("no live session")
	}
	if sess.Registered {
		return nil
	}

	if _, err := s.backend.Register(backend.WithBearer(ctx, sess.Token), req); err != nil {
		return fmt.Errorf("backend register: %w", err)
	}

	sess.Registered = true
	if err := s.sessions.Set(ctx, sess); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Logout clears the session. Repeating a logout is harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	s.sessions.Clear(ctx, sessionID)
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
