package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOracle uses the Oracle Sales Cloud SSO handshake.
	AuthModeOracle AuthMode = "oracle"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oracle", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oracle, mock)", v)
	}
}

// OracleSSOConfig contains the Oracle Sales Cloud SSO handshake configuration.
type OracleSSOConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"salesops"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:""`
	AuthURL      string `env:"AUTH_URL"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile"`
	// DiscoveryURL enables OIDC ID token verification when set.
	// Leave empty to skip verification (the payload is accepted as-is).
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID     string `env:"USER_ID"     envDefault:"dev-user"`
	Email      string `env:"EMAIL"       envDefault:"dev@example.com"`
	FullName   string `env:"FULL_NAME"   envDefault:"Dev User"`
	Registered bool   `env:"REGISTERED"  envDefault:"true"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oracle"`

	// OracleSSO configuration (used when Mode=oracle).
	OracleSSO OracleSSOConfig `envPrefix:"ORACLE_SSO_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is the lifetime of a browser session.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// TokenPrefix is prepended to the profile key when minting legacy
	// bearer tokens for the backend API.
	TokenPrefix string `env:"TOKEN_PREFIX" envDefault:"oracle-auth-"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	a.TokenPrefix = strings.TrimSpace(a.TokenPrefix)
}
