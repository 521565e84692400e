package oraclesso

// Package oraclesso implements the Oracle Sales Cloud SSO handshake.
// Authorization starts at the provider's auth URL; the callback delivers
// either an inline base64 payload or a short-lived exchange code that the
// sales backend redeems for the same payload shape.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// CodeExchanger redeems an SSO exchange code at the sales backend.
// The backend API client satisfies this.
type CodeExchanger interface {
	ExchangeSSOCode(ctx context.Context, code string) (*domainauth.CallbackPayload, error)
}

// Gateway implements the ports.SSOGateway interface.
type Gateway struct {
	config    *oauth2.Config
	exchanger CodeExchanger
	logoutURL string

	// verifier is nil when no discovery URL is configured; in that case
	// VerifyIDToken accepts any token.
	verifier *gooidc.IDTokenVerifier
}

// GatewayConfig holds configuration for the SSO gateway.
type GatewayConfig struct {
	ClientID    string
	AuthURL     string
	RedirectURL string
	Scope       string
	// DiscoveryURL enables ID token verification when set.
	DiscoveryURL string
	LogoutURL    string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
	Exchanger    CodeExchanger
}

// NewGateway creates a new Oracle SSO gateway.
func NewGateway(ctx context.Context, cfg GatewayConfig) (*Gateway, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if cfg.Exchanger == nil {
		return nil, errors.New("code exchanger is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	g := &Gateway{
		exchanger: cfg.Exchanger,
		logoutURL: cfg.LogoutURL,
	}

	endpoint := oauth2.Endpoint{AuthURL: cfg.AuthURL}
	if cfg.DiscoveryURL != "" {
		octx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		op, err := gooidc.NewProvider(octx, issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		g.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.ClientID})
		if discovered := op.Endpoint(); discovered.AuthURL != "" && cfg.AuthURL == "" {
			endpoint = discovered
		}
	}
	if endpoint.AuthURL == "" {
		return nil, errors.New("auth URL is required")
	}

	g.config = &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURL,
		Scopes:      strings.Fields(cfg.Scope),
		Endpoint:    endpoint,
	}

	return g, nil
}

// AuthCodeURL returns the provider authorization URL for the given state.
func (g *Gateway) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_type", "code"),
	)
}

// DecodeInline decodes the base64-encoded JSON payload delivered in the
// callback's response parameter.
func (g *Gateway) DecodeInline(encoded string) (*domainauth.CallbackPayload, error) {
	if encoded == "" {
		return nil, errors.New("empty inline payload")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// URL transport may strip padding or substitute URL-safe chars.
		data, err = base64.RawURLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode inline payload: %w", err)
		}
	}

	var payload domainauth.CallbackPayload
	if unmarshalErr := json.Unmarshal(data, &payload); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal inline payload: %w", unmarshalErr)
	}
	return &payload, nil
}

// ExchangeCode redeems a short-lived exchange code at the sales backend.
func (g *Gateway) ExchangeCode(ctx context.Context, code string) (*domainauth.CallbackPayload, error) {
	if code == "" {
		return nil, errors.New("exchange code is required")
	}
	payload, err := g.exchanger.ExchangeSSOCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange sso code: %w", err)
	}
	return payload, nil
}

// VerifyIDToken verifies a provider-issued identity token. A gateway without
// a configured verifier accepts any token.
func (g *Gateway) VerifyIDToken(ctx context.Context, rawToken string) error {
	if g.verifier == nil {
		return nil
	}
	if _, err := g.verifier.Verify(ctx, rawToken); err != nil {
		return fmt.Errorf("verify id_token: %w", err)
	}
	return nil
}

// LogoutURL returns the provider logout URL, or empty when none is configured.
func (g *Gateway) LogoutURL() string { return g.logoutURL }

// GenerateState generates a cryptographically secure URL-safe random string
// of exact length, used as the OAuth state parameter.
func GenerateState(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
