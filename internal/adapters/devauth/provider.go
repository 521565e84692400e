package devauth

// Package devauth provides a config-driven SSO gateway for local development.
// It short-circuits the Oracle handshake by redirecting straight back to our
// own callback with an inline payload carrying the configured identity.

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// Config controls the dev auth provider behavior.
type Config struct {
	UserID     string
	Email      string
	FullName   string
	Registered bool
}

// Provider implements ports.SSOGateway for local development.
type Provider struct {
	profile domainauth.Profile
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{
		profile: domainauth.Profile{
			ID:             cfg.UserID,
			SalesPersonID:  cfg.Email,
			Name:           cfg.FullName,
			EmployeeNumber: cfg.UserID,
			Registered:     cfg.Registered,
		},
	}, nil
}

func (p *Provider) payload() *domainauth.CallbackPayload {
	profile := p.profile
	return &domainauth.CallbackPayload{
		Success: true,
		Data:    domainauth.CallbackData{SalesPerson: &profile},
	}
}

// AuthCodeURL returns a local callback URL carrying the dev identity as an
// inline payload, bypassing the provider entirely.
func (p *Provider) AuthCodeURL(state string) string {
	data, err := json.Marshal(p.payload())
	if err != nil {
		// Profile is a plain struct; marshal cannot fail in practice.
		return "/auth/signin"
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return "/auth/sso/callback?response=" + url.QueryEscape(encoded) + "&state=" + url.QueryEscape(state)
}

// DecodeInline decodes the inline payload the same way the production gateway does.
func (p *Provider) DecodeInline(encoded string) (*domainauth.CallbackPayload, error) {
	if encoded == "" {
		return nil, errors.New("empty inline payload")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
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

// ExchangeCode ignores the code and returns the configured identity.
func (p *Provider) ExchangeCode(_ context.Context, _ string) (*domainauth.CallbackPayload, error) {
	return p.payload(), nil
}

// VerifyIDToken accepts any token in dev mode.
func (p *Provider) VerifyIDToken(_ context.Context, _ string) error {
	return nil
}
