package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/so-ui-api/config"
	"github.com/salesops/so-ui-api/internal/adapters/memstore"
)

func testServicesConfig(auth config.AuthConfig) ServicesConfig {
	return ServicesConfig{
		Config: config.AppConfig{
			Auth: auth,
			Backend: config.BackendConfig{
				BaseURL:               "http://localhost:3000",
				Timeout:               time.Second,
				DashboardLeadsExpr:    "data.total",
				DashboardOppsExpr:     "data.total",
				DashboardOrdersExpr:   "data.total",
				DashboardRequestsExpr: "data.total",
			},
		},
		Store:  memstore.New(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBuildServices_MockMode(t *testing.T) {
	cfg := testServicesConfig(config.AuthConfig{
		Mode: config.AuthModeMock,
		DevAuth: config.DevAuthConfig{
			UserID:     "dev-user",
			Email:      "dev@example.com",
			FullName:   "Dev User",
			Registered: true,
		},
		SessionTTL:  time.Hour,
		TokenPrefix: "oracle-auth-",
	})

	services, err := BuildServices(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, services.Backend)
	assert.NotNil(t, services.Sessions)
	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Dashboard)
}

func TestBuildServices_OracleModeRequiresAuthURL(t *testing.T) {
	cfg := testServicesConfig(config.AuthConfig{
		Mode: config.AuthModeOracle,
		OracleSSO: config.OracleSSOConfig{
			ClientID:    "salesops",
			RedirectURL: "http://localhost:8080/auth/sso/callback",
			// No AuthURL and no DiscoveryURL: the gateway has nowhere to
			// send the browser.
		},
	})

	_, err := BuildServices(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth URL")
}

func TestBuildServices_MockModeRequiresIdentity(t *testing.T) {
	cfg := testServicesConfig(config.AuthConfig{
		Mode:    config.AuthModeMock,
		DevAuth: config.DevAuthConfig{},
	})

	_, err := BuildServices(context.Background(), cfg)
	require.Error(t, err)
}

func TestBuildServices_InvalidDashboardExpr(t *testing.T) {
	cfg := testServicesConfig(config.AuthConfig{
		Mode: config.AuthModeMock,
		DevAuth: config.DevAuthConfig{
			UserID: "dev-user",
			Email:  "dev@example.com",
		},
	})
	cfg.Config.Backend.DashboardLeadsExpr = "data.["

	_, err := BuildServices(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
}

func TestBuildSessionStore_MemoryFallback(t *testing.T) {
	result, err := BuildSessionStore(
		config.RedisConfig{Enabled: false},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	assert.NotNil(t, result.Store)
	assert.Nil(t, result.RedisClient)
}
