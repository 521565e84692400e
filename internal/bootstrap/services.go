package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/salesops/so-ui-api/config"
	"github.com/salesops/so-ui-api/internal/adapters/devauth"
	"github.com/salesops/so-ui-api/internal/adapters/oraclesso"
	"github.com/salesops/so-ui-api/internal/backend"
	"github.com/salesops/so-ui-api/internal/ports"
	"github.com/salesops/so-ui-api/internal/service"
)

// ServiceContainer holds every constructed application service.
type ServiceContainer struct {
	Backend   *backend.Client
	Sessions  *service.SessionManager
	Auth      *service.AuthService
	Dashboard *service.DashboardService
}

// ServicesConfig contains dependencies for service construction.
type ServicesConfig struct {
	Config config.AppConfig
	Store  ports.SessionStore
	Logger *slog.Logger
}

// BuildServices wires the backend client, session manager, auth service, and
// dashboard service from configuration.
func BuildServices(ctx context.Context, cfg ServicesConfig) (ServiceContainer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := backend.NewClient(backend.ClientOptions{
		BaseURL: cfg.Config.Backend.BaseURL,
		Timeout: cfg.Config.Backend.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create backend client: %w", err)
	}

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		Store:  cfg.Store,
		Logger: logger,
	})

	gateway, err := buildSSOGateway(ctx, cfg.Config.Auth, client, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Sessions:   sessions,
		Gateway:    gateway,
		Tokens:     service.LegacyTokenSource{Prefix: cfg.Config.Auth.TokenPrefix},
		Backend:    client,
		SessionTTL: cfg.Config.Auth.SessionTTL,
		Logger:     logger,
	})

	dashboard, err := service.NewDashboardService(service.DashboardServiceOptions{
		Backend: client,
		Widgets: dashboardWidgets(cfg.Config.Backend),
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create dashboard service: %w", err)
	}

	return ServiceContainer{
		Backend:   client,
		Sessions:  sessions,
		Auth:      auth,
		Dashboard: dashboard,
	}, nil
}

// buildSSOGateway selects the SSO gateway for the configured auth mode.
//
//nolint:ireturn // returning ports.SSOGateway lets the mode pick the implementation.
func buildSSOGateway(
	ctx context.Context,
	cfg config.AuthConfig,
	exchanger oraclesso.CodeExchanger,
	logger *slog.Logger,
) (ports.SSOGateway, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		logger.Warn("mock auth mode enabled; do not use in production")
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:     cfg.DevAuth.UserID,
			Email:      cfg.DevAuth.Email,
			FullName:   cfg.DevAuth.FullName,
			Registered: cfg.DevAuth.Registered,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOracle:
		gw, err := oraclesso.NewGateway(ctx, oraclesso.GatewayConfig{
			ClientID:     cfg.OracleSSO.ClientID,
			AuthURL:      cfg.OracleSSO.AuthURL,
			RedirectURL:  cfg.OracleSSO.RedirectURL,
			Scope:        cfg.OracleSSO.Scope,
			DiscoveryURL: cfg.OracleSSO.DiscoveryURL,
			LogoutURL:    cfg.OracleSSO.LogoutURL,
			Exchanger:    exchanger,
		})
		if err != nil {
			return nil, fmt.Errorf("create oracle sso gateway: %w", err)
		}
		return gw, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

// dashboardWidgets maps the configured extraction expressions onto the four
// home-page figures.
func dashboardWidgets(cfg config.BackendConfig) []service.WidgetSpec {
	return []service.WidgetSpec{
		{Name: "leads", Path: "/api/leads?limit=1", Expr: cfg.DashboardLeadsExpr},
		{Name: "opportunities", Path: "/api/opportunities?limit=1", Expr: cfg.DashboardOppsExpr},
		{Name: "sales_orders", Path: "/api/sales-orders?limit=1", Expr: cfg.DashboardOrdersExpr},
		{Name: "sales_requests", Path: "/api/sales-requests?limit=1", Expr: cfg.DashboardRequestsExpr},
	}
}
