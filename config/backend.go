package config

import (
	"strings"
	"time"
)

// BackendConfig contains configuration for the sales backend REST API.
type BackendConfig struct {
	// BaseURL is the root of the backend API (e.g., "https://api.sales.example.com").
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// Timeout bounds every backend request, including the SSO code exchange.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// Dashboard widget extraction expressions (JMESPath over the
	// backend summary payloads). Overridable per deployment.
	DashboardLeadsExpr    string `env:"DASHBOARD_LEADS_EXPR"    envDefault:"data.total"`
	DashboardOppsExpr     string `env:"DASHBOARD_OPPS_EXPR"     envDefault:"data.total"`
	DashboardOrdersExpr   string `env:"DASHBOARD_ORDERS_EXPR"   envDefault:"data.total"`
	DashboardRequestsExpr string `env:"DASHBOARD_REQUESTS_EXPR" envDefault:"data.total"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}
