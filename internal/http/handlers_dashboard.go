package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/salesops/so-ui-api/internal/backend"
	"github.com/salesops/so-ui-api/internal/service"
)

// DashboardHandlers serves the home-page summary widgets.
type DashboardHandlers struct {
	Svc      *service.DashboardService
	Sessions SessionClearer
	Cookies  cookieWriter
	Logger   *slog.Logger
}

// Summary returns every widget figure.
// GET /api/dashboard/summary.
func (h *DashboardHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	values, err := h.Svc.Summary(r.Context())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			invalidateSession(w, r, h.Sessions, h.Cookies)
			return
		}
		h.logger().ErrorContext(r.Context(), "dashboard summary failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "dashboard_unavailable",
			Err:     errors.New("dashboard summary unavailable"),
		})
		return
	}

	WriteData(w, http.StatusOK, map[string]any{"widgets": values})
}

func (h *DashboardHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
