package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/salesops/so-ui-api/internal/backend"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/domain/model"
	"github.com/salesops/so-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Sessions     *service.SessionManager
	Dashboard    *service.DashboardService
	Backend      *backend.Client
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookies := cookieWriter{Domain: services.CookieDomain}

	authHandlers := &AuthHandlers{
		Svc:      services.Auth,
		Sessions: services.Sessions,
		Cookies:  cookies,
		Logger:   logger,
	}
	dashboardHandlers := &DashboardHandlers{
		Svc:      services.Dashboard,
		Sessions: services.Sessions,
		Cookies:  cookies,
		Logger:   logger,
	}

	authed := RequireAuthBrowser(services.Sessions)
	adminOnly := RequireRoleBrowser(services.Sessions, domainauth.RoleAdmin)

	registerAuthRoutes(mux, authHandlers, authed)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.Handle("GET /{$}", authed(homeHandler(cookies)))
	mux.Handle("GET /api/navigation", authed(http.HandlerFunc(Navigation)))
	mux.Handle("GET /api/dashboard/summary", authed(http.HandlerFunc(dashboardHandlers.Summary)))

	registerResourceRoutes(mux, services, cookies, authed, adminOnly)

	handler := BrowserDetection()(mux)
	handler = Logging(logger)(handler)
	return Recover(logger)(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, authed func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /auth/signin", h.SignIn)
	mux.HandleFunc("POST /auth/signin", h.SignInSubmit)
	mux.HandleFunc("GET /auth/sso/login", h.SSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", h.SSOCallback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.Handle("GET /auth/register", authed(http.HandlerFunc(h.Register)))
	mux.Handle("POST /auth/register", authed(http.HandlerFunc(h.RegisterSubmit)))
}

func registerResourceRoutes(
	mux *http.ServeMux,
	services RouterServices,
	cookies cookieWriter,
	authed func(http.Handler) http.Handler,
	adminOnly func(http.Handler) http.Handler,
) {
	c := services.Backend
	sessions := services.Sessions

	registerCRUD(mux, "/api/leads", authed, &crudHandlers[model.Lead, model.CreateLeadRequest, model.UpdateLeadRequest]{
		sessions: sessions,
		cookies:  cookies,
		listFn:   c.ListLeads,
		getFn:    c.GetLead,
		createFn: c.CreateLead,
		updateFn: c.UpdateLead,
		deleteFn: c.DeleteLead,
	})
	registerCRUD(mux, "/api/opportunities", authed, &crudHandlers[model.Opportunity, model.CreateOpportunityRequest, model.UpdateOpportunityRequest]{
		sessions: sessions,
		cookies:  cookies,
		listFn:   c.ListOpportunities,
		getFn:    c.GetOpportunity,
		createFn: c.CreateOpportunity,
		updateFn: c.UpdateOpportunity,
		deleteFn: c.DeleteOpportunity,
	})
	registerCRUD(mux, "/api/sales-requests", authed, &crudHandlers[model.SalesRequest, model.CreateSalesRequestRequest, model.UpdateSalesRequestRequest]{
		sessions: sessions,
		cookies:  cookies,
		listFn:   c.ListSalesRequests,
		getFn:    c.GetSalesRequest,
		createFn: c.CreateSalesRequest,
		updateFn: c.UpdateSalesRequest,
		deleteFn: c.DeleteSalesRequest,
	})
	registerCRUD(mux, "/api/sales-orders", authed, &crudHandlers[model.SalesOrder, model.CreateSalesOrderRequest, model.UpdateSalesOrderRequest]{
		sessions: sessions,
		cookies:  cookies,
		listFn:   c.ListSalesOrders,
		getFn:    c.GetSalesOrder,
		createFn: c.CreateSalesOrder,
		updateFn: c.UpdateSalesOrder,
		deleteFn: c.DeleteSalesOrder,
	})
	registerCRUD(mux, "/api/customers", authed, &crudHandlers[model.Customer, model.CreateCustomerRequest, model.UpdateCustomerRequest]{
		sessions: sessions,
		cookies:  cookies,
		listFn:   c.ListCustomers,
		getFn:    c.GetCustomer,
		createFn: c.CreateCustomer,
		updateFn: c.UpdateCustomer,
		deleteFn: c.DeleteCustomer,
	})

	// Account administration is admin territory.
	registerCRUD(mux, "/api/users", adminOnly, &crudHandlers[model.User, model.CreateUserRequest, model.UpdateUserRequest]{
		sessions: sessions,
		cookies:  cookies,
		listFn:   c.ListUsers,
		getFn:    c.GetUser,
		createFn: c.CreateUser,
		updateFn: c.UpdateUser,
		deleteFn: c.DeleteUser,
	})
}

// registerCRUD mounts the standard five routes for one resource.
func registerCRUD[T any, C any, U any](
	mux *http.ServeMux,
	base string,
	wrap func(http.Handler) http.Handler,
	h *crudHandlers[T, C, U],
) {
	if base == "" {
		panic("registerCRUD: base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	mux.Handle("POST "+base, wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET "+base, wrap(http.HandlerFunc(h.List)))
	mux.Handle("GET "+base+"/{id}", wrap(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT "+base+"/{id}", wrap(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE "+base+"/{id}", wrap(http.HandlerFunc(h.Delete)))
}

// homeHandler serves the shell data for the signed-in landing page.
func homeHandler(cookies cookieWriter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetUserSessionFromContext(r.Context())
		if !ok {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("sign in required")})
			return
		}
		WriteData(w, http.StatusOK, map[string]any{
			"user":  sessionUserView(*session),
			"flash": cookies.popFlash(w, r),
		})
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}
