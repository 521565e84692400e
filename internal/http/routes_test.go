package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/so-ui-api/internal/adapters/memstore"
	"github.com/salesops/so-ui-api/internal/backend"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/service"
)

func newTestRouter(t *testing.T, backendSrv *httptest.Server) (http.Handler, *service.SessionManager) {
	t.Helper()

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		Store:  memstore.New(),
		Logger: slog.Default(),
	})

	baseURL := "http://backend.invalid"
	if backendSrv != nil {
		baseURL = backendSrv.URL
	}
	client, err := backend.NewClient(backend.ClientOptions{BaseURL: baseURL})
	require.NoError(t, err)

	router := NewRouter(RouterServices{
		Sessions: sessions,
		Backend:  client,
		Logger:   slog.Default(),
	})
	return router, sessions
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_UnauthenticatedAPICallGets401(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRouter_UnauthenticatedPageRedirectsToSignIn(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/signin?redirect_uri=%2F", w.Header().Get("Location"))
}

func TestRouter_AuthenticatedRequestReachesBackendWithBearer(t *testing.T) {
	var gotAuthz string
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthz = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"items":[],"total":0}}`))
	}))
	defer backendSrv.Close()

	router, sessions := newTestRouter(t, backendSrv)

	sess := domainauth.Session{
		ID:        "router-sess",
		UserID:    "u42",
		Email:     "jane.doe@example.com",
		Role:      domainauth.RoleSalesPerson,
		Token:     "oracle-auth-42",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Set(context.Background(), sess))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "router-sess"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer oracle-auth-42", gotAuthz)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestRouter_UsersRequiresAdmin(t *testing.T) {
	router, sessions := newTestRouter(t, nil)

	sess := domainauth.Session{
		ID:        "sales-sess",
		UserID:    "u42",
		Role:      domainauth.RoleSalesPerson,
		Token:     "oracle-auth-42",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Set(context.Background(), sess))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sales-sess"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRouter_NavigationForSession(t *testing.T) {
	router, sessions := newTestRouter(t, nil)

	sess := domainauth.Session{
		ID:        "nav-sess",
		UserID:    "u42",
		Role:      domainauth.RoleAdmin,
		Token:     "oracle-auth-42",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Set(context.Background(), sess))

	req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "nav-sess"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Users")
}
