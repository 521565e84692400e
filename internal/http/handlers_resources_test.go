package httpx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/so-ui-api/internal/backend"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/domain/model"
	apperrors "github.com/salesops/so-ui-api/internal/errors"
)

func newLeadHandlers(sessions SessionClearer) *crudHandlers[model.Lead, model.CreateLeadRequest, model.UpdateLeadRequest] {
	return &crudHandlers[model.Lead, model.CreateLeadRequest, model.UpdateLeadRequest]{
		sessions: sessions,
		listFn: func(_ context.Context, _ model.ListOptions) (backend.ListResult[model.Lead], error) {
			return backend.ListResult[model.Lead]{
				Items: []model.Lead{{ID: "l1", Name: "Acme expansion"}},
				Total: 1,
			}, nil
		},
		getFn: func(_ context.Context, id string) (model.Lead, error) {
			return model.Lead{ID: id, Name: "Acme expansion"}, nil
		},
		createFn: func(_ context.Context, req model.CreateLeadRequest) (model.Lead, error) {
			return model.Lead{ID: "l2", Name: req.Name}, nil
		},
		updateFn: func(_ context.Context, id string, _ model.UpdateLeadRequest) (model.Lead, error) {
			return model.Lead{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			return nil
		},
	}
}

func TestCrudHandlers_List(t *testing.T) {
	h := newLeadHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leads?limit=10&q=acme", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Acme expansion")
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestCrudHandlers_ListOptionsFromQuery(t *testing.T) {
	var got model.ListOptions
	h := newLeadHandlers(nil)
	h.listFn = func(_ context.Context, opts model.ListOptions) (backend.ListResult[model.Lead], error) {
		got = opts
		return backend.ListResult[model.Lead]{}, nil
	}

	req := httptest.NewRequest(
		http.MethodGet,
		"/api/leads?limit=25&offset=50&q=acme&status=open",
		nil,
	)
	h.List(httptest.NewRecorder(), req)

	assert.Equal(t, model.ListOptions{Limit: 25, Offset: 50, Q: "acme", Status: "open"}, got)
}

func TestCrudHandlers_Create(t *testing.T) {
	h := newLeadHandlers(nil)

	body := bytes.NewBufferString(`{"name":"New plant","company":"Acme"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", body)
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "New plant")
}

func TestCrudHandlers_Create_RejectsUnknownFields(t *testing.T) {
	h := newLeadHandlers(nil)

	body := bytes.NewBufferString(`{"name":"x","bogus_field":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", body)
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_json")
}

func TestCrudHandlers_BackendUnauthorizedInvalidatesSession(t *testing.T) {
	sess := testHandlerSession("sess-stale", domainauth.RoleSalesPerson, true)
	sessions := &mockSessionReader{sessions: map[string]domainauth.Session{"sess-stale": sess}}

	h := newLeadHandlers(sessions)
	h.cookies = cookieWriter{Domain: "sales.internal"}
	h.listFn = func(_ context.Context, _ model.ListOptions) (backend.ListResult[model.Lead], error) {
		return backend.ListResult[model.Lead]{}, backend.ErrUnauthorized
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-stale"})
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session_invalidated")
	assert.Equal(t, []string{"sess-stale"}, sessions.cleared)

	// The clear must mirror the configured cookie domain or the browser
	// keeps the stale cookie.
	cookie := findCookie(t, w, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Equal(t, "sales.internal", cookie.Domain)
}

func TestCrudHandlers_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", apperrors.Validation("name is required"), http.StatusBadRequest, "validation_failed"},
		{"not found", apperrors.NotFound("lead not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Conflict("lead already exists"), http.StatusConflict, "conflict"},
		{"forbidden", apperrors.Forbidden("not yours"), http.StatusForbidden, "forbidden"},
		{"upstream", apperrors.Upstream("backend exploded"), http.StatusBadGateway, "backend_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newLeadHandlers(nil)
			h.getFn = func(_ context.Context, _ string) (model.Lead, error) {
				return model.Lead{}, tt.err
			}

			req := httptest.NewRequest(http.MethodGet, "/api/leads/l1", nil)
			req.SetPathValue("id", "l1")
			w := httptest.NewRecorder()

			h.GetByID(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestCrudHandlers_Delete(t *testing.T) {
	deleted := ""
	h := newLeadHandlers(nil)
	h.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/leads/l9", nil)
	req.SetPathValue("id", "l9")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	assert.Equal(t, "l9", deleted)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestNavigation_ByRole(t *testing.T) {
	tests := []struct {
		role        domainauth.Role
		wantLabel   string
		unwantLabel string
	}{
		{domainauth.RoleSalesPerson, "Leads", "Users"},
		{domainauth.RoleAdmin, "Users", ""},
		{domainauth.RoleCustomer, "Sales Orders", "Leads"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			sess := testHandlerSession("sess-1", tt.role, true)
			req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
			req = req.WithContext(SetSessionInContext(req.Context(), &sess))
			w := httptest.NewRecorder()

			Navigation(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantLabel)
			if tt.unwantLabel != "" {
				assert.NotContains(t, w.Body.String(), tt.unwantLabel)
			}
		})
	}
}

func TestNavigation_NoSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	w := httptest.NewRecorder()

	Navigation(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}
