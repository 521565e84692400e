package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/salesops/so-ui-api/internal/backend"
	"github.com/salesops/so-ui-api/internal/domain/model"
	apperrors "github.com/salesops/so-ui-api/internal/errors"
)

// SessionClearer is the slice of the session manager the 401 policy needs.
type SessionClearer interface {
	Clear(ctx context.Context, id string)
}

// invalidateSession implements the 401 policy: when the backend rejects the
// bearer token the local session is stale, so it is cleared and the caller is
// told to re-authenticate.
func invalidateSession(w http.ResponseWriter, r *http.Request, sessions SessionClearer, cookies cookieWriter) {
	if session, ok := GetUserSessionFromContext(r.Context()); ok && sessions != nil {
		sessions.Clear(r.Context(), session.ID)
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		// The clear must carry the same domain the cookie was set with or
		// the browser keeps the stale one.
		cookies.clear(w, r, sessionCookieName)
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "session_invalidated",
		Err:     errors.New("session is no longer valid, sign in again"),
	})
}

// writeResourceError maps client/backend errors onto the response envelope.
func writeResourceError(w http.ResponseWriter, r *http.Request, sessions SessionClearer, cookies cookieWriter, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		invalidateSession(w, r, sessions, cookies)
		return
	}

	params := ErrorParams{Code: http.StatusBadGateway, ErrCode: "backend_error", Err: err}
	switch {
	case apperrors.IsValidation(err):
		params.Code = http.StatusBadRequest
		params.ErrCode = "validation_failed"
	case apperrors.IsNotFound(err):
		params.Code = http.StatusNotFound
		params.ErrCode = "not_found"
	case apperrors.IsConflict(err):
		params.Code = http.StatusConflict
		params.ErrCode = "conflict"
	case apperrors.IsForbidden(err):
		params.Code = http.StatusForbidden
		params.ErrCode = "forbidden"
	}
	WriteError(w, params)
}

// crudHandlers adapts one backend resource onto HTTP. The function fields are
// bound to the typed backend client methods at route registration.
type crudHandlers[T any, C any, U any] struct {
	sessions SessionClearer
	cookies  cookieWriter

	listFn   func(ctx context.Context, opts model.ListOptions) (backend.ListResult[T], error)
	getFn    func(ctx context.Context, id string) (T, error)
	createFn func(ctx context.Context, req C) (T, error)
	updateFn func(ctx context.Context, id string, req U) (T, error)
	deleteFn func(ctx context.Context, id string) error
}

func listOptionsFromQuery(r *http.Request) model.ListOptions {
	q := r.URL.Query()
	opts := model.ListOptions{
		Q:      q.Get("q"),
		Status: q.Get("status"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		opts.Offset = offset
	}
	return opts
}

func (h *crudHandlers[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.listFn(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		writeResourceError(w, r, h.sessions, h.cookies, err)
		return
	}
	WriteData(w, http.StatusOK, result)
}

func (h *crudHandlers[T, C, U]) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.getFn(r.Context(), r.PathValue("id"))
	if err != nil {
		writeResourceError(w, r, h.sessions, h.cookies, err)
		return
	}
	WriteData(w, http.StatusOK, item)
}

func (h *crudHandlers[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !DecodeJSON(w, r, &req) {
		return
	}
	item, err := h.createFn(r.Context(), req)
	if err != nil {
		writeResourceError(w, r, h.sessions, h.cookies, err)
		return
	}
	WriteData(w, http.StatusCreated, item)
}

func (h *crudHandlers[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	var req U
	if !DecodeJSON(w, r, &req) {
		return
	}
	item, err := h.updateFn(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeResourceError(w, r, h.sessions, h.cookies, err)
		return
	}
	WriteData(w, http.StatusOK, item)
}

func (h *crudHandlers[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteFn(r.Context(), r.PathValue("id")); err != nil {
		writeResourceError(w, r, h.sessions, h.cookies, err)
		return
	}
	WriteData(w, http.StatusOK, map[string]bool{"deleted": true})
}
