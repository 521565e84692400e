package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/salesops/so-ui-api/internal/adapters/oraclesso"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/domain/model"
	"github.com/salesops/so-ui-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginSSOLogin(state string) (string, error)
	CompleteSSOCallback(ctx context.Context, in service.SSOCallbackInput) (*service.SSOCallbackResult, error)
	LocalSignIn(ctx context.Context, req model.SignInRequest) (domainauth.Session, error)
	CompleteRegistration(ctx context.Context, sessionID string, req model.RegisterRequest) error
	Logout(ctx context.Context, sessionID string)
}

// AuthHandlers provides HTTP handlers for the sign-in surface.
type AuthHandlers struct {
	Svc      AuthServiceInterface
	Sessions SessionReader
	Cookies  cookieWriter
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// SignIn serves the sign-in page data.
// GET /auth/signin?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	flash := h.Cookies.popFlash(w, r)
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	authenticated := getSessionFromRequest(r, h.Sessions) != nil
	WriteData(w, http.StatusOK, map[string]any{
		"authenticated": authenticated,
		"flash":         flash,
		"sso_login_url": "/auth/sso/login?redirect_uri=" + redirectURI,
		"redirect_uri":  redirectURI,
	})
}

// SignInSubmit authenticates local credentials.
// POST /auth/signin.
func (h *AuthHandlers) SignInSubmit(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.Svc.LocalSignIn(r.Context(), req)
	if err != nil {
		h.logger().WarnContext(r.Context(), "local sign-in failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "sign_in_failed",
			Err:     errors.New("invalid credentials"),
		})
		return
	}

	h.setSessionCookie(w, r, session)
	WriteData(w, http.StatusOK, map[string]any{
		"user":        sessionUserView(session),
		"redirect_to": safeRedirectPath(r.URL.Query().Get("redirect_uri")),
	})
}

// SSOLogin starts the Oracle handshake.
// GET /auth/sso/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) SSOLogin(w http.ResponseWriter, r *http.Request) {
	state, err := oraclesso.GenerateState(32)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	authURL, err := h.Svc.BeginSSOLogin(state)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.Cookies.set(w, r, stateCookieName, state, 600)
	if redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri")); redirectURI != "/" {
		h.Cookies.set(w, r, redirectCookieName, redirectURI, 600)
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// SSOCallback terminates the handshake. The provider delivers either an
// inline base64 payload ("response") or a short-lived exchange code ("code");
// an empty parameter counts as absent. Every failure lands back on the
// sign-in page with no session written.
// GET /auth/sso/callback.
func (h *AuthHandlers) SSOCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := service.SSOCallbackInput{
		InlineResponse: q.Get("response"),
		Code:           q.Get("code"),
	}

	if !h.callbackStateOK(r, q.Get("state")) {
		h.failSignIn(w, r, "Sign-in failed: state mismatch")
		return
	}

	result, err := h.Svc.CompleteSSOCallback(r.Context(), in)
	if err != nil {
		h.logger().WarnContext(r.Context(), "sso callback failed", "error", err)
		h.failSignIn(w, r, "Sign-in failed")
		return
	}

	// The session write-through has completed; it is safe to navigate.
	h.setSessionCookie(w, r, result.Session)
	h.Cookies.clear(w, r, stateCookieName)
	if result.Flash != "" {
		h.Cookies.setFlash(w, r, result.Flash)
	}

	redirectPath := result.RedirectPath
	if redirectPath == service.PathHome {
		// Land where the user was originally headed, when we know it.
		if cookie, cerr := r.Cookie(redirectCookieName); cerr == nil {
			redirectPath = safeRedirectPath(cookie.Value)
		}
	}
	h.Cookies.clear(w, r, redirectCookieName)

	// 303 plus no-store keeps the one-shot callback URL out of history
	// navigation and caches.
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, redirectPath, http.StatusSeeOther)
}

// callbackStateOK verifies the state round-trip when the carrier is the
// exchange code. Inline payloads are self-contained and some provider
// configurations omit state on that leg.
func (h *AuthHandlers) callbackStateOK(r *http.Request, state string) bool {
	if state == "" {
		return true
	}
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	return cookie.Value == state
}

func (h *AuthHandlers) failSignIn(w http.ResponseWriter, r *http.Request, message string) {
	h.Cookies.clear(w, r, stateCookieName)
	h.Cookies.clear(w, r, redirectCookieName)
	h.Cookies.setFlash(w, r, message)
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, service.PathSignIn, http.StatusSeeOther)
}

// Logout tears down the session.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		h.Svc.Logout(r.Context(), cookie.Value)
	}
	h.Cookies.clear(w, r, sessionCookieName)

	if !IsBrowserRequest(r) {
		WriteData(w, http.StatusOK, map[string]string{"redirect_to": service.PathSignIn})
		return
	}
	http.Redirect(w, r, service.PathSignIn, http.StatusFound)
}

// Status reports the current authentication state.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromRequest(r, h.Sessions)
	if session == nil {
		// Whatever cookie was presented no longer matches a live session.
		if _, err := r.Cookie(sessionCookieName); err == nil {
			h.Cookies.clear(w, r, sessionCookieName)
		}
		WriteData(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteData(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserView(*session),
		"expires_at":    session.ExpiresAt,
	})
}

// Register serves profile prefill for the registration page. The guard has
// already ensured a live session; unregistered is exactly who belongs here.
// GET /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	WriteData(w, http.StatusOK, map[string]any{
		"registered": session.Registered,
		"profile": map[string]string{
			"full_name":     session.FullName,
			"email":         session.Email,
			"person_number": session.PersonNumber,
		},
	})
}

// RegisterSubmit completes the account and promotes the session.
// POST /auth/register.
func (h *AuthHandlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.CompleteRegistration(r.Context(), session.ID, req); err != nil {
		h.logger().WarnContext(r.Context(), "registration failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "registration_failed",
			Err:     errors.New("registration failed"),
		})
		return
	}

	h.Cookies.setFlash(w, r, "Registration complete")
	WriteData(w, http.StatusOK, map[string]string{"redirect_to": service.PathHome})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	h.Cookies.set(w, r, sessionCookieName, s.ID, int(time.Until(s.ExpiresAt).Seconds()))
}

// sessionUserView is the session identity shape exposed to the browser.
func sessionUserView(s domainauth.Session) map[string]any {
	return map[string]any{
		"id":            s.UserID,
		"full_name":     s.FullName,
		"email":         s.Email,
		"person_number": s.PersonNumber,
		"role":          s.Role,
		"registered":    s.Registered,
	}
}
