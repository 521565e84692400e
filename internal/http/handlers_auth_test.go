package httpx

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/domain/model"
	"github.com/salesops/so-ui-api/internal/service"
)

// mockAuthService is a test double for the auth service.
type mockAuthService struct {
	beginSSOLoginFunc        func(state string) (string, error)
	completeSSOCallbackFunc  func(ctx context.Context, in service.SSOCallbackInput) (*service.SSOCallbackResult, error)
	localSignInFunc          func(ctx context.Context, req model.SignInRequest) (domainauth.Session, error)
	completeRegistrationFunc func(ctx context.Context, sessionID string, req model.RegisterRequest) error
	logoutFunc               func(ctx context.Context, sessionID string)

	loggedOut []string
}

func (m *mockAuthService) BeginSSOLogin(state string) (string, error) {
	if m.beginSSOLoginFunc != nil {
		return m.beginSSOLoginFunc(state)
	}
	return "https://sso.example.com/authorize?state=" + state, nil
}

func (m *mockAuthService) CompleteSSOCallback(
	ctx context.Context,
	in service.SSOCallbackInput,
) (*service.SSOCallbackResult, error) {
	if m.completeSSOCallbackFunc != nil {
		return m.completeSSOCallbackFunc(ctx, in)
	}
	return &service.SSOCallbackResult{
		Session:      testHandlerSession("sess-1", domainauth.RoleSalesPerson, true),
		RedirectPath: service.PathHome,
		Flash:        "Signed in successfully",
	}, nil
}

func (m *mockAuthService) LocalSignIn(
	ctx context.Context,
	req model.SignInRequest,
) (domainauth.Session, error) {
	if m.localSignInFunc != nil {
		return m.localSignInFunc(ctx, req)
	}
	return testHandlerSession("sess-local", domainauth.RoleSalesPerson, true), nil
}

func (m *mockAuthService) CompleteRegistration(
	ctx context.Context,
	sessionID string,
	req model.RegisterRequest,
) error {
	if m.completeRegistrationFunc != nil {
		return m.completeRegistrationFunc(ctx, sessionID, req)
	}
	return nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) {
	m.loggedOut = append(m.loggedOut, sessionID)
	if m.logoutFunc != nil {
		m.logoutFunc(ctx, sessionID)
	}
}

// mockSessionReader is a test double for the session manager read path.
type mockSessionReader struct {
	sessions map[string]domainauth.Session
	cleared  []string
}

func (m *mockSessionReader) Current(_ context.Context, id string) (domainauth.Session, bool) {
	sess, ok := m.sessions[id]
	return sess, ok
}

func (m *mockSessionReader) Clear(_ context.Context, id string) {
	m.cleared = append(m.cleared, id)
	delete(m.sessions, id)
}

func testHandlerSession(id string, role domainauth.Role, registered bool) domainauth.Session {
	return domainauth.Session{
		ID:           id,
		UserID:       "u42",
		Email:        "jane.doe@example.com",
		FullName:     "Jane Doe",
		PersonNumber: "E9",
		Role:         role,
		Token:        "oracle-auth-42",
		Registered:   registered,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func newAuthHandlers(svc *mockAuthService, sessions *mockSessionReader) *AuthHandlers {
	if sessions == nil {
		sessions = &mockSessionReader{sessions: map[string]domainauth.Session{}}
	}
	return &AuthHandlers{Svc: svc, Sessions: sessions}
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	resp := w.Result()
	defer resp.Body.Close()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandlers_SSOLogin_RedirectsToProvider(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/login", nil)
	w := httptest.NewRecorder()

	handlers.SSOLogin(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "https://sso.example.com/authorize?state=")

	state := findCookie(t, w, stateCookieName)
	require.NotNil(t, state)
	assert.Len(t, state.Value, 32)

	// No destination beyond home, so no redirect cookie.
	assert.Nil(t, findCookie(t, w, redirectCookieName))
}

func TestAuthHandlers_SSOLogin_PreservesRedirectURI(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/login?redirect_uri=/opportunities", nil)
	w := httptest.NewRecorder()

	handlers.SSOLogin(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	redirect := findCookie(t, w, redirectCookieName)
	require.NotNil(t, redirect)
	assert.Equal(t, "/opportunities", redirect.Value)
}

func TestAuthHandlers_SSOLogin_RejectsAbsoluteRedirect(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(
		http.MethodGet,
		"/auth/sso/login?redirect_uri=https://evil.example.com/",
		nil,
	)
	w := httptest.NewRecorder()

	handlers.SSOLogin(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	// Unsafe target collapses to home, which needs no cookie.
	assert.Nil(t, findCookie(t, w, redirectCookieName))
}

func TestAuthHandlers_SSOCallback_InlineSuccess(t *testing.T) {
	var gotInput service.SSOCallbackInput
	svc := &mockAuthService{
		completeSSOCallbackFunc: func(_ context.Context, in service.SSOCallbackInput) (*service.SSOCallbackResult, error) {
			gotInput = in
			return &service.SSOCallbackResult{
				Session:      testHandlerSession("sess-inline", domainauth.RoleSalesPerson, true),
				RedirectPath: service.PathHome,
				Flash:        "Signed in successfully",
			}, nil
		},
	}
	handlers := newAuthHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?response=eyJmYWtlIjp0cnVlfQ", nil)
	w := httptest.NewRecorder()

	handlers.SSOCallback(w, req)

	assert.Equal(t, "eyJmYWtlIjp0cnVlfQ", gotInput.InlineResponse)
	assert.Empty(t, gotInput.Code)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	session := findCookie(t, w, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "sess-inline", session.Value)
	assert.Positive(t, session.MaxAge)

	flash := findCookie(t, w, flashCookieName)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Value, "Signed")
}

func TestAuthHandlers_SSOCallback_UnregisteredGoesToRegister(t *testing.T) {
	svc := &mockAuthService{
		completeSSOCallbackFunc: func(_ context.Context, _ service.SSOCallbackInput) (*service.SSOCallbackResult, error) {
			return &service.SSOCallbackResult{
				Session:      testHandlerSession("sess-new", domainauth.RoleSalesPerson, false),
				RedirectPath: service.PathRegister,
				Flash:        "Please complete your registration",
			}, nil
		},
	}
	handlers := newAuthHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?response=eyJmYWtlIjp0cnVlfQ", nil)
	// A stored destination must not pre-empt the registration flow.
	req.AddCookie(&http.Cookie{Name: redirectCookieName, Value: "/leads"})
	w := httptest.NewRecorder()

	handlers.SSOCallback(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, service.PathRegister, w.Header().Get("Location"))

	flash := findCookie(t, w, flashCookieName)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Value, "registration")
}

func TestAuthHandlers_SSOCallback_HonorsStoredRedirect(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?response=eyJmYWtlIjp0cnVlfQ", nil)
	req.AddCookie(&http.Cookie{Name: redirectCookieName, Value: "/sales-orders"})
	w := httptest.NewRecorder()

	handlers.SSOCallback(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sales-orders", w.Header().Get("Location"))

	// The stored destination is one-shot.
	redirect := findCookie(t, w, redirectCookieName)
	require.NotNil(t, redirect)
	assert.Equal(t, -1, redirect.MaxAge)
}

func TestAuthHandlers_SSOCallback_StateMismatch(t *testing.T) {
	called := false
	svc := &mockAuthService{
		completeSSOCallbackFunc: func(_ context.Context, _ service.SSOCallbackInput) (*service.SSOCallbackResult, error) {
			called = true
			return nil, errors.New("should not be reached")
		},
	}
	handlers := newAuthHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?code=abc&state=wrong", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})
	w := httptest.NewRecorder()

	handlers.SSOCallback(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, service.PathSignIn, w.Header().Get("Location"))
	assert.Nil(t, findCookie(t, w, sessionCookieName))
}

func TestAuthHandlers_SSOCallback_StateMatch(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?code=abc&state=expected", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})
	w := httptest.NewRecorder()

	handlers.SSOCallback(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.NotNil(t, findCookie(t, w, sessionCookieName))
}

func TestAuthHandlers_SSOCallback_ServiceFailure(t *testing.T) {
	svc := &mockAuthService{
		completeSSOCallbackFunc: func(_ context.Context, _ service.SSOCallbackInput) (*service.SSOCallbackResult, error) {
			return nil, errors.New("exchange failed")
		},
	}
	handlers := newAuthHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?code=bad", nil)
	w := httptest.NewRecorder()

	handlers.SSOCallback(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, service.PathSignIn, w.Header().Get("Location"))
	assert.Nil(t, findCookie(t, w, sessionCookieName))

	flash := findCookie(t, w, flashCookieName)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Value, "failed")
}

func TestAuthHandlers_SignInSubmit_Success(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	body := bytes.NewBufferString(`{"email":"jane@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", body)
	w := httptest.NewRecorder()

	handlers.SignInSubmit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	session := findCookie(t, w, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "sess-local", session.Value)
}

func TestAuthHandlers_SignInSubmit_BadCredentials(t *testing.T) {
	svc := &mockAuthService{
		localSignInFunc: func(_ context.Context, _ model.SignInRequest) (domainauth.Session, error) {
			return domainauth.Session{}, errors.New("rejected")
		},
	}
	handlers := newAuthHandlers(svc, nil)

	body := bytes.NewBufferString(`{"email":"jane@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", body)
	w := httptest.NewRecorder()

	handlers.SignInSubmit(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "sign_in_failed")
	assert.Nil(t, findCookie(t, w, sessionCookieName))
}

func TestAuthHandlers_Logout_Browser(t *testing.T) {
	svc := &mockAuthService{}
	handlers := newAuthHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Equal(t, []string{"sess-1"}, svc.loggedOut)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, service.PathSignIn, w.Header().Get("Location"))

	session := findCookie(t, w, sessionCookieName)
	require.NotNil(t, session)
	assert.Empty(t, session.Value)
	assert.Equal(t, -1, session.MaxAge)
}

func TestAuthHandlers_Logout_API(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect_to":"/auth/signin"`)
}

func TestAuthHandlers_Logout_NoCookieStillSucceeds(t *testing.T) {
	svc := &mockAuthService{}
	handlers := newAuthHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Empty(t, svc.loggedOut)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandlers_Status_Authenticated(t *testing.T) {
	sessions := &mockSessionReader{sessions: map[string]domainauth.Session{
		"sess-1": testHandlerSession("sess-1", domainauth.RoleSalesPerson, true),
	}}
	handlers := newAuthHandlers(&mockAuthService{}, sessions)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), "jane.doe@example.com")
}

func TestAuthHandlers_Status_StaleCookieCleared(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "gone"})
	w := httptest.NewRecorder()

	handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	session := findCookie(t, w, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, -1, session.MaxAge)
}

func TestAuthHandlers_SignIn_ShowsFlash(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/signin", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: "Sign-in%20failed"})
	w := httptest.NewRecorder()

	handlers.SignIn(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign-in failed")

	flash := findCookie(t, w, flashCookieName)
	require.NotNil(t, flash)
	assert.Equal(t, -1, flash.MaxAge)
}

func TestAuthHandlers_Register_PrefillsProfile(t *testing.T) {
	handlers := newAuthHandlers(&mockAuthService{}, nil)

	sess := testHandlerSession("sess-1", domainauth.RoleSalesPerson, false)
	req := httptest.NewRequest(http.MethodGet, "/auth/register", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))
	w := httptest.NewRecorder()

	handlers.Register(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), `"registered":false`)
}

func TestAuthHandlers_RegisterSubmit_Success(t *testing.T) {
	var gotSessionID string
	svc := &mockAuthService{
		completeRegistrationFunc: func(_ context.Context, sessionID string, _ model.RegisterRequest) error {
			gotSessionID = sessionID
			return nil
		},
	}
	handlers := newAuthHandlers(svc, nil)

	sess := testHandlerSession("sess-1", domainauth.RoleSalesPerson, false)
	body := bytes.NewBufferString(`{"password":"hunter2","phone":"555-0100"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))
	w := httptest.NewRecorder()

	handlers.RegisterSubmit(w, req)

	assert.Equal(t, "sess-1", gotSessionID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect_to":"/"`)
	require.NotNil(t, findCookie(t, w, flashCookieName))
}

func TestAuthHandlers_RegisterSubmit_BackendFailure(t *testing.T) {
	svc := &mockAuthService{
		completeRegistrationFunc: func(_ context.Context, _ string, _ model.RegisterRequest) error {
			return errors.New("backend rejected registration")
		},
	}
	handlers := newAuthHandlers(svc, nil)

	sess := testHandlerSession("sess-1", domainauth.RoleSalesPerson, false)
	body := bytes.NewBufferString(`{"password":"hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))
	w := httptest.NewRecorder()

	handlers.RegisterSubmit(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "registration_failed")
}
