package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cookie names used across handlers and middleware.
const (
	sessionCookieName  = "session_id"
	stateCookieName    = "sso_state"
	redirectCookieName = "post_login_redirect"
	flashCookieName    = "flash"
)

// cookieWriter centralizes cookie attributes so setting and clearing stay in sync.
type cookieWriter struct {
	Domain string
}

func (c cookieWriter) isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func (c cookieWriter) set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clear expires a cookie immediately, mirroring the attributes used when it
// was set so deletion works across browsers.
func (c cookieWriter) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores a one-shot message surfaced on the next page load.
func (c cookieWriter) setFlash(w http.ResponseWriter, r *http.Request, message string) {
	c.set(w, r, flashCookieName, url.QueryEscape(message), 300)
}

// popFlash reads and clears the one-shot message.
func (c cookieWriter) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	c.clear(w, r, flashCookieName)
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
