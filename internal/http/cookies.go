package httpx

import (
	"net/http"
	"strings"
	"time"
)

const (
	// SessionCookieName carries the long-lived session token.
	SessionCookieName = "admin_auth"
	// StateCookieName carries the short-lived login state token. It is
	// single-use: the callback clears it before validating anything else.
	StateCookieName = "steam_auth_state"

	// SessionCookieTTL matches the session token lifetime.
	SessionCookieTTL = 30 * 24 * time.Hour
	// StateCookieTTL bounds how long a login attempt stays redeemable.
	StateCookieTTL = 10 * time.Minute
)

// CookieManager centralizes cookie attributes so every set/clear pair agrees
// on path, domain and flags. Clearing with mismatched attributes leaves the
// cookie behind in some browsers.
type CookieManager struct {
	// Domain is optional; empty means host-only cookies.
	Domain string
}

// Set writes a cookie with the standard auth attributes.
func (c CookieManager) Set(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires a cookie using the same attributes it was set with.
func (c CookieManager) Clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// requestIsSecure reports whether the request arrived over HTTPS, directly
// or via a TLS-terminating proxy.
func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return isForwardedHTTPS(r)
}

// isForwardedHTTPS checks X-Forwarded-Proto, honoring only the first hop in
// a comma-separated list.
func isForwardedHTTPS(r *http.Request) bool {
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		return false
	}
	if idx := strings.IndexByte(proto, ','); idx >= 0 {
		proto = proto[:idx]
	}
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}
