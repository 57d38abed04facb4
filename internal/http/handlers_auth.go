package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/ports"
	"github.com/gamevault/authcore/internal/service"
	"github.com/gamevault/authcore/internal/token"
)

const (
	callbackPath    = "/auth/steam/return"
	verifyTimeout   = 10 * time.Second
	stateNonceBytes = 12
)

// StateCodec is the token codec for login state claims.
type StateCodec = token.Codec[auth.StateClaims, *auth.StateClaims]

// AuthHandlers serves the login flow and session endpoints.
type AuthHandlers struct {
	Provider ports.IdentityProvider
	Resolver *service.Resolver
	States   *StateCodec
	StateTTL time.Duration
	Cookies  CookieManager

	// BaseURL pins the externally visible origin. Empty means derive it
	// from forwarding headers per request.
	BaseURL string

	// SuccessRedirect and ErrorRedirect are same-origin paths the browser
	// lands on after the callback.
	SuccessRedirect string
	ErrorRedirect   string

	Logger *slog.Logger
}

// SteamLogin starts the login flow: mint a state token, pin it in a cookie,
// and redirect the browser to the identity provider.
func (h *AuthHandlers) SteamLogin(w http.ResponseWriter, r *http.Request) {
	base := h.resolveBaseURL(r)
	if base == "" {
		// Without a trustworthy origin the return URL could be attacker
		// chosen. Abort rather than guess.
		h.Logger.Error("login rejected: external base URL unavailable")
		h.failLogin(w, r)
		return
	}

	nonce := make([]byte, stateNonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		h.Logger.Error("login rejected: entropy unavailable", "error", err)
		h.failLogin(w, r)
		return
	}

	state, err := h.States.Create(auth.StateClaims{
		Nonce: base64.RawURLEncoding.EncodeToString(nonce),
	}, h.StateTTL)
	if err != nil {
		h.Logger.Error("login rejected: state token", "error", err)
		h.failLogin(w, r)
		return
	}

	authURL, err := h.Provider.AuthURL(base, base+callbackPath, state)
	if err != nil {
		h.Logger.Error("login rejected: provider URL", "error", err)
		h.failLogin(w, r)
		return
	}

	h.Cookies.Set(w, r, StateCookieName, state, StateCookieTTL)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// SteamCallback finishes the login flow. The state cookie is cleared before
// any validation so each login attempt is redeemable exactly once. Every
// failure takes the same generic error redirect; causes go to the log only.
func (h *AuthHandlers) SteamCallback(w http.ResponseWriter, r *http.Request) {
	queryState := r.URL.Query().Get("state")

	var cookieState string
	if cookie, err := r.Cookie(StateCookieName); err == nil {
		cookieState = cookie.Value
	}
	h.Cookies.Clear(w, r, StateCookieName)

	if queryState == "" || cookieState == "" {
		h.Logger.Warn("callback rejected: state missing",
			"have_query", queryState != "", "have_cookie", cookieState != "")
		h.failLogin(w, r)
		return
	}

	queryClaims, err := h.States.Verify(queryState)
	if err != nil {
		h.Logger.Warn("callback rejected: query state invalid", "error", err)
		h.failLogin(w, r)
		return
	}
	cookieClaims, err := h.States.Verify(cookieState)
	if err != nil {
		h.Logger.Warn("callback rejected: cookie state invalid", "error", err)
		h.failLogin(w, r)
		return
	}
	if subtle.ConstantTimeCompare([]byte(queryClaims.Nonce), []byte(cookieClaims.Nonce)) != 1 {
		h.Logger.Warn("callback rejected: state mismatch")
		h.failLogin(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), verifyTimeout)
	defer cancel()

	steamID, err := h.Provider.VerifyCallback(ctx, r.URL.Query())
	if err != nil {
		h.Logger.Warn("callback rejected: assertion", "error", err)
		h.failLogin(w, r)
		return
	}
	if !auth.ValidSteamID(steamID) {
		h.Logger.Warn("callback rejected: malformed steam id")
		h.failLogin(w, r)
		return
	}

	user := auth.User{SteamID: steamID}
	if profile, ok := h.Resolver.LookupProfile(ctx, steamID); ok {
		user.DisplayName = profile.DisplayName
		user.Avatar = profile.Avatar
	}

	session, err := h.Resolver.IssueSession(user)
	if err != nil {
		h.Logger.Error("callback rejected: session token", "error", err)
		h.failLogin(w, r)
		return
	}

	h.Cookies.Set(w, r, SessionCookieName, session, SessionCookieTTL)
	h.Logger.Info("login completed", "steam_id", steamID)
	http.Redirect(w, r, h.SuccessRedirect, http.StatusFound)
}

// Me returns the viewer for the current request. Always 200: clients render
// the login state from the body, not from status codes.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ViewerFromContext(r.Context()))
}

// Logout clears both auth cookies. Idempotent; logging out while logged out
// is fine.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w, r, SessionCookieName)
	h.Cookies.Clear(w, r, StateCookieName)
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// failLogin clears both auth cookies and sends the browser to the generic
// error page. Deliberately cause-free: callback failure details are not for
// the address bar.
func (h *AuthHandlers) failLogin(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w, r, StateCookieName)
	h.Cookies.Clear(w, r, SessionCookieName)
	http.Redirect(w, r, h.ErrorRedirect, http.StatusFound)
}

// resolveBaseURL returns the externally visible origin, or "" when it cannot
// be determined safely.
func (h *AuthHandlers) resolveBaseURL(r *http.Request) string {
	if h.BaseURL != "" {
		return h.BaseURL
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	if host == "" {
		return ""
	}
	scheme := "http"
	if requestIsSecure(r) {
		scheme = "https"
	}
	return scheme + "://" + host
}
