package config

import (
	"strings"
	"time"
)

// AuthConfig groups session token and login flow configuration.
type AuthConfig struct {
	// SessionSecret signs session and state tokens. Required; rotating it
	// invalidates every outstanding session at once.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionTTL is the session token lifetime.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// StateTTL bounds how long a login attempt stays redeemable.
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"10m"`

	// SteamAPIKey enables the player summary API. Empty falls back to the
	// unauthenticated XML profile endpoint.
	SteamAPIKey string `env:"STEAM_API_KEY"`

	// SuccessRedirect and ErrorRedirect are same-origin paths the browser
	// lands on after the login callback.
	SuccessRedirect string `env:"SUCCESS_REDIRECT" envDefault:"/"`
	ErrorRedirect   string `env:"ERROR_REDIRECT"   envDefault:"/login?error=1"`
}

// Sanitize clamps redirects to same-origin paths. Absolute URLs here would
// turn the callback into an open redirect.
func (c *AuthConfig) Sanitize() {
	if !isLocalPath(c.SuccessRedirect) {
		c.SuccessRedirect = "/"
	}
	if !isLocalPath(c.ErrorRedirect) {
		c.ErrorRedirect = "/login?error=1"
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 720 * time.Hour
	}
	if c.StateTTL <= 0 {
		c.StateTTL = 10 * time.Minute
	}
}

// isLocalPath accepts "/..." but rejects "//host" and scheme-bearing values.
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	return !strings.HasPrefix(p, "//")
}
