package config

import "time"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// BaseURL pins the externally visible origin for OpenID realm and
	// return URLs. Empty derives it from forwarding headers per request.
	BaseURL string `env:"BASE_URL"`

	// CookieDomain scopes auth cookies. Empty means host-only.
	CookieDomain string `env:"COOKIE_DOMAIN"`

	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration.
func (c *HTTPConfig) Sanitize() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = 5 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}
