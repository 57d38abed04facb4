package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCookie(r *http.Request) *http.Cookie {
	rec := httptest.NewRecorder()
	CookieManager{}.Set(rec, r, SessionCookieName, "tok", SessionCookieTTL)
	return rec.Result().Cookies()[0]
}

func TestCookieAttributes(t *testing.T) {
	c := setCookie(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(30*24*time.Hour/time.Second), c.MaxAge)
	assert.False(t, c.Secure)
}

func TestCookieSecure_TLS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	assert.True(t, setCookie(req).Secure)
}

func TestCookieSecure_ForwardedProto(t *testing.T) {
	cases := []struct {
		proto string
		want  bool
	}{
		{"https", true},
		{"HTTPS", true},
		{"https, http", true},
		{"http, https", false},
		{"http", false},
		{"", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.proto != "" {
			req.Header.Set("X-Forwarded-Proto", tc.proto)
		}
		assert.Equal(t, tc.want, setCookie(req).Secure, "proto=%q", tc.proto)
	}
}

func TestCookieClear_MatchesSetAttributes(t *testing.T) {
	mgr := CookieManager{Domain: "games.example"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	mgr.Clear(rec, req, StateCookieName)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, StateCookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "games.example", c.Domain)
	assert.Less(t, c.MaxAge, 0)
}
