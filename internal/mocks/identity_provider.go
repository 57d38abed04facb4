package mocks

import (
	"context"
	"net/url"

	"github.com/gamevault/authcore/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.IdentityProvider = (*IdentityProvider)(nil)

// IdentityProvider is a hand-written double for the login flow. Unset funcs
// fall back to deterministic defaults.
type IdentityProvider struct {
	AuthURLFunc        func(realm, returnTo, state string) (string, error)
	VerifyCallbackFunc func(ctx context.Context, params url.Values) (string, error)

	// DefaultSteamID is returned by VerifyCallback when no func is set.
	DefaultSteamID string
}

func (m *IdentityProvider) AuthURL(realm, returnTo, state string) (string, error) {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(realm, returnTo, state)
	}
	ret, err := url.Parse(returnTo)
	if err != nil {
		return "", err
	}
	q := ret.Query()
	q.Set("state", state)
	ret.RawQuery = q.Encode()
	return "https://mock-idp/login?" + url.Values{
		"openid.return_to": {ret.String()},
		"openid.realm":     {realm},
	}.Encode(), nil
}

func (m *IdentityProvider) VerifyCallback(ctx context.Context, params url.Values) (string, error) {
	if m.VerifyCallbackFunc != nil {
		return m.VerifyCallbackFunc(ctx, params)
	}
	return m.DefaultSteamID, nil
}
