package steamopenid

// Package steamopenid implements the OpenID 2.0 relying-party flow against
// the Steam community endpoint in stateless ("dumb") mode: no association,
// every assertion is verified with a check_authentication round trip.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
)

const (
	defaultEndpoint = "https://steamcommunity.com/openid/login"
	defaultTimeout  = 10 * time.Second

	openIDNS               = "http://specs.openid.net/auth/2.0"
	openIDIdentifierSelect = "http://specs.openid.net/auth/2.0/identifier_select"
)

// claimedIDPattern matches the fixed identity path shape. Anything else is
// rejected, whatever the provider asserts.
var claimedIDPattern = regexp.MustCompile(`/id/(\d{17})$`)

// ErrAssertionInvalid means the provider refused to vouch for the assertion.
var ErrAssertionInvalid = errors.New("steamopenid: assertion not valid")

// Provider implements ports.IdentityProvider for Steam.
type Provider struct {
	httpClient *http.Client
	endpoint   string
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the HTTP client (for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// WithEndpoint overrides the provider endpoint (for testing).
func WithEndpoint(endpoint string) Option {
	return func(p *Provider) { p.endpoint = endpoint }
}

// New creates a Steam OpenID provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   defaultEndpoint,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthURL builds the checkid_setup redirect. The state token rides in
// return_to as a query parameter so the callback can be bound to the
// request that initiated it.
func (p *Provider) AuthURL(realm, returnTo, state string) (string, error) {
	if realm == "" || returnTo == "" {
		return "", errors.New("steamopenid: realm and return URL are required")
	}

	ret, err := url.Parse(returnTo)
	if err != nil {
		return "", fmt.Errorf("parse return URL: %w", err)
	}
	q := ret.Query()
	q.Set("state", state)
	ret.RawQuery = q.Encode()

	params := url.Values{
		"openid.ns":         {openIDNS},
		"openid.mode":       {"checkid_setup"},
		"openid.return_to":  {ret.String()},
		"openid.realm":      {realm},
		"openid.identity":   {openIDIdentifierSelect},
		"openid.claimed_id": {openIDIdentifierSelect},
	}
	return p.endpoint + "?" + params.Encode(), nil
}

// VerifyCallback validates the assertion in the callback parameters and
// returns the asserted Steam64 ID.
func (p *Provider) VerifyCallback(ctx context.Context, params url.Values) (string, error) {
	claimedID := params.Get("openid.claimed_id")
	if claimedID == "" {
		claimedID = params.Get("openid.identity")
	}
	if claimedID == "" {
		return "", &auth.ValidationError{Field: "openid.claimed_id", Reason: "missing"}
	}

	steamID, err := extractSteamID(claimedID)
	if err != nil {
		return "", err
	}

	if err := p.checkAuthentication(ctx, params); err != nil {
		return "", err
	}

	return steamID, nil
}

// checkAuthentication replays all openid.* parameters to the provider with
// mode=check_authentication. Only an is_valid:true body accepts the
// assertion; trusting the callback without this round trip allows forgery.
func (p *Provider) checkAuthentication(ctx context.Context, params url.Values) error {
	verify := url.Values{}
	for key, values := range params {
		if !strings.HasPrefix(key, "openid.") || len(values) == 0 {
			continue
		}
		verify.Set(key, values[0])
	}
	verify.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint,
		strings.NewReader(verify.Encode()))
	if err != nil {
		return fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", auth.ErrUpstreamTimeout, err)
		}
		return &auth.UpstreamError{Op: "steamopenid.check_authentication", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return &auth.UpstreamError{Op: "steamopenid.check_authentication", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &auth.UpstreamError{Op: "steamopenid.check_authentication", Status: resp.StatusCode}
	}

	if !strings.Contains(string(body), "is_valid:true") {
		return ErrAssertionInvalid
	}

	return nil
}

func extractSteamID(claimedID string) (string, error) {
	u, err := url.Parse(claimedID)
	if err != nil {
		return "", &auth.ValidationError{Field: "openid.claimed_id", Reason: "not a URL"}
	}
	matches := claimedIDPattern.FindStringSubmatch(u.Path)
	if len(matches) != 2 {
		return "", &auth.ValidationError{Field: "openid.claimed_id", Reason: "unexpected identity shape"}
	}
	return matches[1], nil
}
