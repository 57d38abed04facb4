package steamweb

// Package steamweb resolves public Steam profiles. The primary path is the
// API-key gated GetPlayerSummaries endpoint (batched, at most 100 IDs per
// call); without a key it falls back to the unauthenticated per-profile XML
// document.

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/gamevault/authcore/internal/domain/auth"
)

const (
	defaultSummaryURL = "https://api.steampowered.com/ISteamUser/GetPlayerSummaries/v2/"
	defaultProfileURL = "https://steamcommunity.com/profiles/"
	defaultTimeout    = 5 * time.Second

	// maxBatchSize is the provider's hard per-request ID limit.
	maxBatchSize = 100
)

// playersExpr plucks the player array out of the summary response envelope.
const playersExpr = "response.players"

// Client implements ports.ProfileProvider against the Steam Web API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	summaryURL string
	profileURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithSummaryURL overrides the player summary endpoint (for testing).
func WithSummaryURL(u string) Option {
	return func(cl *Client) { cl.summaryURL = u }
}

// WithProfileURL overrides the XML profile base URL (for testing).
func WithProfileURL(u string) Option {
	return func(cl *Client) { cl.profileURL = u }
}

// New creates a profile client. An empty apiKey disables the summary API
// and routes every lookup through the XML fallback.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		summaryURL: defaultSummaryURL,
		profileURL: defaultProfileURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type playerSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	AvatarFull  string `json:"avatarfull"`
	ProfileURL  string `json:"profileurl"`
}

// Summaries resolves profiles for the given Steam64 IDs. Malformed IDs are
// skipped; requests are chunked to the provider limit.
func (c *Client) Summaries(ctx context.Context, steamIDs []string) ([]auth.SteamProfile, error) {
	ids := make([]string, 0, len(steamIDs))
	for _, id := range steamIDs {
		if auth.ValidSteamID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if c.apiKey == "" {
		return c.summariesFromXML(ctx, ids)
	}

	profiles := make([]auth.SteamProfile, 0, len(ids))
	for start := 0; start < len(ids); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := c.fetchSummaryBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, batch...)
	}
	return profiles, nil
}

func (c *Client) fetchSummaryBatch(ctx context.Context, ids []string) ([]auth.SteamProfile, error) {
	params := url.Values{
		"key":      {c.apiKey},
		"steamids": {strings.Join(ids, ",")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.summaryURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build summary request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", auth.ErrUpstreamTimeout, err)
		}
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Status: resp.StatusCode}
	}

	return decodePlayers(body)
}

// decodePlayers extracts response.players from the summary envelope.
func decodePlayers(body []byte) ([]auth.SteamProfile, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Err: err}
	}

	plucked, err := jmespath.Search(playersExpr, doc)
	if err != nil {
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Err: err}
	}
	if plucked == nil {
		return nil, nil
	}

	raw, err := json.Marshal(plucked)
	if err != nil {
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Err: err}
	}
	var players []playerSummary
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, &auth.UpstreamError{Op: "steamweb.summaries", Err: err}
	}

	profiles := make([]auth.SteamProfile, 0, len(players))
	for _, p := range players {
		if !auth.ValidSteamID(p.SteamID) {
			continue
		}
		profiles = append(profiles, auth.SteamProfile{
			SteamID:     p.SteamID,
			DisplayName: p.PersonaName,
			Avatar:      p.AvatarFull,
			ProfileURL:  p.ProfileURL,
		})
	}
	return profiles, nil
}

// xmlProfile is the unauthenticated community profile document.
type xmlProfile struct {
	XMLName    xml.Name `xml:"profile"`
	SteamID64  string   `xml:"steamID64"`
	SteamID    string   `xml:"steamID"`
	AvatarFull string   `xml:"avatarFull"`
}

func (c *Client) summariesFromXML(ctx context.Context, ids []string) ([]auth.SteamProfile, error) {
	profiles := make([]auth.SteamProfile, 0, len(ids))
	for _, id := range ids {
		profile, err := c.fetchProfileXML(ctx, id)
		if err != nil {
			// Best-effort endpoint: skip individual failures, keep the rest.
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (c *Client) fetchProfileXML(ctx context.Context, steamID string) (auth.SteamProfile, error) {
	var zero auth.SteamProfile

	reqURL := c.profileURL + steamID + "?xml=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return zero, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &auth.UpstreamError{Op: "steamweb.profile_xml", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, &auth.UpstreamError{Op: "steamweb.profile_xml", Status: resp.StatusCode}
	}

	var doc xmlProfile
	if err := xml.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&doc); err != nil {
		return zero, &auth.UpstreamError{Op: "steamweb.profile_xml", Err: err}
	}
	if doc.SteamID64 != steamID {
		return zero, &auth.UpstreamError{Op: "steamweb.profile_xml", Err: errors.New("profile document id mismatch")}
	}

	return auth.SteamProfile{
		SteamID:     doc.SteamID64,
		DisplayName: doc.SteamID,
		Avatar:      doc.AvatarFull,
		ProfileURL:  c.profileURL + steamID,
	}, nil
}
