package directory

// Package directory provides the two interchangeable admin directory
// backends: a remote REST service and an embedded SQLite store.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
)

const (
	remoteResource = "staff_admins"
	remoteTimeout  = 10 * time.Second
)

// RemoteStore talks to the hosted directory service. The service speaks a
// PostgREST-flavored REST dialect: filter query params, Prefer headers for
// upsert and counting, Content-Range for totals.
type RemoteStore struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// RemoteOption configures a RemoteStore.
type RemoteOption func(*RemoteStore)

// WithRemoteHTTPClient overrides the HTTP client (for testing).
func WithRemoteHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteStore) { s.httpClient = c }
}

// NewRemote creates a remote directory client. serviceKey is sent both as
// apikey and bearer token, matching the service's auth scheme.
func NewRemote(baseURL, serviceKey string, opts ...RemoteOption) *RemoteStore {
	s := &RemoteStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: remoteTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements ports.DirectoryBackend.
func (s *RemoteStore) Name() string { return "remote" }

type remoteRecord struct {
	SteamID   string    `json:"steam_id"`
	StaffName string    `json:"staff_name"`
	StaffRole string    `json:"staff_role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r remoteRecord) toDomain() auth.AdminRecord {
	return auth.AdminRecord{
		SteamID:   r.SteamID,
		StaffName: r.StaffName,
		StaffRole: auth.Role(r.StaffRole),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *RemoteStore) List(ctx context.Context) ([]auth.AdminRecord, error) {
	body, _, err := s.do(ctx, http.MethodGet, "?order=steam_id.asc", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(body)
}

func (s *RemoteStore) Get(ctx context.Context, steamID string) (auth.AdminRecord, error) {
	q := "?steam_id=eq." + url.QueryEscape(steamID) + "&limit=1"
	body, _, err := s.do(ctx, http.MethodGet, q, nil, nil)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	if len(records) == 0 {
		return auth.AdminRecord{}, auth.ErrNotFound
	}
	return records[0], nil
}

func (s *RemoteStore) Add(ctx context.Context, record auth.AdminRecord) (auth.AdminRecord, error) {
	payload, err := json.Marshal(map[string]string{
		"steam_id":   record.SteamID,
		"staff_name": record.StaffName,
		"staff_role": string(record.StaffRole),
	})
	if err != nil {
		return auth.AdminRecord{}, fmt.Errorf("encode record: %w", err)
	}

	headers := http.Header{"Prefer": {"resolution=merge-duplicates,return=representation"}}
	body, _, err := s.do(ctx, http.MethodPost, "", payload, headers)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	if len(records) == 0 {
		return auth.AdminRecord{}, &auth.UpstreamError{Op: "directory.add", Err: errors.New("empty representation")}
	}
	return records[0], nil
}

func (s *RemoteStore) Update(ctx context.Context, steamID string, patch auth.AdminRecordPatch) (auth.AdminRecord, error) {
	fields := map[string]string{}
	if patch.StaffName != nil {
		fields["staff_name"] = *patch.StaffName
	}
	if patch.StaffRole != nil {
		fields["staff_role"] = string(*patch.StaffRole)
	}
	if len(fields) == 0 {
		return s.Get(ctx, steamID)
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return auth.AdminRecord{}, fmt.Errorf("encode patch: %w", err)
	}

	q := "?steam_id=eq." + url.QueryEscape(steamID)
	headers := http.Header{"Prefer": {"return=representation"}}
	body, _, err := s.do(ctx, http.MethodPatch, q, payload, headers)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	if len(records) == 0 {
		return auth.AdminRecord{}, auth.ErrNotFound
	}
	return records[0], nil
}

func (s *RemoteStore) Remove(ctx context.Context, steamID string) error {
	q := "?steam_id=eq." + url.QueryEscape(steamID)
	headers := http.Header{"Prefer": {"return=representation"}}
	body, _, err := s.do(ctx, http.MethodDelete, q, nil, headers)
	if err != nil {
		return err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (s *RemoteStore) Count(ctx context.Context) (int, error) {
	headers := http.Header{
		"Prefer": {"count=exact"},
		"Range":  {"0-0"},
	}
	_, resp, err := s.do(ctx, http.MethodGet, "?select=steam_id", nil, headers)
	if err != nil {
		return 0, err
	}
	return parseContentRangeTotal(resp.Get("Content-Range"))
}

// parseContentRangeTotal extracts the total from "items start-end/total".
func parseContentRangeTotal(header string) (int, error) {
	idx := strings.LastIndexByte(header, '/')
	if idx < 0 {
		return 0, &auth.UpstreamError{Op: "directory.count", Err: fmt.Errorf("bad Content-Range %q", header)}
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, &auth.UpstreamError{Op: "directory.count", Err: errors.New("count not provided")}
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, &auth.UpstreamError{Op: "directory.count", Err: fmt.Errorf("bad Content-Range %q", header)}
	}
	return n, nil
}

// do issues one request and classifies failures: auth rejections and
// transport errors mean the backend is unavailable, not that the caller is
// forbidden.
func (s *RemoteStore) do(ctx context.Context, method, query string, payload []byte, headers http.Header) ([]byte, http.Header, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+"/"+remoteResource+query, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w: %v", auth.ErrUpstreamTimeout, err)
		}
		return nil, nil, &auth.StorageUnavailableError{Backend: s.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, &auth.StorageUnavailableError{Backend: s.Name(), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, &auth.StorageUnavailableError{Backend: s.Name(), Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, auth.ErrNotFound
	case resp.StatusCode >= 400:
		return nil, nil, &auth.UpstreamError{Op: "directory." + strings.ToLower(method), Status: resp.StatusCode}
	}

	return body, resp.Header, nil
}

func decodeRecords(body []byte) ([]auth.AdminRecord, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var raw []remoteRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &auth.UpstreamError{Op: "directory.decode", Err: err}
	}
	records := make([]auth.AdminRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, r.toDomain())
	}
	return records, nil
}
