package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"net/url"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
)

// IdentityProvider performs the two legs of the relying-party login flow
// against the external identity provider.
type IdentityProvider interface {
	// AuthURL builds the provider redirect URL for login initiation.
	// realm is the externally visible base URL; returnTo is the callback
	// URL; state is embedded in returnTo as a query parameter.
	AuthURL(realm, returnTo, state string) (string, error)

	// VerifyCallback validates the provider assertion carried in the
	// callback query parameters via a server-to-server round trip and
	// returns the asserted Steam64 ID. Client-supplied identity claims
	// are never trusted without this check.
	VerifyCallback(ctx context.Context, params url.Values) (string, error)
}

// ProfileProvider resolves public profiles for Steam64 IDs. Lookups are
// best-effort: callers must tolerate errors and absent entries.
type ProfileProvider interface {
	// Summaries returns profiles for the given IDs. Implementations are
	// responsible for honoring the provider's per-request ID limit.
	Summaries(ctx context.Context, steamIDs []string) ([]auth.SteamProfile, error)
}

// DirectoryBackend is the storage contract shared by the remote directory
// service and the local embedded store.
type DirectoryBackend interface {
	List(ctx context.Context) ([]auth.AdminRecord, error)
	Get(ctx context.Context, steamID string) (auth.AdminRecord, error)
	Add(ctx context.Context, record auth.AdminRecord) (auth.AdminRecord, error)
	Update(ctx context.Context, steamID string, patch auth.AdminRecordPatch) (auth.AdminRecord, error)
	Remove(ctx context.Context, steamID string) error
	Count(ctx context.Context) (int, error)

	// Name identifies the backend ("remote", "local") for logs and errors.
	Name() string
}

// Cache is a byte-oriented TTL cache. Get returns nil (no error) when the
// key is absent or expired.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
