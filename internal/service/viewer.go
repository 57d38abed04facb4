package service

// Package service orchestrates the domain: the admin directory with its
// availability mirror, and the per-request viewer resolution.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/ports"
	"github.com/gamevault/authcore/internal/token"
)

const defaultProfileTTL = 5 * time.Minute

// SessionCodec is the token codec for session claims.
type SessionCodec = token.Codec[auth.SessionClaims, *auth.SessionClaims]

// ResolverOptions groups dependencies for Resolver.
type ResolverOptions struct {
	Sessions   *SessionCodec
	SessionTTL time.Duration
	Directory  *Directory
	Profiles   ports.ProfileProvider
	Cache      ports.Cache
	ProfileTTL time.Duration
	Logger     *slog.Logger
}

// Resolver turns a raw session cookie into the per-request Viewer. It never
// fails: every outcome, including backend outages, maps to a well-defined
// Viewer shape.
type Resolver struct {
	sessions   *SessionCodec
	sessionTTL time.Duration
	directory  *Directory
	profiles   ports.ProfileProvider
	cache      ports.Cache
	profileTTL time.Duration
	logger     *slog.Logger
	flight     singleflight.Group
}

// NewResolver constructs a Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	ttl := opts.ProfileTTL
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		sessions:   opts.Sessions,
		sessionTTL: opts.SessionTTL,
		directory:  opts.Directory,
		profiles:   opts.Profiles,
		cache:      opts.Cache,
		profileTTL: ttl,
		logger:     logger,
	}
}

// SessionTTL is the lifetime used for issued session tokens.
func (r *Resolver) SessionTTL() time.Duration { return r.sessionTTL }

// IssueSession mints a session token for user.
func (r *Resolver) IssueSession(user auth.User) (string, error) {
	return r.sessions.Create(auth.SessionClaims{
		SteamID:     user.SteamID,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
	}, r.sessionTTL)
}

// Resolve derives the Viewer for a raw session token. An empty, malformed,
// expired or forged token yields the anonymous viewer; a valid token with
// an unreachable directory yields an authenticated viewer whose admin
// status is marked unresolved rather than denied.
func (r *Resolver) Resolve(ctx context.Context, rawToken string) auth.Viewer {
	if rawToken == "" {
		return auth.AnonymousViewer()
	}

	claims, err := r.sessions.Verify(rawToken)
	if err != nil {
		// Invalid tokens are routine (expiry, rotated secret), not alerts.
		r.logger.Debug("session token rejected", "error", err)
		return auth.AnonymousViewer()
	}
	if !auth.ValidSteamID(claims.SteamID) {
		r.logger.Warn("session token carried malformed steam id")
		return auth.AnonymousViewer()
	}

	user := claims.User()
	if profile, ok := r.LookupProfile(ctx, user.SteamID); ok {
		user.DisplayName = profile.DisplayName
		user.Avatar = profile.Avatar
	}

	viewer := auth.Viewer{Authenticated: true, User: &user}

	role, isAdmin, adminErr := r.resolveRole(ctx, user.SteamID)
	if adminErr != "" {
		viewer.AdminError = adminErr
		return viewer
	}
	if !isAdmin {
		return viewer
	}

	viewer.IsAdmin = true
	viewer.Role = role
	viewer.Permissions = auth.PermissionsFor(role)
	return viewer
}

// resolveRole determines admin standing: seeds answer first, then the
// directory. The returned adminErr is non-empty only when the directory
// could not answer at all.
func (r *Resolver) resolveRole(ctx context.Context, steamID string) (auth.Role, bool, string) {
	if role, ok := r.directory.SeedRole(steamID); ok {
		return role, true, ""
	}

	rec, stale, err := r.directory.Get(ctx, steamID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return "", false, ""
		}
		r.logger.Warn("admin lookup failed", "steam_id", steamID, "error", err)
		return "", false, "admin status unavailable"
	}
	if stale {
		r.logger.Info("admin lookup served from mirror", "steam_id", steamID)
	}
	return auth.NormalizeRole(string(rec.StaffRole), auth.RoleStaff), true, ""
}

// LookupProfile fetches the public profile for steamID through the cache,
// deduplicating concurrent fetches per ID. Failures report ok=false.
func (r *Resolver) LookupProfile(ctx context.Context, steamID string) (auth.SteamProfile, bool) {
	if r.profiles == nil {
		return auth.SteamProfile{}, false
	}

	cacheKey := "profile:" + steamID
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var profile auth.SteamProfile
			if err := json.Unmarshal(raw, &profile); err == nil {
				return profile, true
			}
		}
	}

	v, err, _ := r.flight.Do(steamID, func() (any, error) {
		profiles, err := r.profiles.Summaries(ctx, []string{steamID})
		if err != nil {
			return nil, err
		}
		if len(profiles) == 0 {
			return nil, auth.ErrNotFound
		}
		return profiles[0], nil
	})
	if err != nil {
		// Profiles are decoration; the session stays usable without one.
		r.logger.Debug("profile lookup failed", "steam_id", steamID, "error", err)
		return auth.SteamProfile{}, false
	}

	profile := v.(auth.SteamProfile)
	if r.cache != nil {
		if raw, err := json.Marshal(profile); err == nil {
			if err := r.cache.Set(ctx, cacheKey, raw, r.profileTTL); err != nil {
				r.logger.Debug("profile cache write failed", "error", err)
			}
		}
	}
	return profile, true
}
