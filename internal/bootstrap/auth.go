package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gamevault/authcore/config"
	"github.com/gamevault/authcore/internal/adapters/directory"
	"github.com/gamevault/authcore/internal/adapters/memcache"
	"github.com/gamevault/authcore/internal/adapters/rediscache"
	"github.com/gamevault/authcore/internal/adapters/steamopenid"
	"github.com/gamevault/authcore/internal/adapters/steamweb"
	"github.com/gamevault/authcore/internal/domain/auth"
	httpx "github.com/gamevault/authcore/internal/http"
	"github.com/gamevault/authcore/internal/ports"
	"github.com/gamevault/authcore/internal/service"
	"github.com/gamevault/authcore/internal/token"
)

// AuthStack bundles everything the HTTP layer needs, plus the handles that
// must be closed on shutdown.
type AuthStack struct {
	Resolver  *service.Resolver
	Directory *service.Directory
	Provider  ports.IdentityProvider
	States    *httpx.StateCodec

	closers []func() error
}

// Close releases backing resources (local store, redis client).
func (s *AuthStack) Close() error {
	var firstErr error
	for _, close := range s.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BuildAuthStack wires adapters and services from configuration. The
// directory backend is remote when service credentials are configured,
// otherwise the embedded local store; the mirror is warmed before return.
func BuildAuthStack(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*AuthStack, error) {
	stack := &AuthStack{}

	var backend ports.DirectoryBackend
	if cfg.Directory.UseRemote() {
		backend = directory.NewRemote(cfg.Directory.URL, cfg.Directory.ServiceKey)
	} else {
		store, err := directory.OpenSQLite(cfg.Directory.LocalPath)
		if err != nil {
			return nil, err
		}
		stack.closers = append(stack.closers, store.Close)
		backend = store
	}
	logger.Info("directory backend selected", "backend", backend.Name())

	seeds, err := cfg.Directory.ParseSeeds()
	if err != nil {
		_ = stack.Close()
		return nil, err
	}

	dir := service.NewDirectory(service.DirectoryOptions{
		Backend: backend,
		Seeds:   seeds,
		Logger:  logger,
	})
	if err := dir.Bootstrap(ctx); err != nil {
		_ = stack.Close()
		return nil, fmt.Errorf("bootstrap directory: %w", err)
	}

	var cache ports.Cache
	if cfg.Cache.UseRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = stack.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		stack.closers = append(stack.closers, client.Close)
		cache = rediscache.New(client, "authcore")
	} else {
		cache = memcache.New()
	}

	secret := []byte(cfg.Auth.SessionSecret)

	stack.Directory = dir
	stack.Provider = steamopenid.New()
	stack.States = token.NewCodec[auth.StateClaims](secret)
	stack.Resolver = service.NewResolver(service.ResolverOptions{
		Sessions:   token.NewCodec[auth.SessionClaims](secret),
		SessionTTL: cfg.Auth.SessionTTL,
		Directory:  dir,
		Profiles:   steamweb.New(cfg.Auth.SteamAPIKey),
		Cache:      cache,
		ProfileTTL: cfg.Cache.ProfileTTL,
		Logger:     logger,
	})
	return stack, nil
}
