package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/gamevault/authcore/config"
	httpx "github.com/gamevault/authcore/internal/http"
)

// HTTPServerConfig contains dependencies for the HTTP server.
type HTTPServerConfig struct {
	Config config.AppConfig
	Stack  *AuthStack
	Logger *slog.Logger
}

// NewHTTPServer builds the configured HTTP server without starting it.
func NewHTTPServer(cfg HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Resolver:        cfg.Stack.Resolver,
		Directory:       cfg.Stack.Directory,
		Provider:        cfg.Stack.Provider,
		States:          cfg.Stack.States,
		StateTTL:        cfg.Config.Auth.StateTTL,
		CookieDomain:    cfg.Config.HTTP.CookieDomain,
		BaseURL:         cfg.Config.HTTP.BaseURL,
		SuccessRedirect: cfg.Config.Auth.SuccessRedirect,
		ErrorRedirect:   cfg.Config.Auth.ErrorRedirect,
		Logger:          logger,
	})

	return &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Config.HTTP.ReadHeaderTimeout,
	}
}

// RunHTTPServer serves until ctx is canceled, then shuts down gracefully
// within the configured timeout.
func RunHTTPServer(ctx context.Context, cfg HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	server := NewHTTPServer(cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Config.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
