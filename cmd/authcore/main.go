package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamevault/authcore/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stack, err := bootstrap.BuildAuthStack(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stack.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close auth stack failed", "error", cerr)
		}
	}()

	logger.InfoContext(ctx, "starting authcore",
		"addr", cfg.HTTP.Addr,
		"directory", stack.Directory.BackendName(),
		"dev", cfg.IsDev,
	)

	return bootstrap.RunHTTPServer(ctx, bootstrap.HTTPServerConfig{
		Config: cfg,
		Stack:  stack,
		Logger: logger,
	})
}
