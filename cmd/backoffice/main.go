package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/salesops/so-ui-api/internal/bootstrap"
	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting back-office service",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"backend", cfg.Backend.BaseURL,
		"redis_enabled", cfg.Redis.Enabled,
		"is_dev", cfg.IsDev)

	store, err := bootstrap.BuildSessionStore(cfg.Redis, logger)
	if err != nil {
		return err
	}
	if store.RedisClient != nil {
		defer func() {
			if cerr := store.RedisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.BuildServices(ctx, bootstrap.ServicesConfig{
		Config: cfg,
		Store:  store.Store,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	// Audit trail for every session the process establishes or tears down.
	services.Sessions.Subscribe(func(ctx context.Context, sess *domainauth.Session) {
		if sess == nil {
			logger.InfoContext(ctx, "session cleared")
			return
		}
		logger.InfoContext(ctx, "session established",
			"user_id", sess.UserID,
			"role", sess.Role,
			"registered", sess.Registered,
			"expires_at", sess.ExpiresAt)
	})

	server, err := bootstrap.StartHTTPServer(bootstrap.HTTPServerConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Block until an interrupt, then drain in-flight requests.
	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	return bootstrap.ShutdownHTTPServer(ctx, server, logger)
}
