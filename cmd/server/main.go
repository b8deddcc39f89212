package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/partyplanner/backend/internal/config"
	"github.com/partyplanner/backend/internal/database"
	"github.com/partyplanner/backend/internal/logging"
	"github.com/partyplanner/backend/internal/server"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout, or tint in development)
	console := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
		}
	}

	srv := server.New(cfg, db, server.Options{
		AccessLog: true,
		Sentry:    sentryEnabled,
	})

	// Migrate shared and feature models, then seed the catalog
	prepareCtx, cancelPrepare := context.WithTimeout(context.Background(), time.Minute)
	err = srv.Prepare(prepareCtx)
	cancelPrepare()
	if err != nil {
		slog.Error("startup preparation failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, console, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(console, dbLogHandler)))

	// Log cleanup
	ctx, cancel := context.WithCancel(context.Background())
	logging.StartCleanup(ctx, db, cfg.LogRetentionDays)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := srv.App.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := srv.Shutdown(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	dbLogHandler.Stop()
	slog.SetDefault(slog.New(console))
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
