// Package server assembles the Fiber app: middleware chain, services,
// features and routes. cmd/server and the end-to-end tests share it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/partyplanner/backend/internal/config"
	"github.com/partyplanner/backend/internal/database"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/features"
	"github.com/partyplanner/backend/internal/features/catalog"
	"github.com/partyplanner/backend/internal/features/projects"
	"github.com/partyplanner/backend/internal/handlers"
	"github.com/partyplanner/backend/internal/middleware"
	"github.com/partyplanner/backend/internal/routes"
	"github.com/partyplanner/backend/internal/services"
	"gorm.io/gorm"
)

type Options struct {
	// AccessLog enables the per-request access log line.
	AccessLog bool
	// Sentry installs the Sentry middleware; sentry.Init must have run.
	Sentry bool
}

type Server struct {
	App      *fiber.App
	Auth     *services.AuthService
	Features []features.Feature

	cfg *config.Config
	db  *gorm.DB
}

func New(cfg *config.Config, db *gorm.DB, opts Options) *Server {
	feats := []features.Feature{
		catalog.New(db),
		projects.New(db),
	}

	var cascades []services.AccountCascade
	for _, f := range feats {
		if owned, ok := f.(features.OwnedData); ok {
			cascades = append(cascades, owned.DeleteOwnedBy)
		}
	}

	authService := services.NewAuthService(db, cfg, cascades...)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		AppName:               "partyplanner",
		BodyLimit:             cfg.BodyLimitBytes,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	if opts.Sentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.Metrics())
	app.Use(middleware.RequestContext(cfg.RequestTimeout))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, authService, authHandler, healthHandler, feats)

	return &Server{
		App:      app,
		Auth:     authService,
		Features: feats,
		cfg:      cfg,
		db:       db,
	}
}

// Prepare migrates every table and runs feature seeders.
func (s *Server) Prepare(ctx context.Context) error {
	if err := database.MigrateShared(s.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("shared migration failed: %w", err)
	}

	for _, f := range s.Features {
		if models := f.Models(); len(models) > 0 {
			if err := database.MigrateModels(s.db.WithContext(ctx), models); err != nil {
				return fmt.Errorf("feature %s migration failed: %w", f.ID(), err)
			}
			slog.Info("feature migrated", "feature", f.ID(), "models", len(models))
		}
	}

	for _, f := range s.Features {
		if seeder, ok := f.(features.Seeder); ok {
			if err := seeder.Seed(ctx, s.cfg.ResetCatalog); err != nil {
				return fmt.Errorf("feature %s seed failed: %w", f.ID(), err)
			}
		}
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.App.ShutdownWithTimeout(timeout)
}

// errorHandler renders errors that escape handlers (unknown routes, body
// limit, recovered panics) in the response envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"method", utils.CopyString(c.Method()),
			"path", utils.CopyString(c.Path()),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Fail(message, fiberKind(code)))
}

func fiberKind(code int) string {
	switch {
	case code == fiber.StatusNotFound:
		return "not found"
	case code == fiber.StatusUnauthorized:
		return "unauthenticated"
	case code < fiber.StatusInternalServerError:
		return "validation error"
	default:
		return "service error"
	}
}
