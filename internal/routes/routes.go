package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/partyplanner/backend/internal/config"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/features"
	"github.com/partyplanner/backend/internal/handlers"
	"github.com/partyplanner/backend/internal/middleware"
	"github.com/partyplanner/backend/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	feats []features.Feature,
) {
	// Probes and scrapes are not rate limited.
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// General API rate limiter per IP
	if cfg.RateLimitPerMin > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimitPerMin,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
			LimitReached:      tooManyRequests,
		}))
	}

	// Sign-up/sign-in get a stricter limit against credential stuffing.
	authLimit := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.AuthRateLimitPerMin > 0 {
		authLimit = limiter.New(limiter.Config{
			Max:               cfg.AuthRateLimitPerMin,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
			LimitReached:      tooManyRequests,
		})
	}
	app.Post("/signUp", authLimit, authHandler.SignUp)
	app.Post("/signIn", authLimit, authHandler.SignIn)

	// Everything below requires a bearer token.
	app.Use(middleware.AuthGate(authService))

	app.Delete("/:userId/admin/delete", authHandler.DeleteAccount)
	app.Patch("/:userId/admin/change", authHandler.ChangePassword)

	for _, f := range feats {
		f.RegisterRoutes(app)
	}
}

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("Too many requests", "rate limited"))
}
