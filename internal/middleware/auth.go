package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/identity"
	"github.com/partyplanner/backend/internal/respond"
	"github.com/partyplanner/backend/internal/services"
)

// Paths that don't require a bearer token.
var publicPaths = []string{
	"/signUp",
	"/signIn",
	"/health",
	"/metrics",
}

// AuthGate resolves "Authorization: Bearer <token>" to a user. Missing,
// malformed and unknown tokens are indistinguishable to the caller; a failed
// lookup is reported as a service error instead.
func AuthGate(auth *services.AuthService) fiber.Handler {
	return keyauth.New(keyauth.Config{
		Next:       isPublic,
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(c *fiber.Ctx, token string) (bool, error) {
			user, err := auth.Authenticate(c.UserContext(), token)
			if err != nil {
				return false, err
			}
			identity.SetUser(c, user, auth.IsAdmin(user))
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, apperrors.ErrStoreUnavailable) {
				return respond.Error(c, err)
			}
			return respond.Error(c, services.ErrInvalidToken)
		},
	})
}

func isPublic(c *fiber.Ctx) bool {
	path := c.Path()
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return c.Method() == fiber.MethodOptions
}
