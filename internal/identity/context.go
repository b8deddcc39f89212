// Package identity carries the authenticated user through a request and
// resolves the owner named in a route.
package identity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/models"
)

const (
	userKey  = "identity.user"
	adminKey = "identity.admin"
)

var (
	ErrNoUser = apperrors.New(apperrors.ErrUnauthenticated, "unauthenticated")
	// ErrNotOwner is reported as not-found so callers cannot probe which
	// user ids exist.
	ErrNotOwner = apperrors.New(apperrors.ErrNotFound, "not found")
)

// SetUser attaches the authenticated user to the request.
func SetUser(c *fiber.Ctx, user *models.User, isAdmin bool) {
	c.Locals(userKey, user)
	c.Locals(adminKey, isAdmin)
}

// CurrentUser returns the user attached by the auth gate.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoUser
	}
	return user, nil
}

func IsAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals(adminKey).(bool)
	return admin
}

// PathOwner resolves the :userId route parameter and checks that the caller
// may act on it: either it is the caller's own id, or the caller is an admin.
func PathOwner(c *fiber.Ctx) (uuid.UUID, error) {
	user, err := CurrentUser(c)
	if err != nil {
		return uuid.Nil, err
	}

	ownerID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return uuid.Nil, ErrNotOwner
	}

	if ownerID != user.ID && !IsAdmin(c) {
		return uuid.Nil, ErrNotOwner
	}
	return ownerID, nil
}
