package features

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feature is a self-contained slice of the API: its tables and its routes.
type Feature interface {
	// ID returns a short unique name used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the feature's routes. The router is the app root;
	// the auth gate has already run for every non-public path.
	RegisterRoutes(router fiber.Router)
}

// Seeder is implemented by features that load bundled data at startup.
type Seeder interface {
	Feature

	// Seed loads bundled data. When reset is true existing rows are replaced.
	Seed(ctx context.Context, reset bool) error
}

// OwnedData is implemented by features that store rows owned by a user; the
// rows are removed when the account is deleted.
type OwnedData interface {
	Feature

	DeleteOwnedBy(tx *gorm.DB, userID uuid.UUID) error
}
