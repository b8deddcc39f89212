package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feature serves the project board and its guest lists.
type Feature struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Feature {
	return &Feature{db: db}
}

func (f *Feature) ID() string { return "projects" }

func (f *Feature) Models() []interface{} {
	return []interface{}{
		&Project{},
	}
}

func (f *Feature) RegisterRoutes(router fiber.Router) {
	projectService := NewProjectService(f.db)
	guestService := NewGuestService(f.db, projectService)
	handler := NewProjectHandler(projectService, guestService)

	board := router.Group("/:userId/project-board/projects")
	board.Get("/", handler.List)
	board.Post("/addProject", handler.Create)
	board.Delete("/delete/:projectId", handler.Delete)
	board.Get("/:projectId", handler.Get)
	board.Patch("/:projectId", handler.Update)
	board.Post("/:projectId/addGuest", handler.AddGuest)
	board.Delete("/:projectId/delete/:guestId", handler.RemoveGuest)
}

func (f *Feature) DeleteOwnedBy(tx *gorm.DB, userID uuid.UUID) error {
	return DeleteAllForOwner(tx, userID)
}
