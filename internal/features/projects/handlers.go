package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/identity"
	"github.com/partyplanner/backend/internal/respond"
)

type ProjectHandler struct {
	projects *ProjectService
	guests   *GuestService
}

func NewProjectHandler(projects *ProjectService, guests *GuestService) *ProjectHandler {
	return &ProjectHandler{projects: projects, guests: guests}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}

	projects, err := h.projects.List(c.UserContext(), ownerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, projects)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return respond.Error(c, err)
	}

	project, err := h.projects.Get(c.UserContext(), ownerID, projectID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, project)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	project, err := h.projects.Create(c.UserContext(), ownerID, req)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, project)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return respond.Error(c, err)
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	project, err := h.projects.Update(c.UserContext(), ownerID, projectID, req)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, project)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return respond.Error(c, err)
	}

	if err := h.projects.Delete(c.UserContext(), ownerID, projectID); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, dto.DeletedResponse{ID: projectID.String(), Message: "Project deleted successfully"})
}

func (h *ProjectHandler) AddGuest(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return respond.Error(c, err)
	}

	var req AddGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	project, err := h.guests.AddGuest(c.UserContext(), ownerID, projectID, req)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, project)
}

func (h *ProjectHandler) RemoveGuest(c *fiber.Ctx) error {
	ownerID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return respond.Error(c, err)
	}
	guestID, err := paramID(c, "guestId")
	if err != nil {
		return respond.Error(c, err)
	}

	project, err := h.guests.RemoveGuest(c.UserContext(), ownerID, projectID, guestID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, project)
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidID
	}
	return id, nil
}
