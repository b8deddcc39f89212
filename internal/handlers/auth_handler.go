package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/identity"
	"github.com/partyplanner/backend/internal/respond"
	"github.com/partyplanner/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.SignUp(c.UserContext(), &req)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.Created(c, resp)
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.SignIn(c.UserContext(), &req)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, resp)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, req.Password, req.NewPassword); err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, "Password changed successfully")
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := identity.PathOwner(c)
	if err != nil {
		return respond.Error(c, err)
	}

	// The body is optional for admins, so an empty one is not an error.
	var req dto.DeleteAccountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, "Invalid request body")
		}
	}

	caller, _ := identity.CurrentUser(c)
	confirm := caller.ID == userID || !identity.IsAdmin(c)

	if err := h.authService.DeleteAccount(c.UserContext(), userID, req.Password, confirm); err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, dto.DeletedResponse{ID: userID.String(), Message: "Account deleted successfully"})
}
