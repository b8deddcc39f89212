package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/database"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/respond"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
	}
	if err := database.Ping(ctx, h.db); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy"
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Envelope{
			Success:  false,
			Response: resp,
			Error:    apperrors.ErrStoreUnavailable.Error(),
		})
	}

	return respond.OK(c, resp)
}
