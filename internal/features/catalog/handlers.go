package catalog

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/respond"
)

type Handler[T Record] struct {
	service *Service[T]
}

func NewHandler[T Record](service *Service[T]) *Handler[T] {
	return &Handler[T]{service: service}
}

func (h *Handler[T]) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func (h *Handler[T]) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond.Error(c, apperrors.ErrInvalidID)
	}

	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, item)
}

func (h *Handler[T]) ListByType(c *fiber.Ctx) error {
	tag, err := url.PathUnescape(c.Params("type"))
	if err != nil {
		return respond.BadRequest(c, "invalid type")
	}

	items, err := h.service.ListByType(c.UserContext(), strings.TrimSpace(tag))
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func mount[T Record](router fiber.Router, path string, h *Handler[T]) {
	group := router.Group(path)
	group.Get("/", h.List)
	group.Get("/type/:type", h.ListByType)
	group.Get("/:id", h.Get)
}
