// Package respond writes the {success, response} envelope every endpoint uses.
package respond

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/identity"
)

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(dto.OK(data))
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

// Error picks the status from the error kind. Server errors are logged,
// reported to Sentry and replaced by a generic message.
func Error(c *fiber.Ctx, err error) error {
	status := apperrors.Status(err)
	message := apperrors.PublicMessage(err)

	if status >= fiber.StatusInternalServerError {
		attrs := []any{
			// Fiber reuses these buffers after the handler returns; the
			// system_logs handler writes them later.
			"method", utils.CopyString(c.Method()),
			"path", utils.CopyString(c.Path()),
			"error", err.Error(),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			attrs = append(attrs, "request_id", rid)
		}
		if user, uerr := identity.CurrentUser(c); uerr == nil {
			attrs = append(attrs, "user_id", user.ID.String())
		}
		slog.Error("request failed", attrs...)

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(status).JSON(dto.Fail(message, kindName(err)))
}

// BadRequest is a shortcut for malformed bodies and parameters.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, apperrors.New(apperrors.ErrValidation, message))
}

func kindName(err error) string {
	for _, kind := range []error{
		apperrors.ErrValidation,
		apperrors.ErrUnauthenticated,
		apperrors.ErrNotFound,
		apperrors.ErrConflict,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return apperrors.ErrStoreUnavailable.Error()
}
