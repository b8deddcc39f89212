// Package apperrors defines the error kinds shared by services and handlers.
//
// Services return either a kind directly or an *Error wrapping one, so callers
// can match a specific failure (errors.Is(err, projects.ErrGuestNotFound)) or
// a whole class of failures (errors.Is(err, apperrors.ErrNotFound)).
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("service error")
)

// Error is a domain error that belongs to one kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ErrInvalidID is returned for path parameters that are not UUIDs.
var ErrInvalidID = New(ErrValidation, "invalid id")

// Validation builds a validation error with a formatted message.
func Validation(format string, args ...any) error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// Store wraps an infrastructure failure. The original error stays reachable
// through errors.Unwrap for logging, but the message is never shown to clients.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return &storeError{cause: err}
}

type storeError struct {
	cause error
}

func (e *storeError) Error() string { return "store unavailable: " + e.cause.Error() }

func (e *storeError) Unwrap() []error { return []error{ErrStoreUnavailable, e.cause} }

// Status maps an error to the HTTP status the API reports for it.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to put on the wire.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict):
		return err.Error()
	}
	return ErrStoreUnavailable.Error()
}
