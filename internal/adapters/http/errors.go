package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response carrying the request ID bound by
// RequestIDLogMiddleware.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID := RequestIDFromCtx(c.UserContext())
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// serviceError maps a MapService error onto the matching response.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return errNotFound(c, "session not found")
	case errors.Is(err, domain.ErrInvalidView),
		errors.Is(err, domain.ErrUnknownMode),
		errors.Is(err, domain.ErrInvalidGeometry):
		return errBadRequest(c, err.Error())
	default:
		LoggerFromCtx(c.UserContext()).Error("map service failure", "path", c.Path(), "error", err)
		return errInternal(c, "internal error")
	}
}
