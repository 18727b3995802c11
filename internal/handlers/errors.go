package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// respondError maps service errors onto status codes. Anything unknown is
// logged and masked as 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status, message = fiber.StatusUnauthorized, "User not authenticated"
	case errors.Is(err, services.ErrAppNotFound):
		status, message = fiber.StatusNotFound, "App not found"
	case errors.Is(err, services.ErrUserNotFound):
		status, message = fiber.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrNotOwner):
		status, message = fiber.StatusForbidden, "Permission denied"
	case errors.Is(err, services.ErrIdentityConflict):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidApp):
		status, message = fiber.StatusBadRequest, err.Error()
	default:
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"error", err.Error(),
		)
	}

	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Success: false, Error: message})
}

// appIDParam parses the :id path segment. A malformed id cannot name an
// App, so it is reported as not found.
func appIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, services.ErrAppNotFound
	}
	return id, nil
}

// ErrorHandler is the Fiber fallback for errors no handler turned into a
// response: unknown routes, oversized bodies and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Success: false, Error: message})
}
