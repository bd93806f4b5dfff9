package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/middleware"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// fail logs err for operators, forwards it to Sentry when a hub is attached, and
// answers with a fixed message only.
func fail(c *fiber.Ctx, status int, action, message string, err error) error {
	attrs := []any{"action", action, "request_id", middleware.RequestID(c), "error", err.Error()}
	if user, ok := middleware.CurrentUser(c); ok {
		attrs = append(attrs, "user_id", user.ID.String())
	}
	slog.Error(message, attrs...)

	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}
