package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Me handles GET /api/me.
func Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authentication failed"})
	}
	return c.JSON(dto.IdentityResponse{ID: user.ID, Email: user.Email})
}

func MeUnavailable(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
}
