package middleware

import (
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS lets browser clients send the bearer token and read the Allow header of a 405.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     fiber.HeaderAuthorization + ", " + fiber.HeaderContentType,
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    fiber.HeaderAllow + ", " + fiber.HeaderXRequestID,
		AllowCredentials: false,
		MaxAge:           600,
	})
}
