package middleware

import "github.com/gofiber/fiber/v2"

// MethodNotAllowed answers any verb that reached it with 405 and the Allow header.
// Register it after the route's real handlers.
func MethodNotAllowed(allowed string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allowed)
		return c.Status(fiber.StatusMethodNotAllowed).SendString("Method " + c.Method() + " Not Allowed")
	}
}
