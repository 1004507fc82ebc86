package middleware

import (
	"strings"

	"go-catalog-ms/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bridge JWT and sets the caller in context.
// With an empty secret the check is off.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(secret) == 0 {
			return c.Next()
		}

		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(secret, parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("service", claims.Service)
		c.Locals("actor", claims.Actor)
		return c.Next()
	}
}
