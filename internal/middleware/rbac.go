package middleware

import (
	"go-storefront/internal/common/models"
	"go-storefront/internal/features/permission"

	"github.com/gofiber/fiber/v2"
)

// RequireRead gates a route on "<module>_Read". Must run after AuthMiddleware.
func RequireRead(module string) fiber.Handler {
	return requireModule(module, permission.CanRead)
}

// RequireWrite gates a route on "<module>_Write". Must run after AuthMiddleware.
func RequireWrite(module string) fiber.Handler {
	return requireModule(module, permission.CanWrite)
}

func requireModule(module string, check func(user *models.User, perms permission.Set, module string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !check(user, Permissions(c), module) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
