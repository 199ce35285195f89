package auth

import (
	"github.com/gofiber/fiber/v2"

	"kursusku_backend/internals/constants"
)

// IsAdmin guards the back-office group. Must run after AuthMiddleware.
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("admin"))
		}
		return c.Next()
	}
}
