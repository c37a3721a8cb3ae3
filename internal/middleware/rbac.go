package middleware

import (
	"github.com/gofiber/fiber/v2"

	"hero-forge/internal/domain"
)

// RequireCapability gates a route on what the caller can do rather than on
// a role-string comparison; the role→capability mapping lives on the domain
// role enum.
func RequireCapability(capability domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return domain.Unauthorized("authentication required")
		}

		if !user.Role.Can(capability) {
			return domain.Forbidden("insufficient permissions for this operation")
		}

		return c.Next()
	}
}
