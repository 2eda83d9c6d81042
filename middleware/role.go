package middleware

import (
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

// IsAuthorized reports whether the account role is in the permitted set.
func IsAuthorized(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// CheckRole returns a middleware that restricts a route to the given roles.
// It expects JWTMiddleware to have run first.
func CheckRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		if !IsAuthorized(user.Role, roles) {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied: No Permission", nil)
		}

		return c.Next()
	}
}
