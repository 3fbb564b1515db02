package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/domain"
	applog "stockroom/internal/log"
	"stockroom/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth resolves the bearer token to a user and stores it in Locals.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return fail(c, fiber.StatusUnauthorized, "Not authorized, no token")
		}
		u, err := auth.UserFromToken(tok)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return fail(c, fiber.StatusUnauthorized, "Not authorized, token failed")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin runs after RequireAuth and gates admin-only routes.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := c.Locals("user").(*domain.User)
		if u == nil || u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return fail(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
