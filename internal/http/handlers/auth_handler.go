package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email, okEmail := validate.Email(req.Email)
	if !okEmail || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Please provide a valid email and password")
	}

	tok, u, err := h.Auth.Login(email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": email})
			return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return failErr(c, "auth.login.error", err)
	}

	applog.Audit(c, "auth.login", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"success": true, "token": tok, "user": u})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return ok(c, currentUser(c))
}
