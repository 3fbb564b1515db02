package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

// failErr maps service errors onto statuses. Anything unrecognized is logged
// and surfaced as a generic 500 so internals never leak to the client.
func failErr(c *fiber.Ctx, action string, err error) error {
	var inv *services.InvalidInputError
	switch {
	case errors.As(err, &inv):
		return fail(c, fiber.StatusBadRequest, inv.Msg)
	case errors.Is(err, services.ErrProductNotFound):
		return fail(c, fiber.StatusNotFound, "Product not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		return fail(c, fiber.StatusBadRequest, "Category not found")
	case errors.Is(err, services.ErrSupplierNotFound):
		return fail(c, fiber.StatusBadRequest, "Supplier not found")
	case errors.Is(err, services.ErrAdjustConflict):
		return fail(c, fiber.StatusConflict, "Stock changed concurrently, please retry")
	default:
		applog.Error(c, action, err, nil)
		return fail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
