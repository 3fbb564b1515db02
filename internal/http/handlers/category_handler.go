package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return failErr(c, "categories.list.fail", err)
	}
	return c.JSON(fiber.Map{"success": true, "count": len(cats), "data": cats})
}
