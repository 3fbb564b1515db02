package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
)

type SupplierHandler struct {
	Catalog *services.CatalogService
}

// GET /api/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	sups, err := h.Catalog.ListSuppliers()
	if err != nil {
		return failErr(c, "suppliers.list.fail", err)
	}
	return c.JSON(fiber.Map{"success": true, "count": len(sups), "data": sups})
}
