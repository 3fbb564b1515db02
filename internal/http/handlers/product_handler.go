package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stock   *services.StockService
}

// productRequest is the create/update body. Pointer fields distinguish
// "absent, use the default" from an explicit zero.
type productRequest struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	SKU               string           `json:"sku"`
	CategoryID        string           `json:"categoryId"`
	SupplierID        string           `json:"supplierId"`
	Quantity          int              `json:"quantity"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	Price             *decimal.Decimal `json:"price"`
	Unit              string           `json:"unit"`
}

func (r productRequest) input() services.ProductInput {
	in := services.ProductInput{
		Name:              r.Name,
		Description:       r.Description,
		SKU:               r.SKU,
		CategoryID:        r.CategoryID,
		SupplierID:        r.SupplierID,
		Quantity:          r.Quantity,
		LowStockThreshold: 10,
		Price:             decimal.Zero,
		Unit:              "pcs",
	}
	if r.LowStockThreshold != nil {
		in.LowStockThreshold = *r.LowStockThreshold
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.Unit != "" {
		in.Unit = r.Unit
	}
	return in
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := repos.ProductFilter{
		Search:   c.Query("search"),
		LowStock: c.Query("lowStock") == "true",
	}
	if id, okID := validate.ID(c.Query("category")); okID {
		f.CategoryID = id
	}
	if id, okID := validate.ID(c.Query("supplier")); okID {
		f.SupplierID = id
	}
	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"), 10, 100)

	items, total, err := h.Catalog.List(f, page, limit)
	if err != nil {
		return failErr(c, "products.list.fail", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"total":   total,
		"page":    page,
		"pages":   pageCount(total, limit),
		"data":    items,
	})
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return failErr(c, "products.get.fail", err)
	}
	return ok(c, p)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	p, err := h.Catalog.Create(req.input())
	if err != nil {
		return failErr(c, "products.create.fail", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return created(c, p)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	p, err := h.Catalog.Update(id, req.input())
	if err != nil {
		return failErr(c, "products.update.fail", err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return ok(c, p)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return failErr(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

// PUT /api/products/:id/stock
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	var req struct {
		Type     string `json:"type"`
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	u := currentUser(c)
	p, err := h.Stock.Adjust(id, req.Type, req.Quantity, req.Reason, u.ID)
	if err != nil {
		return failErr(c, "stock.adjust.fail", err)
	}

	applog.Audit(c, "stock.adjust", map[string]any{
		"product_id": id,
		"type":       req.Type,
		"quantity":   req.Quantity,
		"new_qty":    p.Quantity,
	})
	return ok(c, p)
}

func pageCount(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
