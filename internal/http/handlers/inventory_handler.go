package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type InventoryHandler struct {
	Logs    *repos.LogRepo
	Reports *services.ReportService
}

// GET /api/inventory/logs
func (h *InventoryHandler) ListLogs(c *fiber.Ctx) error {
	f := repos.LogFilter{}

	if s := c.Query("product"); s != "" {
		id, okID := validate.ID(s)
		if !okID {
			return fail(c, fiber.StatusBadRequest, "Invalid product id")
		}
		f.ProductID = id
	}
	if s := c.Query("type"); s != "" {
		typ, okType := validate.LogType(s)
		if !okType {
			return fail(c, fiber.StatusBadRequest, `Invalid type. Use "add", "remove" or "adjust"`)
		}
		f.Type = typ
	}

	start, err := validate.Date(c.Query("startDate"), "Start date")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	end, err := validate.Date(c.Query("endDate"), "End date")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	f.Start, f.End = start, end

	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"), 20, 100)
	f.Limit = limit
	f.Offset = (page - 1) * limit

	logs, total, err := h.Logs.List(f)
	if err != nil {
		return failErr(c, "inventory.logs.fail", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"total":   total,
		"page":    page,
		"pages":   pageCount(total, limit),
		"data":    logs,
	})
}

// GET /api/inventory/report?period=day|week|month
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	period, okPeriod := validate.Period(c.Query("period"))
	if !okPeriod {
		return fail(c, fiber.StatusBadRequest, `Invalid period. Use "day", "week" or "month"`)
	}
	report, err := h.Reports.Build(period)
	if err != nil {
		return failErr(c, "inventory.report.fail", err)
	}
	return ok(c, report)
}
