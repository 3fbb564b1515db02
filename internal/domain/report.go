package domain

import "github.com/shopspring/decimal"

type ReportSummary struct {
	TotalProducts   int             `json:"totalProducts"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	StockAdded      int             `json:"stockAdded"`
	StockRemoved    int             `json:"stockRemoved"`
}

// Report is the dashboard payload for one lookback period.
type Report struct {
	Summary          ReportSummary      `json:"summary"`
	LowStockProducts []ProductDetail    `json:"lowStockProducts"`
	RecentLogs       []InventoryLogView `json:"recentLogs"`
}
