package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status values derived from quantity vs. threshold.
const (
	StatusInStock    = "IN_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusOutOfStock = "OUT_OF_STOCK"
)

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Supplier struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Contact   string `db:"contact" json:"contact,omitempty"`
	Email     string `db:"email" json:"email,omitempty"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID                string          `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Description       string          `db:"description" json:"description,omitempty"`
	SKU               string          `db:"sku" json:"sku,omitempty"`
	CategoryID        string          `db:"category_id" json:"categoryId"`
	SupplierID        string          `db:"supplier_id" json:"supplierId"`
	Quantity          int             `db:"quantity" json:"quantity"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"lowStockThreshold"`
	Price             decimal.Decimal `db:"price" json:"price"`
	Unit              string          `db:"unit" json:"unit"`
	CreatedAt         string          `db:"created_at" json:"createdAt"`
	UpdatedAt         string          `db:"updated_at" json:"updatedAt,omitempty"`

	// Derived; filled after scanning, never stored.
	Status string `db:"-" json:"status,omitempty"`
}

// StockStatus maps quantity to exactly one of the three states:
// OUT_OF_STOCK when zero, LOW_STOCK while at or below the threshold, IN_STOCK above it.
func (p Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StatusOutOfStock
	case p.Quantity <= p.LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ProductDetail is a product with its category and supplier names resolved for display.
type ProductDetail struct {
	Product
	CategoryName string `db:"category_name" json:"categoryName"`
	SupplierName string `db:"supplier_name" json:"supplierName"`
}

// Inventory log types. Every stock change writes exactly one log row; rows are
// never updated or deleted.
const (
	LogTypeAdd    = "add"
	LogTypeRemove = "remove"
	LogTypeAdjust = "adjust"
)

type InventoryLog struct {
	ID               string `db:"id" json:"id"`
	ProductID        string `db:"product_id" json:"productId"`
	Type             string `db:"type" json:"type"`
	Quantity         int    `db:"quantity" json:"quantity"`
	PreviousQuantity int    `db:"previous_quantity" json:"previousQuantity"`
	NewQuantity      int    `db:"new_quantity" json:"newQuantity"`
	Reason           string `db:"reason" json:"reason,omitempty"`
	UserID           string `db:"user_id" json:"userId"`
	CreatedAt        string `db:"created_at" json:"createdAt"`
}

// InventoryLogView resolves display names. ProductName is empty when the product
// has since been deleted; the history row itself is retained.
type InventoryLogView struct {
	InventoryLog
	ProductName string `db:"product_name" json:"productName"`
	UserName    string `db:"user_name" json:"userName"`
}

// StockChange is one validated, computed adjustment ready to be committed:
// the quantity write plus its audit row.
type StockChange struct {
	LogID            string
	ProductID        string
	Type             string
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	UserID           string
	At               time.Time
}
