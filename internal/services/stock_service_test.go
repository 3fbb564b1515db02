package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertProduct(t *testing.T, db *sqlx.DB, id string, qty, threshold int) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO products(id, name, category_id, supplier_id, quantity, low_stock_threshold, price)
		VALUES (?, ?, 'beverages', 'sup-acme', ?, ?, 1.00)`, id, "Test "+id, qty, threshold)
	if err != nil {
		t.Fatal(err)
	}
}

func countLogs(t *testing.T, db *sqlx.DB, productID string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM inventory_logs WHERE product_id=?`, productID); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestStockService_Add(t *testing.T) {
	db := memdb(t)
	insertProduct(t, db, "widget", 5, 10)
	svc := services.NewStockService(repos.NewProductRepo(db))

	p, err := svc.Adjust("widget", "add", 20, "restock", "u-admin")
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 25 {
		t.Fatalf("want quantity 25, got %d", p.Quantity)
	}
	if p.Status != domain.StatusInStock {
		t.Fatalf("want IN_STOCK, got %s", p.Status)
	}

	var l domain.InventoryLog
	if err := db.Get(&l, `
		SELECT id, product_id, type, quantity, previous_quantity, new_quantity,
		       COALESCE(reason,'') AS reason, user_id, created_at
		FROM inventory_logs WHERE product_id='widget'`); err != nil {
		t.Fatal(err)
	}
	if l.Type != "add" || l.Quantity != 20 || l.PreviousQuantity != 5 || l.NewQuantity != 25 {
		t.Fatalf("bad log row: %+v", l)
	}
	if l.Reason != "restock" || l.UserID != "u-admin" {
		t.Fatalf("bad log attribution: %+v", l)
	}
}

func TestStockService_RemoveClampsAtZero(t *testing.T) {
	db := memdb(t)
	insertProduct(t, db, "widget", 3, 10)
	svc := services.NewStockService(repos.NewProductRepo(db))

	p, err := svc.Adjust("widget", "remove", 10, "", "u-admin")
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 0 {
		t.Fatalf("want clamped quantity 0, got %d", p.Quantity)
	}
	if p.Status != domain.StatusOutOfStock {
		t.Fatalf("want OUT_OF_STOCK, got %s", p.Status)
	}

	var l domain.InventoryLog
	if err := db.Get(&l, `
		SELECT id, product_id, type, quantity, previous_quantity, new_quantity,
		       COALESCE(reason,'') AS reason, user_id, created_at
		FROM inventory_logs WHERE product_id='widget'`); err != nil {
		t.Fatal(err)
	}
	// The audit row keeps the requested magnitude, not the applied delta.
	if l.Quantity != 10 || l.PreviousQuantity != 3 || l.NewQuantity != 0 {
		t.Fatalf("bad clamp log: %+v", l)
	}
}

func TestStockService_RepeatedRemoveAtZeroKeepsLogging(t *testing.T) {
	db := memdb(t)
	insertProduct(t, db, "widget", 1, 10)
	svc := services.NewStockService(repos.NewProductRepo(db))

	for i := 0; i < 3; i++ {
		if _, err := svc.Adjust("widget", "remove", 5, "", "u-admin"); err != nil {
			t.Fatal(err)
		}
	}

	p, err := repos.NewProductRepo(db).Get("widget")
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 0 {
		t.Fatalf("want quantity pinned at 0, got %d", p.Quantity)
	}
	// No-ops on quantity still append to the trail.
	if n := countLogs(t, db, "widget"); n != 3 {
		t.Fatalf("want 3 log rows, got %d", n)
	}
}

func TestStockService_ZeroMagnitudeIsNoOpWithAuditRow(t *testing.T) {
	db := memdb(t)
	insertProduct(t, db, "widget", 7, 10)
	svc := services.NewStockService(repos.NewProductRepo(db))

	p, err := svc.Adjust("widget", "add", 0, "stocktake", "u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 7 {
		t.Fatalf("want unchanged quantity 7, got %d", p.Quantity)
	}
	if n := countLogs(t, db, "widget"); n != 1 {
		t.Fatalf("want 1 log row, got %d", n)
	}
}

func TestStockService_InvalidInput(t *testing.T) {
	db := memdb(t)
	insertProduct(t, db, "widget", 5, 10)
	svc := services.NewStockService(repos.NewProductRepo(db))

	cases := []struct {
		name string
		typ  string
		qty  int
		user string
	}{
		{"bad type", "foo", 1, "u-admin"},
		{"adjust not allowed here", "adjust", 1, "u-admin"},
		{"negative quantity", "add", -4, "u-admin"},
		{"missing user", "add", 1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Adjust("widget", tc.typ, tc.qty, "", tc.user)
			var inv *services.InvalidInputError
			if !errors.As(err, &inv) {
				t.Fatalf("want InvalidInputError, got %v", err)
			}
		})
	}

	// Rejected calls must leave no trace.
	p, err := repos.NewProductRepo(db).Get("widget")
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 5 {
		t.Fatalf("quantity mutated by rejected call: %d", p.Quantity)
	}
	if n := countLogs(t, db, "widget"); n != 0 {
		t.Fatalf("rejected call wrote %d log rows", n)
	}
}

func TestStockService_UnknownProduct(t *testing.T) {
	db := memdb(t)
	svc := services.NewStockService(repos.NewProductRepo(db))

	_, err := svc.Adjust("nope", "add", 1, "", "u-admin")
	if !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestStockService_DerivedStates(t *testing.T) {
	p := domain.Product{Quantity: 0, LowStockThreshold: 10}
	if p.StockStatus() != domain.StatusOutOfStock {
		t.Fatalf("qty 0: want OUT_OF_STOCK")
	}
	p.Quantity = 10
	if p.StockStatus() != domain.StatusLowStock {
		t.Fatalf("qty at threshold: want LOW_STOCK")
	}
	p.Quantity = 11
	if p.StockStatus() != domain.StatusInStock {
		t.Fatalf("qty above threshold: want IN_STOCK")
	}
}
