package handlers_test

import (
	"net/http"
	"testing"
)

func TestStockEndpoint_Add(t *testing.T) {
	app, db := newTestApp(t)
	tok := login(t, app, "admin@stockroom.test")

	resp, body := doJSON(t, app, "PUT", "/api/products/green-tea-50/stock", tok, map[string]any{
		"type":     "add",
		"quantity": 20,
		"reason":   "weekly delivery",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d body %v", resp.StatusCode, body)
	}
	if body["success"] != true {
		t.Fatalf("want success envelope, got %v", body)
	}
	d := data(t, body)
	if d["quantity"].(float64) != 26 { // seeded at 6
		t.Fatalf("want quantity 26, got %v", d["quantity"])
	}
	if d["status"] != "IN_STOCK" {
		t.Fatalf("want IN_STOCK, got %v", d["status"])
	}
	// Category/supplier resolved for display.
	if d["categoryName"] != "Beverages" || d["supplierName"] != "Freshline Distributors" {
		t.Fatalf("names not resolved: %v", d)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM inventory_logs WHERE product_id='green-tea-50'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 audit row, got %d", n)
	}
}

func TestStockEndpoint_InvalidType(t *testing.T) {
	app, db := newTestApp(t)
	tok := login(t, app, "admin@stockroom.test")

	resp, body := doJSON(t, app, "PUT", "/api/products/green-tea-50/stock", tok, map[string]any{
		"type":     "foo",
		"quantity": 5,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d body %v", resp.StatusCode, body)
	}
	if body["success"] != false {
		t.Fatalf("want failure envelope, got %v", body)
	}

	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM products WHERE id='green-tea-50'`); err != nil {
		t.Fatal(err)
	}
	if qty != 6 {
		t.Fatalf("rejected call mutated quantity: %d", qty)
	}
}

func TestStockEndpoint_UnknownProduct(t *testing.T) {
	app, _ := newTestApp(t)
	tok := login(t, app, "admin@stockroom.test")

	resp, _ := doJSON(t, app, "PUT", "/api/products/nope/stock", tok, map[string]any{
		"type":     "add",
		"quantity": 1,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestStockEndpoint_AuthZ(t *testing.T) {
	app, _ := newTestApp(t)

	// No token
	resp, _ := doJSON(t, app, "PUT", "/api/products/green-tea-50/stock", "", map[string]any{
		"type": "add", "quantity": 1,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: want 401, got %d", resp.StatusCode)
	}

	// Garbage token
	resp, _ = doJSON(t, app, "PUT", "/api/products/green-tea-50/stock", "not-a-token", map[string]any{
		"type": "add", "quantity": 1,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", resp.StatusCode)
	}

	// Staff may read but not adjust
	staff := login(t, app, "maya@stockroom.test")
	resp, _ = doJSON(t, app, "PUT", "/api/products/green-tea-50/stock", staff, map[string]any{
		"type": "add", "quantity": 1,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("staff: want 403, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "GET", "/api/products/green-tea-50", staff, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("staff read: want 200, got %d", resp.StatusCode)
	}
}

func TestProductCRUD(t *testing.T) {
	app, _ := newTestApp(t)
	tok := login(t, app, "admin@stockroom.test")

	resp, body := doJSON(t, app, "POST", "/api/products", tok, map[string]any{
		"name":       "Sparkling Water 500ml",
		"sku":        "SKU-WAT-001",
		"categoryId": "beverages",
		"supplierId": "sup-fresh",
		"quantity":   24,
		"price":      0.99,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d body %v", resp.StatusCode, body)
	}
	d := data(t, body)
	id, _ := d["id"].(string)
	if id == "" {
		t.Fatalf("create: no id in %v", d)
	}
	// Defaults applied when absent.
	if d["lowStockThreshold"].(float64) != 10 || d["unit"] != "pcs" {
		t.Fatalf("defaults not applied: %v", d)
	}

	// Duplicate SKU
	resp, _ = doJSON(t, app, "POST", "/api/products", tok, map[string]any{
		"name":       "Dup",
		"sku":        "SKU-WAT-001",
		"categoryId": "beverages",
		"supplierId": "sup-fresh",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("dup sku: want 400, got %d", resp.StatusCode)
	}

	// Unknown category is a bad reference, not a server error.
	resp, _ = doJSON(t, app, "POST", "/api/products", tok, map[string]any{
		"name":       "Ghost",
		"categoryId": "nope",
		"supplierId": "sup-fresh",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad category: want 400, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, "PUT", "/api/products/"+id, tok, map[string]any{
		"name":       "Sparkling Water 500ml (case)",
		"sku":        "SKU-WAT-001",
		"categoryId": "beverages",
		"supplierId": "sup-fresh",
		"unit":       "case",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d body %v", resp.StatusCode, body)
	}
	d = data(t, body)
	// Quantity is not editable through generic update.
	if d["quantity"].(float64) != 24 {
		t.Fatalf("update touched quantity: %v", d["quantity"])
	}

	resp, _ = doJSON(t, app, "DELETE", "/api/products/"+id, tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "GET", "/api/products/"+id, tok, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: want 404, got %d", resp.StatusCode)
	}
}
