package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stockroom/internal/http/handlers"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

// newTestApp wires the API the same way main does, minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := services.NewAuthService(repos.NewUserRepo(db), "test-secret", time.Hour)
	deps := handlers.NewDeps(db, authSvc)

	app := fiber.New()
	app.Use(requestid.New())

	api := app.Group("/api")
	api.Post("/auth/login", deps.AuthHandler.Login)

	auth := handlers.RequireAuth(authSvc)
	admin := handlers.RequireAdmin()

	api.Get("/auth/me", auth, deps.AuthHandler.Me)
	api.Get("/products", auth, deps.ProductHandler.List)
	api.Post("/products", auth, admin, deps.ProductHandler.Create)
	api.Get("/products/:id", auth, deps.ProductHandler.Get)
	api.Put("/products/:id", auth, admin, deps.ProductHandler.Update)
	api.Delete("/products/:id", auth, admin, deps.ProductHandler.Delete)
	api.Put("/products/:id/stock", auth, admin, deps.ProductHandler.UpdateStock)
	api.Get("/inventory/logs", auth, deps.InventoryHandler.ListLogs)
	api.Get("/inventory/report", auth, admin, deps.InventoryHandler.Report)
	api.Get("/categories", auth, deps.CategoryHandler.List)
	api.Get("/suppliers", auth, deps.SupplierHandler.List)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("bad JSON body %q: %v", raw, err)
		}
	}
	return resp, out
}

// login returns a bearer token for a seeded user.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d body %v", email, resp.StatusCode, body)
	}
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatalf("login %s: no token in %v", email, body)
	}
	return tok
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data object in %v", body)
	}
	return d
}
