package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc)

	api := app.Group("/api")

	// Auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many attempts. Please try again later.",
			})
		},
	}), deps.AuthHandler.Login)

	auth := handlers.RequireAuth(authSvc)
	admin := handlers.RequireAdmin()

	api.Get("/auth/me", auth, deps.AuthHandler.Me)

	// Products
	api.Get("/products", auth, deps.ProductHandler.List)
	api.Post("/products", auth, admin, deps.ProductHandler.Create)
	api.Get("/products/:id", auth, deps.ProductHandler.Get)
	api.Put("/products/:id", auth, admin, deps.ProductHandler.Update)
	api.Delete("/products/:id", auth, admin, deps.ProductHandler.Delete)
	api.Put("/products/:id/stock", auth, admin, deps.ProductHandler.UpdateStock)

	// Inventory trail & reports
	api.Get("/inventory/logs", auth, deps.InventoryHandler.ListLogs)
	api.Get("/inventory/report", auth, admin, deps.InventoryHandler.Report)

	// Reference data
	api.Get("/categories", auth, deps.CategoryHandler.List)
	api.Get("/suppliers", auth, deps.SupplierHandler.List)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
