package main

import (
	"context"
	"log"

	"fashionexpress/config"
	"fashionexpress/internal/sessions"
	"fashionexpress/middleware"
	"fashionexpress/models"
	"fashionexpress/routes"
	"fashionexpress/storage"
	"fashionexpress/storage/gormstore"
	"fashionexpress/storage/memstore"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	if err := config.Seed(context.Background(), store); err != nil {
		log.Fatal("Failed to seed storage:", err)
	}

	sessionStore, err := sessions.New(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to initialize session store:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "FashionExpress",
		ServerHeader: "FashionExpress Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(models.SuccessResponse("API is healthy", nil, nil))
	})

	routes.SetupRoutes(app, store, sessionStore)
	middleware.SetupErrorHandler(app)

	log.Printf("Server starting on host %s in port %s", cfg.Host, cfg.AppPort)

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// openStore picks the storage backend from configuration. The backends are
// never mixed: one process runs entirely on one of them.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "memory" {
		log.Println("Using in-memory storage backend")
		return memstore.New(), nil
	}

	store, db, err := gormstore.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.ResetDB {
		if err := config.ResetAndMigrate(db); err != nil {
			return nil, err
		}
	} else if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return store, nil
}

