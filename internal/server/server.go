// Package server assembles the Fiber application: middleware, the API route
// table, static assets and the not-found fallback.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/config"
	"github.com/arzan03/storefront/internal/handlers"
	"github.com/arzan03/storefront/internal/middleware"
	"github.com/arzan03/storefront/internal/services"
	"github.com/arzan03/storefront/internal/storage"
	"github.com/arzan03/storefront/internal/store"
)

type Deps struct {
	Config *config.Config
	Stores store.Stores
	Images storage.ImageStore
	Log    *zap.Logger
}

// New wires services, handlers and middleware into a ready Fiber app.
func New(deps Deps) *fiber.App {
	cfg := deps.Config

	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	h := handlers.New(handlers.Services{
		Auth:     services.NewAuthService(deps.Stores.Users, tokens),
		Users:    services.NewUserService(deps.Stores.Users),
		Products: services.NewProductService(deps.Stores, deps.Images, cfg.Storage.MaxImageSize, deps.Log),
		Reviews:  services.NewReviewService(deps.Stores, deps.Log),
		Orders:   services.NewOrderService(deps.Stores),
	}, cfg.Cookie)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: handlers.ErrorHandler(deps.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(deps.Log))
	app.Use(corsMiddleware(cfg.CORSOrigins))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group(cfg.APIPrefix)
	handlers.Register(api, middleware.NewAuthenticator(tokens, cfg.Cookie.Name), h.Routes())

	app.Static("/", cfg.Storage.PublicDir)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route does not exist"})
	})

	return app
}

// Cookies only cross origins that are listed explicitly.
func corsMiddleware(origins string) fiber.Handler {
	if origins == "" {
		return cors.New()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: true,
	})
}
