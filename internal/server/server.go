// Package server assembles the fiber application: middleware, the /api
// resource routes, health and metrics endpoints.
package server

import (
	"errors"
	"log/slog"
	"time"

	"storefront/internal/dto"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Products   *services.ProductService
	Categories *services.CategoryService
	Customers  *services.CustomerService
	Validator  *dto.Validator
	Metrics    *metrics.Metrics
	Store      Pinger
	Log        *slog.Logger
}

// New returns a configured fiber app with every route registered.
func New(deps Deps) *fiber.App {
	log := deps.Log

	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Message: fe.Message})
			}
			// Never leak internals to the client.
			log.ErrorContext(c.UserContext(), "unhandled error",
				"request_id", middleware.RequestID(c),
				"path", c.Path(),
				"error", err,
			)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Message: handlers.UnexpectedErrorMessage,
			})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	if deps.Metrics != nil {
		app.Use(middleware.Metrics(deps.Metrics))
	}
	app.Use(recover.New())
	app.Use(helmet.New())

	// ---------- Operational endpoints ----------
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Store != nil {
			if err := deps.Store.Ping(); err != nil {
				log.WarnContext(c.UserContext(), "health check failed", "error", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
					"time":   time.Now().UTC().Format(time.RFC3339),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// ---------- API routes ----------
	api := app.Group("/api")
	handlers.NewProductHandler(deps.Products, deps.Validator, log).RegisterRoutes(api)
	handlers.NewCategoryHandler(deps.Categories, deps.Validator, log).RegisterRoutes(api)
	handlers.NewCustomerHandler(deps.Customers, deps.Validator, log).RegisterRoutes(api)

	return app
}
