package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/dto"
	"storefront/internal/metrics"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Product, category and customer catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return root
}

// storefront serve
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger.New(cfg.AppEnv, cfg.LogLevel))
		},
	}
}

// storefront migrate
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.AppEnv, cfg.LogLevel)
			if cfg.DBDriver == "memory" {
				log.Info("memory store has no schema, nothing to migrate")
				return nil
			}

			db, err := database.Open(cfg, nil)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations applied", "driver", cfg.DBDriver)
			return nil
		},
	}
}

// storefront seed
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty catalog with sample categories and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.AppEnv, cfg.LogLevel)

			app, err := bootstrap(cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			_, err = database.Seed(cmd.Context(), app.categories, app.products, log)
			return err
		},
	}
}

// publisher is the event sink the services publish through.
type publisher interface {
	services.EventPublisher
	Close() error
}

// application holds every long-lived component of a running process.
type application struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	db      *gorm.DB

	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	customers  repositories.CustomerRepository
	publisher  publisher
}

// bootstrap opens the store selected by cfg, migrates it and connects the
// event publisher.
func bootstrap(cfg config.Config, log *slog.Logger) (*application, error) {
	app := &application{cfg: cfg, log: log, metrics: metrics.New()}

	// --- Initialize Repositories ---
	if cfg.DBDriver == "memory" {
		store := repositories.NewMemoryStore()
		app.products = repositories.NewMemoryProductRepository(store)
		app.categories = repositories.NewMemoryCategoryRepository(store)
		app.customers = repositories.NewMemoryCustomerRepository(store)
	} else {
		db, err := database.Open(cfg, app.metrics)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, err
		}
		app.db = db
		app.products = repositories.NewGORMProductRepository(db)
		app.categories = repositories.NewGORMCategoryRepository(db)
		app.customers = repositories.NewGORMCustomerRepository(db)
	}

	// --- Initialize RabbitMQ Client ---
	app.publisher = rabbitmq.NopPublisher{}
	if cfg.EventsEnabled() {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitExchange}, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.publisher = mq
	}

	log.Info("storefront initialised", "driver", cfg.DBDriver, "events", cfg.EventsEnabled())
	return app, nil
}

// Server builds the HTTP surface over the application's repositories.
func (a *application) Server() *fiber.App {
	events := services.NewNotifier(a.publisher, a.metrics, a.log)

	deps := server.Deps{
		Products:   services.NewProductService(a.products, a.categories, events, a.log),
		Categories: services.NewCategoryService(a.categories, events, a.log),
		Customers:  services.NewCustomerService(a.customers, events, a.log),
		Validator:  dto.NewValidator(),
		Metrics:    a.metrics,
		Log:        a.log,
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			deps.Store = sqlDB
		}
	}
	return server.New(deps)
}

// Close releases the publisher and the database connection pool.
func (a *application) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Error("error closing event publisher", "error", err)
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.log.Error("error closing database", "error", err)
		}
	}
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	app, err := bootstrap(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.SeedOnStart {
		if _, err := database.Seed(ctx, app.categories, app.products, log); err != nil {
			return err
		}
	}

	srv := app.Server()
	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.AppPort)
		listenErr <- srv.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := srv.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	log.Info("server gracefully stopped")
	return nil
}
