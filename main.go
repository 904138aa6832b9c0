package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Product service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	// --- Initialize Repository ---
	productRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := productRepo.Close(); err != nil {
			logger.Error("Error closing product store", zap.Error(err))
		}
	}()

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, logger)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if cfg.RabbitMQConsume {
			if err := mqClient.ConsumeProductEvents(rabbitmq.AuditHandler(logger)); err != nil {
				return fmt.Errorf("failed to start product event consumer: %w", err)
			}
		}
	}

	// --- Initialize Service and HTTP App ---
	productService := services.NewProductService(productRepo, publisher, logger)
	app := handlers.NewRouter(productService, logger, os.Stdout)

	// --- Start HTTP Server ---
	logger.Info("Product Service running", zap.String("addr", cfg.AppPort), zap.String("driver", cfg.DatabaseDriver))

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
	return nil
}

// openRepository opens the configured product store and prepares its schema.
func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.ProductRepository, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		logger.Info("Using in-memory product store")
		return repositories.NewInMemoryProductRepository(), nil
	}

	db, err := repositories.OpenGORM(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.LogLevel != "debug")
	if err != nil {
		return nil, err
	}
	repo := repositories.NewGORMProductRepository(db)

	if cfg.DatabaseReset {
		logger.Info("Initializing database")
		err = repo.InitDB(ctx)
	} else {
		err = repo.Migrate(ctx)
	}
	if err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}
