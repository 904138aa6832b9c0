package handlers

import (
	"io"

	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewRouter builds the Fiber app serving the product API. Access logs are
// written to accessLog when it is not nil.
func NewRouter(service *services.ProductService, logger *zap.Logger, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "catalog",
		ErrorHandler: ErrorHandler(logger),
	})

	app.Use(recover.New())
	if accessLog != nil {
		app.Use(fiberlogger.New(fiberlogger.Config{Output: accessLog}))
	}

	RegisterSiteRoutes(app)
	NewProductHandler(service, logger).RegisterRoutes(app)

	return app
}
