package handlers

import (
	"catalog/static"

	"github.com/gofiber/fiber/v2"
)

// RegisterSiteRoutes registers the health check and the landing page.
func RegisterSiteRoutes(router fiber.Router) {
	router.Get("/healthcheck", HandleHealthCheck)
	router.Get("/", HandleIndex)
}

// HandleHealthCheck always reports OK.
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "OK",
	})
}

// HandleIndex serves the static landing page.
func HandleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).Send(static.IndexHTML)
}
