package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireContentType rejects requests whose media type is not mediaType with 415.
// Parameters such as charset are ignored.
func RequireContentType(mediaType string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := c.Get(fiber.HeaderContentType)
		got := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
		if !strings.EqualFold(got, mediaType) {
			logger.Error("Invalid Content-Type", zap.String("content_type", contentType))
			return fiber.NewError(fiber.StatusUnsupportedMediaType,
				fmt.Sprintf("Content-Type must be %s", mediaType))
		}
		return c.Next()
	}
}
