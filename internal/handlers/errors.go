package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// ErrorHandler turns every error returned by a handler into a JSON body
// {"status", "error", "message"}. Unexpected errors become a 500 whose
// message does not expose internals.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An internal error occurred, please try again later"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case models.IsValidationError(err):
			code = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, repositories.ErrProductNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		default:
			logger.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if code < fiber.StatusInternalServerError {
			logger.Warn(message, zap.Int("status", code), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"status":  code,
			"error":   utils.StatusMessage(code),
			"message": message,
		})
	}
}

func productNotFound(id string) error {
	return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Product with id '%s' was not found.", id))
}

// productID reads the :id route parameter. Anything that is not a positive
// integer cannot name a product and is reported as not found.
func productID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, productNotFound(raw)
	}
	return uint(id), nil
}
