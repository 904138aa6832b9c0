package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const productRouteName = "get_products"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	jsonOnly := middleware.RequireContentType(fiber.MIMEApplicationJSON, h.logger)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", jsonOnly, h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct).Name(productRouteName)
	productRoutes.Put("/:id", jsonOnly, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product and points Location at it.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	h.logger.Info("Request to create a product")

	product := &models.Product{}
	if err := decodeProduct(c, product); err != nil {
		return err
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return fmt.Errorf("could not create product: %w", err)
	}

	location, err := c.GetRouteURL(productRouteName, fiber.Map{"id": strconv.FormatUint(uint64(product.ID), 10)})
	if err != nil {
		return fmt.Errorf("could not build product location: %w", err)
	}
	c.Location(c.BaseURL() + location)

	return c.Status(fiber.StatusCreated).JSON(product.Serialize())
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	h.logger.Info("Request for product", zap.Uint("id", id))

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("could not retrieve product %d: %w", id, err)
	}
	if product == nil {
		return productNotFound(c.Params("id"))
	}

	return c.Status(fiber.StatusOK).JSON(product.Serialize())
}

// HandleUpdateProduct replaces every field of an existing product. The id
// always comes from the path, whatever the body says.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	h.logger.Info("Request to update product", zap.Uint("id", id))

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("could not retrieve product %d: %w", id, err)
	}
	if product == nil {
		return productNotFound(c.Params("id"))
	}

	if err := decodeProduct(c, product); err != nil {
		return err
	}
	product.ID = id
	if err := h.service.UpdateProduct(c.UserContext(), product); err != nil {
		return fmt.Errorf("could not update product %d: %w", id, err)
	}

	return c.Status(fiber.StatusOK).JSON(product.Serialize())
}

// HandleDeleteProduct deletes a product. Unknown ids are not an error.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	h.logger.Info("Request to delete product", zap.Uint("id", id))

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return fmt.Errorf("could not delete product %d: %w", id, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleListProducts returns all products, or the ones matching a single
// filter. Only the first of name, category, available that is present applies.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	h.logger.Info("Request for product list")
	ctx := c.UserContext()

	name := c.Query("name")
	category := c.Query("category")
	available := c.Query("available")

	var (
		products []models.Product
		err      error
	)
	if name != "" {
		products, err = h.service.FindByName(ctx, name)
	} else if category != "" {
		cat, parseErr := models.ParseCategory(strings.ToUpper(category))
		if parseErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Unknown category '%s'", category))
		}
		products, err = h.service.FindByCategory(ctx, cat)
	} else if available != "" {
		products, err = h.service.FindByAvailability(ctx, isTruthy(available))
	} else {
		products, err = h.service.GetAllProducts(ctx)
	}
	if err != nil {
		return fmt.Errorf("could not retrieve products: %w", err)
	}

	results := make([]models.ProductPayload, 0, len(products))
	for i := range products {
		results = append(results, products[i].Serialize())
	}
	h.logger.Info("Returning products", zap.Int("count", len(results)))
	return c.Status(fiber.StatusOK).JSON(results)
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// decodeProduct parses the request body as JSON and deserializes it into product.
func decodeProduct(c *fiber.Ctx, product *models.Product) error {
	var data any
	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return &models.DataValidationError{
			Msg: "Invalid product: body of request contained bad or no data",
			Err: err,
		}
	}
	return product.Deserialize(data)
}
