package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned when an update targets a row that does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
//
// Find returns (nil, nil) when no product has the given id. Delete of an
// absent product is not an error.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
	Find(ctx context.Context, id uint) (*models.Product, error)
	FindByName(ctx context.Context, name string) ([]models.Product, error)
	FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	FindByAvailability(ctx context.Context, available bool) ([]models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	InitDB(ctx context.Context) error
	Close() error
}

func errUpdateWithoutID() error {
	return models.NewDataValidationError("Update called with no id for product")
}
