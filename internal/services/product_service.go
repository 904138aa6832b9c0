package services

import (
	"context"
	"fmt"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

// Product lifecycle event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product lifecycle events. *rabbitmq.Client implements it.
type EventPublisher interface {
	PublishProductEvent(eventType string, product any) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	s.logger.Info("Processing all Products")
	return s.repo.All(ctx)
}

// GetProductByID retrieves a single product by its ID. It returns nil when there is none.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	s.logger.Info("Processing lookup for id", zap.Uint("id", id))
	return s.repo.Find(ctx, id)
}

func (s *ProductService) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	s.logger.Info("Processing name query", zap.String("name", name))
	return s.repo.FindByName(ctx, name)
}

func (s *ProductService) FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	s.logger.Info("Processing category query", zap.Stringer("category", category))
	return s.repo.FindByCategory(ctx, category)
}

func (s *ProductService) FindByAvailability(ctx context.Context, available bool) ([]models.Product, error) {
	s.logger.Info("Processing availability query", zap.Bool("available", available))
	return s.repo.FindByAvailability(ctx, available)
}

// CreateProduct stores a new product; any id already on it is replaced.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	s.logger.Info("Creating product", zap.String("name", product.Name))
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.publish(EventProductCreated, product)
	return nil
}

// UpdateProduct persists every field of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	s.logger.Info("Updating product", zap.String("name", product.Name), zap.Uint("id", product.ID))
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	s.publish(EventProductUpdated, product)
	return nil
}

// DeleteProduct deletes a product by its ID. Deleting an unknown id succeeds.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up product %d for deletion: %w", id, err)
	}
	if product == nil {
		s.logger.Info("Nothing to delete", zap.Uint("id", id))
		return nil
	}

	s.logger.Info("Deleting product", zap.String("name", product.Name), zap.Uint("id", id))
	if err := s.repo.Delete(ctx, product); err != nil {
		return err
	}
	s.publish(EventProductDeleted, product)
	return nil
}

// publish never fails the caller: the write has already been committed.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(eventType, product.Serialize()); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event", eventType), zap.Uint("id", product.ID), zap.Error(err))
	}
}
