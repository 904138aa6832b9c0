package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"catalog/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// InitDB drops every stored product. Ids keep increasing across resets.
func (r *InMemoryProductRepository) InitDB(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[uint]models.Product)
	return nil
}

// Create adds a new product under the next free id.
func (r *InMemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *InMemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	if product.ID == 0 {
		return errUpdateWithoutID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product if present.
func (r *InMemoryProductRepository) Delete(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, product.ID)
	return nil
}

// Find returns a product by its ID, or nil if there is none.
func (r *InMemoryProductRepository) Find(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *InMemoryProductRepository) FindByName(_ context.Context, name string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Name == name }), nil
}

func (r *InMemoryProductRepository) FindByCategory(_ context.Context, category models.Category) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Category == category }), nil
}

func (r *InMemoryProductRepository) FindByAvailability(_ context.Context, available bool) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Available == available }), nil
}

// All returns all products in insertion order.
func (r *InMemoryProductRepository) All(_ context.Context) ([]models.Product, error) {
	return r.filter(func(models.Product) bool { return true }), nil
}

func (r *InMemoryProductRepository) Close() error {
	return nil
}

func (r *InMemoryProductRepository) filter(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			productList = append(productList, p)
		}
	}
	// ids are handed out in increasing order, so sorting by id restores insertion order
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList
}
