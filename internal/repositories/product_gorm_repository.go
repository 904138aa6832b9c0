package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// OpenGORM opens a database for the given driver ("sqlite" or "postgres").
func OpenGORM(driver, dsn string, silent bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or updates the products table.
func (r *GORMProductRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// InitDB removes every product and (re)creates the schema.
func (r *GORMProductRepository) InitDB(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if db.Migrator().HasTable(&models.Product{}) {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
	}
	return r.Migrate(ctx)
}

// Create inserts the product under a freshly assigned id.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of the product to the row with the same id.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	if product.ID == 0 {
		return errUpdateWithoutID()
	}
	res := r.db.WithContext(ctx).Model(product).Select("*").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// Delete removes the product's row if it exists.
func (r *GORMProductRepository) Delete(ctx context.Context, product *models.Product) error {
	if product.ID == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("id = ?", product.ID).Delete(&models.Product{}).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Find retrieves a single product by its ID.
func (r *GORMProductRepository) Find(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

func (r *GORMProductRepository) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	return r.findWhere(ctx, "name = ?", name)
}

func (r *GORMProductRepository) FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	return r.findWhere(ctx, "category = ?", category)
}

func (r *GORMProductRepository) FindByAvailability(ctx context.Context, available bool) ([]models.Product, error) {
	return r.findWhere(ctx, "available = ?", available)
}

// All retrieves all products from the database.
func (r *GORMProductRepository) All(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

func (r *GORMProductRepository) findWhere(ctx context.Context, query string, arg any) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products (%s): %w", query, err)
	}
	return products, nil
}

// Close releases the underlying connection pool.
func (r *GORMProductRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
