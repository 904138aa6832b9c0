package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ProductRepositorySuite runs the same behaviour checks against every ProductRepository implementation.
type ProductRepositorySuite struct {
	suite.Suite
	newRepo func(t *testing.T) repositories.ProductRepository
	repo    repositories.ProductRepository
	ctx     context.Context
}

func (s *ProductRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
	s.Require().NoError(s.repo.InitDB(s.ctx))
}

func (s *ProductRepositorySuite) TearDownTest() {
	s.NoError(s.repo.Close())
}

func TestGORMProductRepository(t *testing.T) {
	suite.Run(t, &ProductRepositorySuite{newRepo: func(t *testing.T) repositories.ProductRepository {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		db, err := repositories.OpenGORM("sqlite", dsn, true)
		require.NoError(t, err)
		return repositories.NewGORMProductRepository(db)
	}})
}

func TestInMemoryProductRepository(t *testing.T) {
	suite.Run(t, &ProductRepositorySuite{newRepo: func(*testing.T) repositories.ProductRepository {
		return repositories.NewInMemoryProductRepository()
	}})
}

func newProduct(name string, category models.Category, available bool, price string) *models.Product {
	return &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Available:   available,
		Category:    category,
	}
}

func (s *ProductRepositorySuite) create(p *models.Product) *models.Product {
	s.Require().NoError(s.repo.Create(s.ctx, p))
	return p
}

func (s *ProductRepositorySuite) TestCreateAssignsFreshID() {
	p := newProduct("Fedora", models.Clothing, true, "59.95")
	p.ID = 4242
	s.create(p)

	s.NotZero(p.ID)
	s.NotEqual(uint(4242), p.ID)

	found, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(p.ID, found[0].ID)
	s.Equal("Fedora", found[0].Name)
}

func (s *ProductRepositorySuite) TestCreateAssignsUniqueIDs() {
	seen := map[uint]bool{}
	for i := 0; i < 5; i++ {
		p := s.create(newProduct(fmt.Sprintf("item-%d", i), models.Toys, false, "1.00"))
		s.False(seen[p.ID], "id %d handed out twice", p.ID)
		seen[p.ID] = true
	}
}

func (s *ProductRepositorySuite) TestFind() {
	p := s.create(newProduct("Apple", models.Food, true, "0.75"))

	found, err := s.repo.Find(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(p.Serialize(), found.Serialize())
}

func (s *ProductRepositorySuite) TestFindMissing() {
	found, err := s.repo.Find(s.ctx, 999)
	s.NoError(err)
	s.Nil(found)
}

func (s *ProductRepositorySuite) TestUpdate() {
	p := s.create(newProduct("Lamp", models.Housewares, true, "24.99"))
	originalID := p.ID

	p.Description = "testing"
	p.Available = false
	s.Require().NoError(s.repo.Update(s.ctx, p))
	s.Equal(originalID, p.ID)

	products, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal(originalID, products[0].ID)
	s.Equal("testing", products[0].Description)
	s.False(products[0].Available)
}

func (s *ProductRepositorySuite) TestUpdateWithoutID() {
	p := newProduct("Ghost", models.Toys, true, "3.00")

	err := s.repo.Update(s.ctx, p)
	s.Require().Error(err)
	s.True(models.IsValidationError(err))
}

func (s *ProductRepositorySuite) TestUpdateMissingRow() {
	p := newProduct("Ghost", models.Toys, true, "3.00")
	p.ID = 31337

	err := s.repo.Update(s.ctx, p)
	s.ErrorIs(err, repositories.ErrProductNotFound)
}

func (s *ProductRepositorySuite) TestDelete() {
	keep := s.create(newProduct("Keep", models.Food, true, "2.00"))
	drop := s.create(newProduct("Drop", models.Food, true, "2.00"))

	s.Require().NoError(s.repo.Delete(s.ctx, drop))

	products, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal(keep.ID, products[0].ID)
}

func (s *ProductRepositorySuite) TestDeleteAbsentIsNoop() {
	s.create(newProduct("Keep", models.Food, true, "2.00"))

	s.NoError(s.repo.Delete(s.ctx, &models.Product{ID: 777}))

	products, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 1)
}

func (s *ProductRepositorySuite) TestAllEmpty() {
	products, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.NotNil(products)
	s.Empty(products)
}

func (s *ProductRepositorySuite) TestFindByName() {
	s.create(newProduct("Hat", models.Clothing, true, "12.50"))
	s.create(newProduct("Shoe", models.Clothing, true, "80.00"))
	s.create(newProduct("Hat", models.Toys, false, "5.00"))

	found, err := s.repo.FindByName(s.ctx, "Hat")
	s.Require().NoError(err)
	s.Len(found, 2)
	for _, p := range found {
		s.Equal("Hat", p.Name)
	}

	none, err := s.repo.FindByName(s.ctx, "hat")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ProductRepositorySuite) TestFindByCategory() {
	s.create(newProduct("TV", models.Electronics, true, "499.00"))
	s.create(newProduct("Radio", models.Electronics, false, "49.00"))
	s.create(newProduct("Bread", models.Food, true, "2.10"))

	found, err := s.repo.FindByCategory(s.ctx, models.Electronics)
	s.Require().NoError(err)
	s.Len(found, 2)
	for _, p := range found {
		s.Equal(models.Electronics, p.Category)
	}

	none, err := s.repo.FindByCategory(s.ctx, models.Housewares)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ProductRepositorySuite) TestFindByAvailability() {
	for i := 0; i < 3; i++ {
		s.create(newProduct(fmt.Sprintf("in-%d", i), models.Toys, true, "1.00"))
	}
	for i := 0; i < 2; i++ {
		s.create(newProduct(fmt.Sprintf("out-%d", i), models.Toys, false, "1.00"))
	}

	available, err := s.repo.FindByAvailability(s.ctx, true)
	s.Require().NoError(err)
	s.Len(available, 3)
	for _, p := range available {
		s.True(p.Available)
	}

	unavailable, err := s.repo.FindByAvailability(s.ctx, false)
	s.Require().NoError(err)
	s.Len(unavailable, 2)
	for _, p := range unavailable {
		s.False(p.Available)
	}
}

func (s *ProductRepositorySuite) TestInitDBClearsRows() {
	s.create(newProduct("Temp", models.Food, true, "1.00"))

	s.Require().NoError(s.repo.InitDB(s.ctx))

	products, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.Empty(products)
}

func TestOpenGORMRejectsUnknownDriver(t *testing.T) {
	_, err := repositories.OpenGORM("mysql", "", true)
	assert.Error(t, err)
}
