// internal/services/brand_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
)

type CatalogCrudTestSuite struct {
	suite.Suite
	db     *gorm.DB
	brands *BrandService
	phones *ModelService
}

func (s *CatalogCrudTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.brands = NewBrandService(s.db)
	s.phones = NewModelService(s.db)
}

func (s *CatalogCrudTestSuite) TestBrandCrud() {
	brand, err := s.brands.Create(&BrandRequest{Name: "Acme"})
	s.Require().NoError(err)

	_, err = s.brands.Create(&BrandRequest{Name: "acme"})
	s.ErrorIs(err, ErrInvalidOperation)

	updated, err := s.brands.Update(brand.ID, &BrandRequest{Name: "Acme Mobile"})
	s.Require().NoError(err)
	s.Equal("Acme Mobile", updated.Name)

	_, err = s.brands.Update(9999, &BrandRequest{Name: "Ghost"})
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.brands.Delete(brand.ID))
	_, err = s.brands.GetByID(brand.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *CatalogCrudTestSuite) TestBrandDeleteBlockedByModels() {
	brand, err := s.brands.Create(&BrandRequest{Name: "Acme"})
	s.Require().NoError(err)

	_, err = s.phones.Create(&ModelRequest{Name: "Phone X", BrandID: brand.ID})
	s.Require().NoError(err)

	s.ErrorIs(s.brands.Delete(brand.ID), ErrInvalidOperation)
}

func (s *CatalogCrudTestSuite) TestModelCrud() {
	brand, err := s.brands.Create(&BrandRequest{Name: "Acme"})
	s.Require().NoError(err)

	_, err = s.phones.Create(&ModelRequest{Name: "Phone X", BrandID: 9999})
	s.ErrorIs(err, ErrNotFound)

	phoneModel, err := s.phones.Create(&ModelRequest{Name: "Phone X", BrandID: brand.ID})
	s.Require().NoError(err)
	s.Equal("Acme", phoneModel.Brand.Name)

	updated, err := s.phones.Update(phoneModel.ID, &ModelRequest{Name: "Phone X Pro", BrandID: brand.ID})
	s.Require().NoError(err)
	s.Equal("Phone X Pro", updated.Name)

	s.Require().NoError(s.phones.Delete(phoneModel.ID))
	_, err = s.phones.GetByID(phoneModel.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *CatalogCrudTestSuite) TestModelDeleteBlockedByProducts() {
	brand, err := s.brands.Create(&BrandRequest{Name: "Acme"})
	s.Require().NoError(err)
	phoneModel, err := s.phones.Create(&ModelRequest{Name: "Phone X", BrandID: brand.ID})
	s.Require().NoError(err)

	product := &models.Product{ModelID: phoneModel.ID, SKU: "M1-Test", Price: 100, StockQuantity: 1}
	s.Require().NoError(s.db.Create(product).Error)

	s.ErrorIs(s.phones.Delete(phoneModel.ID), ErrInvalidOperation)
}

func TestCatalogCrudSuite(t *testing.T) {
	suite.Run(t, new(CatalogCrudTestSuite))
}
