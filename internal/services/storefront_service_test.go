// internal/services/storefront_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type StorefrontServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *StorefrontService
	catalog *testCatalog
}

func (s *StorefrontServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewStorefrontService(s.db)
	s.catalog = createTestCatalog(s.T(), s.db)
}

func (s *StorefrontServiceTestSuite) TestListingsOnlyIncludeInStockModels() {
	c := s.catalog

	createTestProduct(s.T(), s.db, c.Model.ID, 900, 3, c.Black.ID, c.GB128.ID)
	createTestProduct(s.T(), s.db, c.Model.ID, 1100, 2, c.White.ID, c.GB256.ID)

	listings, err := s.svc.GetModelListings()
	s.Require().NoError(err)
	s.Require().Len(listings, 1)

	listing := listings[0]
	s.Equal(c.Model.ID, listing.ModelID)
	s.Equal("Acme", listing.BrandName)
	s.Equal(900.0, listing.MinPrice)
	s.Equal(1100.0, listing.MaxPrice)
	s.Equal(5, listing.TotalStock)
	s.Len(listing.Variants, 2)
	s.Len(listing.AttributeOptions, 2)

	// Out-of-stock variants drop out; a model with none disappears.
	s.db.Exec("UPDATE products SET stock_quantity = 0")
	listings, err = s.svc.GetModelListings()
	s.Require().NoError(err)
	s.Empty(listings)
}

func (s *StorefrontServiceTestSuite) TestMatchVariantExactSet() {
	c := s.catalog

	black128 := createTestProduct(s.T(), s.db, c.Model.ID, 900, 3, c.Black.ID, c.GB128.ID)
	createTestProduct(s.T(), s.db, c.Model.ID, 1100, 2, c.Black.ID, c.GB256.ID)

	// Order of ids does not matter.
	product, err := s.svc.MatchVariant(c.Model.ID, []uint{c.GB128.ID, c.Black.ID})
	s.Require().NoError(err)
	s.Equal(black128.ID, product.ID)

	// A subset of a variant's attributes is not a match.
	_, err = s.svc.MatchVariant(c.Model.ID, []uint{c.Black.ID})
	s.ErrorIs(err, ErrNotFound)

	// No variant has this combination.
	_, err = s.svc.MatchVariant(c.Model.ID, []uint{c.White.ID, c.GB128.ID})
	s.ErrorIs(err, ErrNotFound)
}

func (s *StorefrontServiceTestSuite) TestMatchVariantValidatesIDs() {
	c := s.catalog

	_, err := s.svc.MatchVariant(c.Model.ID, nil)
	s.ErrorIs(err, ErrInvalidOperation)

	_, err = s.svc.MatchVariant(c.Model.ID, []uint{0})
	s.ErrorIs(err, ErrInvalidOperation)

	_, err = s.svc.MatchVariant(c.Model.ID, []uint{c.Black.ID, c.Black.ID})
	s.ErrorIs(err, ErrInvalidOperation)
}

func TestStorefrontServiceSuite(t *testing.T) {
	suite.Run(t, new(StorefrontServiceTestSuite))
}
