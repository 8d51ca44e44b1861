// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *CartService
	catalog *testCatalog
	user    *models.User
	product *models.Product
}

func (s *CartServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewCartService(s.db)
	s.catalog = createTestCatalog(s.T(), s.db)
	s.user = createTestUser(s.T(), s.db, "buyer", models.RoleCustomer)
	s.product = createTestProduct(s.T(), s.db, s.catalog.Model.ID, 200, 5, s.catalog.Black.ID, s.catalog.GB128.ID)
}

func (s *CartServiceTestSuite) TestGetCartCreatesSingleton() {
	view, err := s.svc.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Empty(view.Cart.Items)

	again, err := s.svc.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Equal(view.Cart.ID, again.Cart.ID)

	var count int64
	s.db.Model(&models.Cart{}).Where("user_id = ?", s.user.ID).Count(&count)
	s.EqualValues(1, count)
}

func (s *CartServiceTestSuite) TestAddItemSnapshotsPrice() {
	view, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)
	s.Require().Len(view.Cart.Items, 1)
	s.Equal(200.0, view.Cart.Items[0].Price)
	s.Equal(400.0, view.Subtotal)

	// A later catalog price change does not reprice the line.
	s.db.Model(&models.Product{}).Where("id = ?", s.product.ID).Update("price", 300)

	view, err = s.svc.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Equal(200.0, view.Cart.Items[0].Price)
}

func (s *CartServiceTestSuite) TestAddItemMergesQuantity() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)

	view, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 3})
	s.Require().NoError(err)
	s.Require().Len(view.Cart.Items, 1)
	s.Equal(5, view.Cart.Items[0].Quantity)
}

func (s *CartServiceTestSuite) TestAddItemRejectsOverStockWithoutMutation() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 3})
	s.Require().NoError(err)

	// Merged quantity 3+3 exceeds stock 5.
	_, err = s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 3})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidOperation)

	// The rejected add left the existing line untouched.
	view, err := s.svc.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(view.Cart.Items, 1)
	s.Equal(3, view.Cart.Items[0].Quantity)

	// And the catalog stock is unchanged.
	var product models.Product
	s.db.First(&product, s.product.ID)
	s.Equal(5, product.StockQuantity)
}

func (s *CartServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: 9999, Quantity: 1})
	s.ErrorIs(err, ErrNotFound)
}

func (s *CartServiceTestSuite) TestUpdateItemZeroQuantityRemovesLine() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)

	view, err := s.svc.UpdateItem(s.user.ID, s.product.ID, &UpdateCartItemRequest{Quantity: 0})
	s.Require().NoError(err)
	s.Empty(view.Cart.Items)
}

func (s *CartServiceTestSuite) TestUpdateItemRevalidatesStock() {
	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 2})
	s.Require().NoError(err)

	_, err = s.svc.UpdateItem(s.user.ID, s.product.ID, &UpdateCartItemRequest{Quantity: 99})
	s.ErrorIs(err, ErrInvalidOperation)

	view, err := s.svc.UpdateItem(s.user.ID, s.product.ID, &UpdateCartItemRequest{Quantity: 4})
	s.Require().NoError(err)
	s.Equal(4, view.Cart.Items[0].Quantity)
}

func (s *CartServiceTestSuite) TestRemoveAndClear() {
	other := createTestProduct(s.T(), s.db, s.catalog.Model.ID, 300, 5, s.catalog.White.ID, s.catalog.GB256.ID)

	_, err := s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	_, err = s.svc.AddItem(s.user.ID, &AddCartItemRequest{ProductID: other.ID, Quantity: 1})
	s.Require().NoError(err)

	view, err := s.svc.RemoveItem(s.user.ID, s.product.ID)
	s.Require().NoError(err)
	s.Len(view.Cart.Items, 1)

	_, err = s.svc.RemoveItem(s.user.ID, s.product.ID)
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.svc.Clear(s.user.ID))
	view, err = s.svc.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Empty(view.Cart.Items)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
