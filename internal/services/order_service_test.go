// internal/services/order_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *OrderService
	carts   *CartService
	catalog *testCatalog
	user    *models.User
	product *models.Product
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewOrderService(s.db, newTestConfig(), nil)
	s.carts = NewCartService(s.db)
	s.catalog = createTestCatalog(s.T(), s.db)
	s.user = createTestUser(s.T(), s.db, "buyer", models.RoleCustomer)
	s.product = createTestProduct(s.T(), s.db, s.catalog.Model.ID, 200, 10, s.catalog.Black.ID, s.catalog.GB128.ID)
}

func (s *OrderServiceTestSuite) checkoutRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		ShippingAddress: shippingAddressFixture(),
		PaymentMethod:   models.PaymentMethodCashOnDelivery,
	}
}

func (s *OrderServiceTestSuite) TestCheckoutEmptyCartFails() {
	_, err := s.carts.GetCart(s.user.ID)
	s.Require().NoError(err)

	_, err = s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.ErrorIs(err, ErrInvalidOperation)

	var orderCount int64
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.EqualValues(0, orderCount)
}

func (s *OrderServiceTestSuite) TestCheckoutArithmeticAndSideEffects() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)

	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	// 200 subtotal + 750 shipping, no tax, no discount.
	s.Equal(200.0, order.Subtotal)
	s.Equal(750.0, order.ShippingFee)
	s.Equal(0.0, order.TaxAmount)
	s.Equal(0.0, order.DiscountAmount)
	s.Equal(950.0, order.TotalAmount)

	s.Equal(models.OrderStatusPending, order.Status)
	s.Equal(models.PaymentStatusPending, order.PaymentStatus)
	s.True(strings.HasPrefix(order.OrderNumber, "ORD-"))

	s.Require().Len(order.Items, 1)
	s.Equal(1, order.Items[0].Quantity)
	s.Equal(200.0, order.Items[0].PriceAtPurchase)

	s.Require().Len(order.Addresses, 1)
	s.Equal(models.AddressTypeShipping, order.Addresses[0].AddressType)

	// Stock decremented, cart cleared.
	var product models.Product
	s.db.First(&product, s.product.ID)
	s.Equal(9, product.StockQuantity)

	view, err := s.carts.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Empty(view.Cart.Items)
}

func (s *OrderServiceTestSuite) TestCheckoutWithBillingAddress() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)

	req := s.checkoutRequest()
	billing := shippingAddressFixture()
	billing.FullName = "Pat Billing"
	req.BillingAddress = &billing

	order, err := s.svc.CreateOrder(s.user.ID, req)
	s.Require().NoError(err)
	s.Len(order.Addresses, 2)
}

func (s *OrderServiceTestSuite) TestCheckoutInsufficientStockRollsBack() {
	// Quantity 3 made it into the cart, then the stock dropped to 2.
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 3})
	s.Require().NoError(err)
	s.db.Model(&models.Product{}).Where("id = ?", s.product.ID).Update("stock_quantity", 2)

	_, err = s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.ErrorIs(err, ErrInvalidOperation)

	// Nothing persisted, cart intact, stock untouched.
	var orderCount int64
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.EqualValues(0, orderCount)

	var product models.Product
	s.db.First(&product, s.product.ID)
	s.Equal(2, product.StockQuantity)

	view, err := s.carts.GetCart(s.user.ID)
	s.Require().NoError(err)
	s.Len(view.Cart.Items, 1)
}

func (s *OrderServiceTestSuite) TestCompetingCheckoutsNeverOversell() {
	// Two buyers race for the last unit; the second checkout must fail and
	// stock must never go negative.
	other := createTestUser(s.T(), s.db, "rival", models.RoleCustomer)
	s.db.Model(&models.Product{}).Where("id = ?", s.product.ID).Update("stock_quantity", 1)

	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	_, err = s.carts.AddItem(other.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)

	_, err = s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	_, err = s.svc.CreateOrder(other.ID, s.checkoutRequest())
	s.ErrorIs(err, ErrInvalidOperation)

	var product models.Product
	s.db.First(&product, s.product.ID)
	s.Equal(0, product.StockQuantity)
}

func (s *OrderServiceTestSuite) TestGetOrderOwnership() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	other := createTestUser(s.T(), s.db, "stranger", models.RoleCustomer)
	_, err = s.svc.GetOrder(other.ID, order.ID)
	s.ErrorIs(err, ErrUnauthorized)

	got, err := s.svc.GetOrder(s.user.ID, order.ID)
	s.Require().NoError(err)
	s.Equal(order.OrderNumber, got.OrderNumber)
}

func (s *OrderServiceTestSuite) TestUpdateStatusStampsDates() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	updated, err := s.svc.UpdateStatus(order.ID, &UpdateOrderStatusRequest{
		Status:         models.OrderStatusShipped,
		TrackingNumber: "TRACK-1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.ShippedDate)
	s.Equal("TRACK-1", updated.TrackingNumber)
	s.Nil(updated.DeliveredDate)

	updated, err = s.svc.UpdateStatus(order.ID, &UpdateOrderStatusRequest{
		Status: models.OrderStatusDelivered,
	})
	s.Require().NoError(err)
	s.NotNil(updated.DeliveredDate)
}

func (s *OrderServiceTestSuite) TestCancelRestoresStock() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 4})
	s.Require().NoError(err)
	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	var product models.Product
	s.db.First(&product, s.product.ID)
	s.Equal(6, product.StockQuantity)

	cancelled, err := s.svc.CancelOrder(s.user.ID, order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusCancelled, cancelled.Status)

	s.db.First(&product, s.product.ID)
	s.Equal(10, product.StockQuantity)
}

func (s *OrderServiceTestSuite) TestCancelRejectedPastConfirmed() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	_, err = s.svc.UpdateStatus(order.ID, &UpdateOrderStatusRequest{Status: models.OrderStatusShipped})
	s.Require().NoError(err)

	_, err = s.svc.CancelOrder(s.user.ID, order.ID)
	s.ErrorIs(err, ErrInvalidOperation)

	// Stock not restored by the rejected cancel.
	var product models.Product
	s.db.First(&product, s.product.ID)
	s.Equal(9, product.StockQuantity)
}

func (s *OrderServiceTestSuite) TestCancelOwnershipCheck() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	other := createTestUser(s.T(), s.db, "stranger", models.RoleCustomer)
	_, err = s.svc.CancelOrder(other.ID, order.ID)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *OrderServiceTestSuite) TestAdminListFiltersByStatus() {
	_, err := s.carts.AddItem(s.user.ID, &AddCartItemRequest{ProductID: s.product.ID, Quantity: 1})
	s.Require().NoError(err)
	order, err := s.svc.CreateOrder(s.user.ID, s.checkoutRequest())
	s.Require().NoError(err)

	_, err = s.svc.UpdateStatus(order.ID, &UpdateOrderStatusRequest{Status: models.OrderStatusConfirmed})
	s.Require().NoError(err)

	params := utils.PaginationParams{PageNumber: 1, PageSize: 10}

	result, err := s.svc.GetAllOrders("confirmed", params)
	s.Require().NoError(err)
	s.EqualValues(1, result.TotalCount)

	result, err = s.svc.GetAllOrders("cancelled", params)
	s.Require().NoError(err)
	s.EqualValues(0, result.TotalCount)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
