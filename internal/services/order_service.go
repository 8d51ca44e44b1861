// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/config"
	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type OrderService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier *NotificationService
}

type OrderAddressRequest struct {
	FullName     string `json:"fullName" validate:"required,min=1,max=150"`
	AddressLine1 string `json:"addressLine1" validate:"required,min=1,max=255"`
	AddressLine2 string `json:"addressLine2" validate:"max=255"`
	City         string `json:"city" validate:"required,min=1,max=100"`
	State        string `json:"state" validate:"max=100"`
	ZipCode      string `json:"zipCode" validate:"max=20"`
	Country      string `json:"country" validate:"required,min=1,max=100"`
	Phone        string `json:"phone" validate:"max=30"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type CreateOrderRequest struct {
	ShippingAddress OrderAddressRequest  `json:"shippingAddress" validate:"required"`
	BillingAddress  *OrderAddressRequest `json:"billingAddress" validate:"omitempty"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash_on_delivery credit_card bank_transfer mobile_wallet"`
	CustomerNotes   string               `json:"customerNotes" validate:"max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status         models.OrderStatus `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	AdminNotes     string             `json:"adminNotes" validate:"max=1000"`
	TrackingNumber string             `json:"trackingNumber" validate:"max=100"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, notifier *NotificationService) *OrderService {
	return &OrderService{db: db, cfg: cfg, notifier: notifier}
}

// CreateOrder turns the user's cart into an immutable order. All steps run
// in one transaction: a stock shortfall on any line aborts the whole
// checkout and leaves cart, products and orders untouched.
func (s *OrderService) CreateOrder(userID uint, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart is empty", ErrInvalidOperation)
			}
			return fmt.Errorf("database error: %w", err)
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrInvalidOperation)
		}

		// Fail fast before persisting anything.
		subtotal := 0.0
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, item.ProductID)
				}
				return fmt.Errorf("database error: %w", err)
			}
			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w: insufficient stock for %s", ErrInvalidOperation, product.SKU)
			}
			subtotal += item.Price * float64(item.Quantity)
		}

		shippingFee := s.cfg.Payment.ShippingFee
		taxAmount := 0.0
		discount := 0.0

		order := models.Order{
			OrderNumber:    generateOrderNumber(),
			UserID:         userID,
			OrderDate:      time.Now(),
			Status:         models.OrderStatusPending,
			Subtotal:       subtotal,
			TaxAmount:      taxAmount,
			ShippingFee:    shippingFee,
			DiscountAmount: discount,
			TotalAmount:    subtotal + shippingFee + taxAmount - discount,
			PaymentMethod:  req.PaymentMethod,
			PaymentStatus:  models.PaymentStatusPending,
			CustomerNotes:  req.CustomerNotes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		shipping := buildOrderAddress(order.ID, models.AddressTypeShipping, &req.ShippingAddress)
		if err := tx.Create(&shipping).Error; err != nil {
			return fmt.Errorf("failed to create shipping address: %w", err)
		}
		if req.BillingAddress != nil {
			billing := buildOrderAddress(order.ID, models.AddressTypeBilling, req.BillingAddress)
			if err := tx.Create(&billing).Error; err != nil {
				return fmt.Errorf("failed to create billing address: %w", err)
			}
		}

		for _, item := range cart.Items {
			orderItem := models.OrderItem{
				OrderID:         order.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Guarded decrement: the WHERE clause re-checks stock so a
			// competing checkout that got there first makes this touch
			// zero rows, and the transaction rolls back.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to update stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: insufficient stock for product %d", ErrInvalidOperation, item.ProductID)
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.TotalAmount,
	}).Info("Order created")

	if s.notifier != nil {
		go s.notifier.SendOrderConfirmation(order)
	}

	return order, nil
}

func (s *OrderService) GetMyOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.
		Preload("Items.Product.Model.Brand").
		Preload("Addresses").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns the order only when it belongs to the caller.
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order belongs to another user", ErrUnauthorized)
	}
	return order, nil
}

func (s *OrderService) GetAllOrders(status string, params utils.PaginationParams) (*utils.PagedResult, error) {
	query := s.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	if err := utils.ApplyPagination(query, params).
		Preload("Items").
		Preload("Addresses").
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePagedResult(orders, total, params)
	return &result, nil
}

func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	return s.loadOrder(orderID)
}

// UpdateStatus moves the order through its lifecycle and stamps
// shippedDate / deliveredDate on the matching transitions.
func (s *OrderService) UpdateStatus(orderID uint, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	previous := order.Status
	order.Status = req.Status
	if req.AdminNotes != "" {
		order.AdminNotes = req.AdminNotes
	}
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}

	now := time.Now()
	if req.Status == models.OrderStatusShipped && order.ShippedDate == nil {
		order.ShippedDate = &now
	}
	if req.Status == models.OrderStatusDelivered && order.DeliveredDate == nil {
		order.DeliveredDate = &now
	}

	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"from":         previous,
		"to":           order.Status,
	}).Info("Order status updated")

	return s.loadOrder(orderID)
}

// CancelOrder cancels the caller's order and restores stock. Only pending
// and confirmed orders may be cancelled.
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}
		if order.UserID != userID {
			return fmt.Errorf("%w: order belongs to another user", ErrUnauthorized)
		}
		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return fmt.Errorf("%w: order in status %s cannot be cancelled", ErrInvalidOperation, order.Status)
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		return tx.Model(&order).Update("status", models.OrderStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
	}).Info("Order cancelled")

	return order, nil
}

func (s *OrderService) loadOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.
		Preload("Items.Product.Model.Brand").
		Preload("Addresses").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func buildOrderAddress(orderID uint, addrType models.AddressType, req *OrderAddressRequest) models.OrderAddress {
	return models.OrderAddress{
		OrderID:      orderID,
		AddressType:  addrType,
		FullName:     req.FullName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Phone:        req.Phone,
		Email:        req.Email,
	}
}

// generateOrderNumber builds ORD-{yyyymmdd}-{5 random digits}. A collision
// on the unique index rolls the checkout transaction back; the client
// retries.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), rand.Intn(100000))
}
