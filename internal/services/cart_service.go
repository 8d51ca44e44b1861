// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart plus derived totals from snapshot prices.
type CartView struct {
	Cart       *models.Cart `json:"cart"`
	TotalItems int          `json:"totalItems"`
	Subtotal   float64      `json:"subtotal"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart, creating the singleton row on first use.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.getOrCreateCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(cart.ID)
}

// AddItem puts a product in the cart, merging quantity when the product is
// already there. Stock is checked against the combined quantity; the line
// price is snapshotted from the catalog at add time.
func (s *CartService) AddItem(userID uint, req *AddCartItemRequest) (*CartView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart, err := s.getOrCreateCart(s.db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.db.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&item).Error
	switch {
	case err == nil:
		newQty := item.Quantity + req.Quantity
		if newQty > product.StockQuantity {
			return nil, fmt.Errorf("%w: requested quantity %d exceeds available stock %d",
				ErrInvalidOperation, newQty, product.StockQuantity)
		}
		item.Quantity = newQty
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.Quantity > product.StockQuantity {
			return nil, fmt.Errorf("%w: requested quantity %d exceeds available stock %d",
				ErrInvalidOperation, req.Quantity, product.StockQuantity)
		}
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Price:     product.Price,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.buildView(cart.ID)
}

// UpdateItem sets the line quantity. Zero or negative removes the line.
func (s *CartService) UpdateItem(userID, productID uint, req *UpdateCartItemRequest) (*CartView, error) {
	cart, err := s.getCartForUser(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Quantity <= 0 {
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return s.buildView(cart.ID)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if req.Quantity > product.StockQuantity {
		return nil, fmt.Errorf("%w: requested quantity %d exceeds available stock %d",
			ErrInvalidOperation, req.Quantity, product.StockQuantity)
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.buildView(cart.ID)
}

func (s *CartService) RemoveItem(userID, productID uint) (*CartView, error) {
	cart, err := s.getCartForUser(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: cart item", ErrNotFound)
	}

	return s.buildView(cart.ID)
}

func (s *CartService) Clear(userID uint) error {
	cart, err := s.getCartForUser(userID)
	if err != nil {
		return err
	}
	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}

func (s *CartService) getCartForUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}

func (s *CartService) buildView(cartID uint) (*CartView, error) {
	var cart models.Cart
	if err := s.db.
		Preload("Items.Product.Model.Brand").
		Preload("Items.Product.Attributes.AttributeValue.AttributeType").
		First(&cart, cartID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := &CartView{Cart: &cart}
	for _, item := range cart.Items {
		view.TotalItems += item.Quantity
		view.Subtotal += item.Price * float64(item.Quantity)
	}
	return view, nil
}
