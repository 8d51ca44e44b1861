// internal/models/cart.go
package models

type Cart struct {
	BaseModel
	UserID uint `json:"userId" gorm:"uniqueIndex;not null"`

	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

// CartItem snapshots the catalog price at add time. The snapshot is
// deliberate: later catalog price changes do not reprice the line.
type CartItem struct {
	BaseModel
	CartID    uint    `json:"cartId" gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID uint    `json:"productId" gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
