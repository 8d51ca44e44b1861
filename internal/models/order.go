// internal/models/order.go
package models

import "time"

type Order struct {
	BaseModel
	OrderNumber string      `json:"orderNumber" gorm:"uniqueIndex;size:30;not null"`
	UserID      uint        `json:"userId" gorm:"not null;index"`
	OrderDate   time.Time   `json:"orderDate" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	Subtotal       float64 `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TaxAmount      float64 `json:"taxAmount" gorm:"type:decimal(10,2);not null"`
	ShippingFee    float64 `json:"shippingFee" gorm:"type:decimal(10,2);not null"`
	DiscountAmount float64 `json:"discountAmount" gorm:"type:decimal(10,2);not null"`
	TotalAmount    float64 `json:"totalAmount" gorm:"type:decimal(10,2);not null"`

	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'pending'"`

	CustomerNotes  string     `json:"customerNotes" gorm:"type:text"`
	AdminNotes     string     `json:"adminNotes" gorm:"type:text"`
	TrackingNumber string     `json:"trackingNumber" gorm:"size:100"`
	ShippedDate    *time.Time `json:"shippedDate"`
	DeliveredDate  *time.Time `json:"deliveredDate"`

	Items     []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Addresses []OrderAddress `json:"addresses,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is an immutable snapshot of a purchased cart line.
type OrderItem struct {
	BaseModel
	OrderID         uint    `json:"orderId" gorm:"not null;index"`
	ProductID       uint    `json:"productId" gorm:"not null;index"`
	Quantity        int     `json:"quantity" gorm:"not null"`
	PriceAtPurchase float64 `json:"priceAtPurchase" gorm:"type:decimal(10,2);not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// OrderAddress is an immutable snapshot of the recipient address taken at
// checkout.
type OrderAddress struct {
	BaseModel
	OrderID      uint        `json:"orderId" gorm:"not null;index"`
	AddressType  AddressType `json:"addressType" gorm:"type:varchar(10);not null"`
	FullName     string      `json:"fullName" gorm:"size:150;not null"`
	AddressLine1 string      `json:"addressLine1" gorm:"size:255;not null"`
	AddressLine2 string      `json:"addressLine2" gorm:"size:255"`
	City         string      `json:"city" gorm:"size:100;not null"`
	State        string      `json:"state" gorm:"size:100"`
	ZipCode      string      `json:"zipCode" gorm:"size:20"`
	Country      string      `json:"country" gorm:"size:100;not null"`
	Phone        string      `json:"phone" gorm:"size:30"`
	Email        string      `json:"email" gorm:"size:255"`
}
