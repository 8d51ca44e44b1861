// internal/models/transaction.go
package models

import "time"

type Transaction struct {
	BaseModel
	TransactionNumber string            `json:"transactionNumber" gorm:"uniqueIndex;size:30;not null"`
	OrderID           uint              `json:"orderId" gorm:"not null;index"`
	PaymentMethod     PaymentMethod     `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	Status            TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Amount            float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency          string            `json:"currency" gorm:"size:3;not null"`
	PaymentReference  string            `json:"paymentReference" gorm:"size:255"`
	Notes             string            `json:"notes" gorm:"type:text"`

	Order          Order           `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	CashOnDelivery *CashOnDelivery `json:"cashOnDelivery,omitempty" gorm:"foreignKey:TransactionID"`
}

// CashOnDelivery is the optional one-to-one collection detail for COD
// transactions. Bank-transfer and gateway payments carry their detail in
// PaymentReference instead.
type CashOnDelivery struct {
	BaseModel
	TransactionID       uint       `json:"transactionId" gorm:"uniqueIndex;not null"`
	ExpectedAmount      float64    `json:"expectedAmount" gorm:"type:decimal(10,2);not null"`
	CollectedAmount     float64    `json:"collectedAmount" gorm:"type:decimal(10,2)"`
	CollectedDate       *time.Time `json:"collectedDate"`
	CollectedBy         string     `json:"collectedBy" gorm:"size:150"`
	CollectorNotes      string     `json:"collectorNotes" gorm:"type:text"`
	DeliveryPersonName  string     `json:"deliveryPersonName" gorm:"size:150"`
	DeliveryPersonPhone string     `json:"deliveryPersonPhone" gorm:"size:30"`
}
