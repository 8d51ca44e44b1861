// internal/services/transaction_service.go
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/config"
	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type TransactionService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CodDetailsRequest struct {
	DeliveryPersonName  string `json:"deliveryPersonName" validate:"max=150"`
	DeliveryPersonPhone string `json:"deliveryPersonPhone" validate:"max=30"`
}

type CreateTransactionRequest struct {
	OrderID       uint                 `json:"orderId" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash_on_delivery credit_card bank_transfer mobile_wallet"`
	Currency      string               `json:"currency" validate:"omitempty,len=3"`
	Notes         string               `json:"notes" validate:"max=1000"`
	CodDetails    *CodDetailsRequest   `json:"codDetails" validate:"omitempty"`
}

type CashCollectionRequest struct {
	CollectedAmount float64 `json:"collectedAmount" validate:"required,gt=0"`
	CollectedBy     string  `json:"collectedBy" validate:"required,min=1,max=150"`
	CollectorNotes  string  `json:"collectorNotes" validate:"max=1000"`
}

func NewTransactionService(db *gorm.DB, cfg *config.Config) *TransactionService {
	return &TransactionService{db: db, cfg: cfg}
}

// CreateTransaction records the payment attempt for an order. An order
// carries at most one transaction; the amount always comes from the order
// total, never from the request.
func (s *TransactionService) CreateTransaction(userID uint, req *CreateTransactionRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order belongs to another user", ErrUnauthorized)
	}

	var existing int64
	if err := s.db.Model(&models.Transaction{}).Where("order_id = ?", req.OrderID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: order already has a transaction", ErrInvalidOperation)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.Payment.Currency
	}

	txn := &models.Transaction{
		TransactionNumber: generateTransactionNumber(),
		OrderID:           order.ID,
		PaymentMethod:     req.PaymentMethod,
		Status:            models.TransactionStatusPending,
		Amount:            order.TotalAmount,
		Currency:          currency,
		Notes:             req.Notes,
	}

	reference, err := s.createPaymentReference(txn)
	if err != nil {
		return nil, err
	}
	txn.PaymentReference = reference

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if req.PaymentMethod == models.PaymentMethodCashOnDelivery {
			cod := models.CashOnDelivery{
				TransactionID:  txn.ID,
				ExpectedAmount: order.TotalAmount,
			}
			if req.CodDetails != nil {
				cod.DeliveryPersonName = req.CodDetails.DeliveryPersonName
				cod.DeliveryPersonPhone = req.CodDetails.DeliveryPersonPhone
			}
			if err := tx.Create(&cod).Error; err != nil {
				return fmt.Errorf("failed to create cash-on-delivery record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_number": txn.TransactionNumber,
		"order_id":           order.ID,
		"method":             txn.PaymentMethod,
		"amount":             txn.Amount,
	}).Info("Transaction created")

	return s.loadTransaction(txn.ID)
}

func (s *TransactionService) GetMyTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.
		Joins("JOIN orders ON orders.id = transactions.order_id").
		Where("orders.user_id = ?", userID).
		Preload("Order").
		Preload("CashOnDelivery").
		Order("transactions.created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) GetTransaction(userID, id uint) (*models.Transaction, error) {
	txn, err := s.loadTransaction(id)
	if err != nil {
		return nil, err
	}
	if txn.Order.UserID != userID {
		return nil, fmt.Errorf("%w: transaction belongs to another user", ErrUnauthorized)
	}
	return txn, nil
}

func (s *TransactionService) GetAllTransactions(status string, params utils.PaginationParams) (*utils.PagedResult, error) {
	query := s.db.Model(&models.Transaction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := utils.ApplyPagination(query, params).
		Preload("Order").
		Preload("CashOnDelivery").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	result := utils.CreatePagedResult(transactions, total, params)
	return &result, nil
}

// UpdateCashCollection records the courier hand-off for a COD transaction,
// completing it and marking the order paid.
func (s *TransactionService) UpdateCashCollection(id uint, req *CashCollectionRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	txn, err := s.loadTransaction(id)
	if err != nil {
		return nil, err
	}
	if txn.PaymentMethod != models.PaymentMethodCashOnDelivery {
		return nil, fmt.Errorf("%w: transaction is not cash on delivery", ErrInvalidOperation)
	}
	if txn.CashOnDelivery == nil {
		return nil, fmt.Errorf("%w: transaction has no cash-on-delivery record", ErrInvalidOperation)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		cod := txn.CashOnDelivery
		cod.CollectedAmount = req.CollectedAmount
		cod.CollectedDate = &now
		cod.CollectedBy = req.CollectedBy
		cod.CollectorNotes = req.CollectorNotes
		if err := tx.Save(cod).Error; err != nil {
			return fmt.Errorf("failed to update cash collection: %w", err)
		}

		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("status", models.TransactionStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete transaction: %w", err)
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", txn.OrderID).
			Update("payment_status", models.PaymentStatusPaid).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_number": txn.TransactionNumber,
		"collected_amount":   req.CollectedAmount,
		"collected_by":       req.CollectedBy,
	}).Info("Cash collection recorded")

	return s.loadTransaction(id)
}

func (s *TransactionService) loadTransaction(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.
		Preload("Order").
		Preload("CashOnDelivery").
		First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &txn, nil
}

// createPaymentReference obtains the gateway reference: a stripe
// PaymentIntent id for card payments, a generated reference otherwise.
func (s *TransactionService) createPaymentReference(txn *models.Transaction) (string, error) {
	if txn.PaymentMethod == models.PaymentMethodCreditCard && s.cfg.Payment.StripeSecretKey != "" {
		stripe.Key = s.cfg.Payment.StripeSecretKey

		intent, err := paymentintent.New(&stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(txn.Amount * 100)), // stripe wants cents
			Currency: stripe.String(txn.Currency),
			Params: stripe.Params{
				Metadata: map[string]string{
					"transaction_number": txn.TransactionNumber,
				},
			},
		})
		if err != nil {
			return "", fmt.Errorf("failed to create payment intent: %w", err)
		}
		return intent.ID, nil
	}

	return uuid.New().String(), nil
}

// generateTransactionNumber builds TRX-{yyyymmdd}-{5 random digits}.
func generateTransactionNumber() string {
	return fmt.Sprintf("TRX-%s-%05d", time.Now().Format("20060102"), rand.Intn(100000))
}
