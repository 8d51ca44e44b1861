// internal/handlers/transaction_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	txn, err := h.transactionService.CreateTransaction(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Transaction created", txn)
}

func (h *TransactionHandler) GetMyTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	transactions, err := h.transactionService.GetMyTransactions(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, transactions)
}

func (h *TransactionHandler) GetByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, txn)
}

// GetAllAdmin lists every transaction, optionally filtered by ?status=.
func (h *TransactionHandler) GetAllAdmin(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := c.Query("status")

	result, err := h.transactionService.GetAllTransactions(status, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

// CollectCash records a courier cash hand-off for a COD transaction.
func (h *TransactionHandler) CollectCash(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CashCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	txn, err := h.transactionService.UpdateCashCollection(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Cash collection recorded", txn)
}
