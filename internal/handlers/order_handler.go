// internal/handlers/order_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create runs the checkout: cart becomes an order, stock is decremented,
// the cart is cleared.
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Order created", order)
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetMyOrders(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, orders)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(userID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(userID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Order cancelled", order)
}

// GetAllAdmin lists every order, optionally filtered by ?status=.
func (h *OrderHandler) GetAllAdmin(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := c.Query("status")

	result, err := h.orderService.GetAllOrders(status, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

func (h *OrderHandler) GetByIDAdmin(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderForAdmin(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Order status updated", order)
}
