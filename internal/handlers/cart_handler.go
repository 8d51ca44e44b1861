// internal/handlers/cart_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	view, err := h.cartService.GetCart(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	view, err := h.cartService.AddItem(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Item added to cart", view)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	view, err := h.cartService.UpdateItem(userID, productID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Cart updated", view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Item removed from cart", view)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(userID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Cart cleared", nil)
}
