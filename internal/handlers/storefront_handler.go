// internal/handlers/storefront_handler.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type StorefrontHandler struct {
	storefrontService *services.StorefrontService
}

func NewStorefrontHandler(storefrontService *services.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// GetModels lists buyable models with their attribute options.
func (h *StorefrontHandler) GetModels(c *gin.Context) {
	listings, err := h.storefrontService.GetModelListings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, listings)
}

// MatchVariant resolves ?attributeValueIds=1,2,3 to the matching product
// of the model.
func (h *StorefrontHandler) MatchVariant(c *gin.Context) {
	modelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	raw := c.Query("attributeValueIds")
	if raw == "" {
		utils.BadRequestResponse(c, "attributeValueIds query parameter is required")
		return
	}

	var valueIDs []uint
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			utils.BadRequestResponse(c, "attributeValueIds must be a comma-separated list of ids")
			return
		}
		valueIDs = append(valueIDs, uint(id))
	}

	product, err := h.storefrontService.MatchVariant(modelID, valueIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}
