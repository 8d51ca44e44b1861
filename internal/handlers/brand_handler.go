// internal/handlers/brand_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type BrandHandler struct {
	brandService *services.BrandService
}

func NewBrandHandler(brandService *services.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

func (h *BrandHandler) GetAll(c *gin.Context) {
	brands, err := h.brandService.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, brands)
}

func (h *BrandHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	brand, err := h.brandService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, brand)
}

func (h *BrandHandler) Create(c *gin.Context) {
	var req services.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	brand, err := h.brandService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Brand created", brand)
}

func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	brand, err := h.brandService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Brand updated", brand)
}

func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.brandService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Brand deleted", nil)
}
