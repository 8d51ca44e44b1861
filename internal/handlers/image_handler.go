// internal/handlers/image_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) GetAll(c *gin.Context) {
	images, err := h.imageService.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, images)
}

func (h *ImageHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := h.imageService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, image)
}

func (h *ImageHandler) GetForProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	assignments, err := h.imageService.GetForProduct(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, assignments)
}

func (h *ImageHandler) Create(c *gin.Context) {
	var req services.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	image, err := h.imageService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Image created", image)
}

func (h *ImageHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	image, err := h.imageService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Image updated", image)
}

func (h *ImageHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Image deleted", nil)
}

func (h *ImageHandler) Assign(c *gin.Context) {
	var req services.AssignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	assignment, err := h.imageService.Assign(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Image assigned", assignment)
}

func (h *ImageHandler) Unassign(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.imageService.Unassign(imageID, productID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Image unassigned", nil)
}

func (h *ImageHandler) SetDefault(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	assignment, err := h.imageService.SetDefault(imageID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Default image set", assignment)
}
