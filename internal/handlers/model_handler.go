// internal/handlers/model_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type ModelHandler struct {
	modelService *services.ModelService
}

func NewModelHandler(modelService *services.ModelService) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

func (h *ModelHandler) GetAll(c *gin.Context) {
	phoneModels, err := h.modelService.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, phoneModels)
}

func (h *ModelHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	phoneModel, err := h.modelService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, phoneModel)
}

func (h *ModelHandler) Create(c *gin.Context) {
	var req services.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	phoneModel, err := h.modelService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Model created", phoneModel)
}

func (h *ModelHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	phoneModel, err := h.modelService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Model updated", phoneModel)
}

func (h *ModelHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.modelService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Model deleted", nil)
}
