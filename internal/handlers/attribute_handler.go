// internal/handlers/attribute_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

type AttributeHandler struct {
	attributeService *services.AttributeService
}

type replaceValuesRequest struct {
	Values []string `json:"values"`
}

func NewAttributeHandler(attributeService *services.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

func (h *AttributeHandler) GetTypes(c *gin.Context) {
	types, err := h.attributeService.GetAllTypes()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, types)
}

func (h *AttributeHandler) CreateType(c *gin.Context) {
	var req services.AttributeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	attrType, err := h.attributeService.CreateType(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Attribute type created", attrType)
}

func (h *AttributeHandler) UpdateType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AttributeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	attrType, err := h.attributeService.UpdateType(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Attribute type updated", attrType)
}

func (h *AttributeHandler) DeleteType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attributeService.DeleteType(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Attribute type deleted", nil)
}

// GetValues lists all attribute values grouped under their types.
func (h *AttributeHandler) GetValues(c *gin.Context) {
	grouped, err := h.attributeService.GetGroupedValues()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, grouped)
}

func (h *AttributeHandler) CreateValue(c *gin.Context) {
	var req services.AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	value, err := h.attributeService.CreateValue(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Attribute value created", value)
}

func (h *AttributeHandler) BulkCreateValues(c *gin.Context) {
	var req services.BulkAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	created, err := h.attributeService.BulkCreateValues(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Attribute values created", created)
}

func (h *AttributeHandler) ReplaceValuesForType(c *gin.Context) {
	typeID, ok := parseIDParam(c, "typeId")
	if !ok {
		return
	}

	var req replaceValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	values, err := h.attributeService.ReplaceValuesForType(typeID, req.Values)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageOK(c, "Attribute values replaced", values)
}

func (h *AttributeHandler) CreateTypeWithValues(c *gin.Context) {
	var req services.TypeWithValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	attrType, err := h.attributeService.CreateTypeWithValues(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.MessageCreated(c, "Attribute type created", attrType)
}
