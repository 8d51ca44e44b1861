// internal/services/attribute_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type AttributeService struct {
	db *gorm.DB
}

type AttributeTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AttributeValueRequest struct {
	AttributeTypeID uint   `json:"attributeTypeId" validate:"required"`
	Value           string `json:"value" validate:"required,min=1,max=100"`
}

type BulkAttributeValueRequest struct {
	AttributeTypeID uint     `json:"attributeTypeId" validate:"required"`
	Values          []string `json:"values" validate:"required,min=1,dive,required,min=1,max=100"`
}

type TypeWithValuesRequest struct {
	Name   string   `json:"name" validate:"required,min=1,max=100"`
	Values []string `json:"values" validate:"required,min=1,dive,required,min=1,max=100"`
}

// GroupedAttributeValues is the storefront-facing grouping of values under
// their type.
type GroupedAttributeValues struct {
	AttributeTypeID   uint                    `json:"attributeTypeId"`
	AttributeTypeName string                  `json:"attributeTypeName"`
	Values            []models.AttributeValue `json:"values"`
}

func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

func (s *AttributeService) GetAllTypes() ([]models.AttributeType, error) {
	var types []models.AttributeType
	if err := s.db.Preload("Values").Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attribute types: %w", err)
	}
	return types, nil
}

func (s *AttributeService) CreateType(req *AttributeTypeRequest) (*models.AttributeType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var count int64
	if err := s.db.Model(&models.AttributeType{}).Where("LOWER(name) = LOWER(?)", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: attribute type %q already exists", ErrInvalidOperation, req.Name)
	}

	attrType := &models.AttributeType{Name: req.Name}
	if err := s.db.Create(attrType).Error; err != nil {
		return nil, fmt.Errorf("failed to create attribute type: %w", err)
	}
	return attrType, nil
}

func (s *AttributeService) UpdateType(id uint, req *AttributeTypeRequest) (*models.AttributeType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var attrType models.AttributeType
	if err := s.db.First(&attrType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attribute type", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.AttributeType{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", req.Name, id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: attribute type %q already exists", ErrInvalidOperation, req.Name)
	}

	attrType.Name = req.Name
	if err := s.db.Save(&attrType).Error; err != nil {
		return nil, fmt.Errorf("failed to update attribute type: %w", err)
	}
	return &attrType, nil
}

func (s *AttributeService) DeleteType(id uint) error {
	var attrType models.AttributeType
	if err := s.db.First(&attrType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: attribute type", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	var valueCount int64
	if err := s.db.Model(&models.AttributeValue{}).Where("attribute_type_id = ?", id).Count(&valueCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if valueCount > 0 {
		return fmt.Errorf("%w: attribute type has values and cannot be deleted", ErrInvalidOperation)
	}

	if err := s.db.Delete(&attrType).Error; err != nil {
		return fmt.Errorf("failed to delete attribute type: %w", err)
	}
	return nil
}

// GetGroupedValues lists every attribute value grouped under its type.
func (s *AttributeService) GetGroupedValues() ([]GroupedAttributeValues, error) {
	var types []models.AttributeType
	if err := s.db.Preload("Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("value")
	}).Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attribute values: %w", err)
	}

	grouped := make([]GroupedAttributeValues, 0, len(types))
	for _, t := range types {
		values := t.Values
		if values == nil {
			values = []models.AttributeValue{}
		}
		grouped = append(grouped, GroupedAttributeValues{
			AttributeTypeID:   t.ID,
			AttributeTypeName: t.Name,
			Values:            values,
		})
	}
	return grouped, nil
}

func (s *AttributeService) CreateValue(req *AttributeValueRequest) (*models.AttributeValue, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var attrType models.AttributeType
	if err := s.db.First(&attrType, req.AttributeTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attribute type", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.AttributeValue{}).
		Where("attribute_type_id = ? AND LOWER(value) = LOWER(?)", req.AttributeTypeID, req.Value).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: value %q already exists for this type", ErrInvalidOperation, req.Value)
	}

	value := &models.AttributeValue{
		AttributeTypeID: req.AttributeTypeID,
		Value:           req.Value,
	}
	if err := s.db.Create(value).Error; err != nil {
		return nil, fmt.Errorf("failed to create attribute value: %w", err)
	}
	return value, nil
}

// BulkCreateValues adds the given values to a type, skipping any that
// already exist for it (case-insensitive). Returns only the newly created
// rows.
func (s *AttributeService) BulkCreateValues(req *BulkAttributeValueRequest) ([]models.AttributeValue, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var attrType models.AttributeType
	if err := s.db.First(&attrType, req.AttributeTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attribute type", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing []models.AttributeValue
	if err := s.db.Where("attribute_type_id = ?", req.AttributeTypeID).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[strings.ToLower(v.Value)] = true
	}

	created := []models.AttributeValue{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, raw := range req.Values {
			v := strings.TrimSpace(raw)
			if v == "" || seen[strings.ToLower(v)] {
				continue
			}
			seen[strings.ToLower(v)] = true

			value := models.AttributeValue{
				AttributeTypeID: req.AttributeTypeID,
				Value:           v,
			}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
			created = append(created, value)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attribute values: %w", err)
	}
	return created, nil
}

// ReplaceValuesForType makes the given list the complete value set of the
// type: values not listed are removed, missing ones are added, existing
// ones are kept with their ids.
func (s *AttributeService) ReplaceValuesForType(typeID uint, values []string) ([]models.AttributeValue, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: at least one value is required", ErrInvalidOperation)
	}

	var attrType models.AttributeType
	if err := s.db.First(&attrType, typeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attribute type", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	wanted := make(map[string]string, len(values))
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v != "" {
			wanted[strings.ToLower(v)] = v
		}
	}
	if len(wanted) == 0 {
		return nil, fmt.Errorf("%w: at least one value is required", ErrInvalidOperation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.AttributeValue
		if err := tx.Where("attribute_type_id = ?", typeID).Find(&existing).Error; err != nil {
			return err
		}

		kept := make(map[string]bool, len(existing))
		for _, v := range existing {
			key := strings.ToLower(v.Value)
			if _, ok := wanted[key]; ok {
				kept[key] = true
				continue
			}
			if err := tx.Delete(&v).Error; err != nil {
				return err
			}
		}

		for key, v := range wanted {
			if kept[key] {
				continue
			}
			value := models.AttributeValue{AttributeTypeID: typeID, Value: v}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace attribute values: %w", err)
	}

	var result []models.AttributeValue
	if err := s.db.Where("attribute_type_id = ?", typeID).Order("value").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return result, nil
}

// CreateTypeWithValues creates a new attribute type together with its
// initial value set in one transaction.
func (s *AttributeService) CreateTypeWithValues(req *TypeWithValuesRequest) (*models.AttributeType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var count int64
	if err := s.db.Model(&models.AttributeType{}).Where("LOWER(name) = LOWER(?)", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: attribute type %q already exists", ErrInvalidOperation, req.Name)
	}

	attrType := &models.AttributeType{Name: req.Name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attrType).Error; err != nil {
			return err
		}

		seen := make(map[string]bool, len(req.Values))
		for _, raw := range req.Values {
			v := strings.TrimSpace(raw)
			if v == "" || seen[strings.ToLower(v)] {
				continue
			}
			seen[strings.ToLower(v)] = true

			value := models.AttributeValue{AttributeTypeID: attrType.ID, Value: v}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attribute type with values: %w", err)
	}

	s.db.Preload("Values").First(attrType, attrType.ID)
	return attrType, nil
}
