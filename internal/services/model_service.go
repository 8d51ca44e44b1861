// internal/services/model_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type ModelService struct {
	db *gorm.DB
}

type ModelRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=150"`
	BrandID uint   `json:"brandId" validate:"required"`
}

func NewModelService(db *gorm.DB) *ModelService {
	return &ModelService{db: db}
}

func (s *ModelService) GetAll() ([]models.PhoneModel, error) {
	var phoneModels []models.PhoneModel
	if err := s.db.Preload("Brand").Order("name").Find(&phoneModels).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch models: %w", err)
	}
	return phoneModels, nil
}

func (s *ModelService) GetByID(id uint) (*models.PhoneModel, error) {
	var phoneModel models.PhoneModel
	if err := s.db.Preload("Brand").Preload("Products").First(&phoneModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: model", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &phoneModel, nil
}

func (s *ModelService) Create(req *ModelRequest) (*models.PhoneModel, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var brand models.Brand
	if err := s.db.First(&brand, req.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: brand", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	phoneModel := &models.PhoneModel{Name: req.Name, BrandID: req.BrandID}
	if err := s.db.Create(phoneModel).Error; err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	s.db.Preload("Brand").First(phoneModel, phoneModel.ID)
	return phoneModel, nil
}

func (s *ModelService) Update(id uint, req *ModelRequest) (*models.PhoneModel, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var phoneModel models.PhoneModel
	if err := s.db.First(&phoneModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: model", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.BrandID != phoneModel.BrandID {
		var brand models.Brand
		if err := s.db.First(&brand, req.BrandID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: brand", ErrNotFound)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	phoneModel.Name = req.Name
	phoneModel.BrandID = req.BrandID
	if err := s.db.Save(&phoneModel).Error; err != nil {
		return nil, fmt.Errorf("failed to update model: %w", err)
	}

	s.db.Preload("Brand").First(&phoneModel, id)
	return &phoneModel, nil
}

func (s *ModelService) Delete(id uint) error {
	var phoneModel models.PhoneModel
	if err := s.db.First(&phoneModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: model", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("model_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("%w: model has products and cannot be deleted", ErrInvalidOperation)
	}

	if err := s.db.Delete(&phoneModel).Error; err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	return nil
}
