// internal/services/brand_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type BrandService struct {
	db *gorm.DB
}

type BrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func NewBrandService(db *gorm.DB) *BrandService {
	return &BrandService{db: db}
}

func (s *BrandService) GetAll() ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.Order("name").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	return brands, nil
}

func (s *BrandService) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.Preload("Models").First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: brand", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) Create(req *BrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var count int64
	if err := s.db.Model(&models.Brand{}).Where("LOWER(name) = LOWER(?)", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: brand %q already exists", ErrInvalidOperation, req.Name)
	}

	brand := &models.Brand{Name: req.Name}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (s *BrandService) Update(id uint, req *BrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var brand models.Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: brand", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	brand.Name = req.Name
	if err := s.db.Save(&brand).Error; err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) Delete(id uint) error {
	var brand models.Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: brand", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	var modelCount int64
	if err := s.db.Model(&models.PhoneModel{}).Where("brand_id = ?", id).Count(&modelCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if modelCount > 0 {
		return fmt.Errorf("%w: brand has models and cannot be deleted", ErrInvalidOperation)
	}

	if err := s.db.Delete(&brand).Error; err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}
