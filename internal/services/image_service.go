// internal/services/image_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type ImageService struct {
	db *gorm.DB
}

type ImageRequest struct {
	ImageURL    string `json:"imageUrl" validate:"required,url,max=500"`
	Description string `json:"description" validate:"max=255"`
	ProductIDs  []uint `json:"productIds" validate:"omitempty,dive,required"`
}

type AssignImageRequest struct {
	ProductImageID uint `json:"productImageId" validate:"required"`
	ProductID      uint `json:"productId" validate:"required"`
	IsDefault      bool `json:"isDefault"`
}

func NewImageService(db *gorm.DB) *ImageService {
	return &ImageService{db: db}
}

func (s *ImageService) GetAll() ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := s.db.Preload("Assignments").Order("id").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch images: %w", err)
	}
	return images, nil
}

func (s *ImageService) GetByID(id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := s.db.Preload("Assignments").First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product image", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &image, nil
}

// GetForProduct lists the images assigned to one product, default first.
func (s *ImageService) GetForProduct(productID uint) ([]models.ProductImageAssignment, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var assignments []models.ProductImageAssignment
	if err := s.db.Preload("ProductImage").
		Where("product_id = ?", productID).
		Order("is_default DESC, id").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product images: %w", err)
	}
	return assignments, nil
}

// Create stores the image and assigns it to every product in ProductIDs.
func (s *ImageService) Create(req *ImageRequest) (*models.ProductImage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	if err := s.checkProductsExist(req.ProductIDs); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(image).Error; err != nil {
			return err
		}
		for _, productID := range req.ProductIDs {
			assignment := models.ProductImageAssignment{
				ProductID:      productID,
				ProductImageID: image.ID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	return s.GetByID(image.ID)
}

// Update rewrites the image fields and, when ProductIDs is present,
// replaces the full assignment set.
func (s *ImageService) Update(id uint, req *ImageRequest) (*models.ProductImage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var image models.ProductImage
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product image", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.checkProductsExist(req.ProductIDs); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		image.ImageURL = req.ImageURL
		image.Description = req.Description
		if err := tx.Save(&image).Error; err != nil {
			return err
		}

		if req.ProductIDs != nil {
			if err := tx.Unscoped().
				Where("product_image_id = ?", id).
				Delete(&models.ProductImageAssignment{}).Error; err != nil {
				return err
			}
			for _, productID := range req.ProductIDs {
				assignment := models.ProductImageAssignment{
					ProductID:      productID,
					ProductImageID: id,
				}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}

	return s.GetByID(id)
}

func (s *ImageService) Delete(id uint) error {
	var image models.ProductImage
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product image", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_image_id = ?", id).
			Delete(&models.ProductImageAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&image).Error
	})
}

// Assign links an image to a product. When IsDefault is set the product's
// other assignments lose their default flag.
func (s *ImageService) Assign(req *AssignImageRequest) (*models.ProductImageAssignment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var image models.ProductImage
	if err := s.db.First(&image, req.ProductImageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product image", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.ProductImageAssignment
	if err := s.db.Where("product_id = ? AND product_image_id = ?", req.ProductID, req.ProductImageID).
		First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: image is already assigned to this product", ErrInvalidOperation)
	}

	assignment := &models.ProductImageAssignment{
		ProductID:      req.ProductID,
		ProductImageID: req.ProductImageID,
		IsDefault:      req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.ProductImageAssignment{}).
				Where("product_id = ?", req.ProductID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign image: %w", err)
	}

	s.db.Preload("ProductImage").First(assignment, assignment.ID)
	return assignment, nil
}

func (s *ImageService) Unassign(imageID, productID uint) error {
	result := s.db.Where("product_image_id = ? AND product_id = ?", imageID, productID).
		Delete(&models.ProductImageAssignment{})
	if result.Error != nil {
		return fmt.Errorf("failed to unassign image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: image assignment", ErrNotFound)
	}
	return nil
}

// SetDefault marks the assignment default and clears the flag on the
// product's other assignments.
func (s *ImageService) SetDefault(imageID, productID uint) (*models.ProductImageAssignment, error) {
	var assignment models.ProductImageAssignment
	if err := s.db.Where("product_image_id = ? AND product_id = ?", imageID, productID).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: image assignment", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImageAssignment{}).
			Where("product_id = ? AND id <> ?", productID, assignment.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&assignment).Update("is_default", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set default image: %w", err)
	}

	assignment.IsDefault = true
	s.db.Preload("ProductImage").First(&assignment, assignment.ID)
	return &assignment, nil
}

func (s *ImageService) checkProductsExist(ids []uint) error {
	for _, id := range ids {
		var product models.Product
		if err := s.db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, id)
			}
			return fmt.Errorf("database error: %w", err)
		}
	}
	return nil
}
