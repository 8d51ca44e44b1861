// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type ProductRequest struct {
	ModelID           uint    `json:"modelId" validate:"required"`
	Price             float64 `json:"price" validate:"required,gt=0"`
	StockQuantity     int     `json:"stockQuantity" validate:"gte=0"`
	AttributeValueIDs []uint  `json:"attributeValueIds" validate:"required,min=1,dive,required"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// GetPaged returns a page of products. searchTerm matches against SKU,
// model name and brand name.
func (s *ProductService) GetPaged(params utils.PaginationParams) (*utils.PagedResult, error) {
	query := s.db.Model(&models.Product{}).
		Joins("JOIN models ON models.id = products.model_id").
		Joins("JOIN brands ON brands.id = models.brand_id")

	if params.SearchTerm != "" {
		term := "%" + strings.ToLower(params.SearchTerm) + "%"
		query = query.Where(
			"LOWER(products.sku) LIKE ? OR LOWER(models.name) LIKE ? OR LOWER(brands.name) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPagination(query, params).
		Order("products.id").
		Preload("Model.Brand").
		Preload("Attributes.AttributeValue.AttributeType").
		Preload("ImageAssignments.ProductImage").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePagedResult(products, total, params)
	return &result, nil
}

func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.
		Preload("Model.Brand").
		Preload("Attributes.AttributeValue.AttributeType").
		Preload("ImageAssignments.ProductImage").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Create(req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var phoneModel models.PhoneModel
	if err := s.db.First(&phoneModel, req.ModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: model", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	values, err := s.resolveAttributeValues(req.AttributeValueIDs)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicateVariant(req.ModelID, req.AttributeValueIDs, 0); err != nil {
		return nil, err
	}

	product := &models.Product{
		ModelID:       req.ModelID,
		SKU:           generateSKU(req.ModelID, values),
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for _, v := range values {
			attr := models.ProductAttribute{ProductID: product.ID, AttributeValueID: v.ID}
			if err := tx.Create(&attr).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.GetByID(product.ID)
}

func (s *ProductService) Update(id uint, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var phoneModel models.PhoneModel
	if err := s.db.First(&phoneModel, req.ModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: model", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	values, err := s.resolveAttributeValues(req.AttributeValueIDs)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicateVariant(req.ModelID, req.AttributeValueIDs, id); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		product.ModelID = req.ModelID
		product.SKU = generateSKU(req.ModelID, values)
		product.Price = req.Price
		product.StockQuantity = req.StockQuantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("product_id = ?", product.ID).
			Delete(&models.ProductAttribute{}).Error; err != nil {
			return err
		}
		for _, v := range values {
			attr := models.ProductAttribute{ProductID: product.ID, AttributeValueID: v.ID}
			if err := tx.Create(&attr).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetByID(product.ID)
}

func (s *ProductService) Delete(id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductAttribute{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImageAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// Export writes the full catalog to an xlsx workbook.
func (s *ProductService) Export() (*excelize.File, error) {
	var products []models.Product
	if err := s.db.
		Preload("Model.Brand").
		Preload("Attributes.AttributeValue.AttributeType").
		Order("id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "SKU", "Brand", "Model", "Attributes", "Price", "Stock"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range products {
		attrs := make([]string, 0, len(p.Attributes))
		for _, a := range p.Attributes {
			attrs = append(attrs, fmt.Sprintf("%s: %s", a.AttributeValue.AttributeType.Name, a.AttributeValue.Value))
		}
		sort.Strings(attrs)

		cells := []interface{}{
			p.ID,
			p.SKU,
			p.Model.Brand.Name,
			p.Model.Name,
			strings.Join(attrs, "; "),
			p.Price,
			p.StockQuantity,
		}
		for col, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

// resolveAttributeValues loads the referenced values and enforces the
// one-value-per-type rule.
func (s *ProductService) resolveAttributeValues(ids []uint) ([]models.AttributeValue, error) {
	values := make([]models.AttributeValue, 0, len(ids))
	typesSeen := make(map[uint]string, len(ids))
	idsSeen := make(map[uint]bool, len(ids))

	for _, id := range ids {
		if idsSeen[id] {
			return nil, fmt.Errorf("%w: duplicate attribute value id %d", ErrInvalidOperation, id)
		}
		idsSeen[id] = true

		var value models.AttributeValue
		if err := s.db.Preload("AttributeType").First(&value, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: attribute value %d", ErrNotFound, id)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		if prev, ok := typesSeen[value.AttributeTypeID]; ok {
			return nil, fmt.Errorf("%w: attribute type %q appears more than once", ErrInvalidOperation, prev)
		}
		typesSeen[value.AttributeTypeID] = value.AttributeType.Name

		values = append(values, value)
	}
	return values, nil
}

// checkDuplicateVariant rejects the combination when another product of the
// same model already carries the identical value set, regardless of order.
func (s *ProductService) checkDuplicateVariant(modelID uint, valueIDs []uint, excludeProductID uint) error {
	var siblings []models.Product
	query := s.db.Preload("Attributes").Where("model_id = ?", modelID)
	if excludeProductID != 0 {
		query = query.Where("id <> ?", excludeProductID)
	}
	if err := query.Find(&siblings).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	wanted := sortedIDKey(valueIDs)
	for _, sibling := range siblings {
		ids := make([]uint, 0, len(sibling.Attributes))
		for _, a := range sibling.Attributes {
			ids = append(ids, a.AttributeValueID)
		}
		if sortedIDKey(ids) == wanted {
			return fmt.Errorf("%w: a product with this attribute combination already exists for the model", ErrInvalidOperation)
		}
	}
	return nil
}

func sortedIDKey(ids []uint) string {
	sorted := make([]uint, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// generateSKU builds "M{modelId}-" followed by the sorted attribute values.
// Sorting keeps the SKU stable regardless of the order values were sent in.
func generateSKU(modelID uint, values []models.AttributeValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strings.ReplaceAll(v.Value, " ", ""))
	}
	sort.Strings(parts)
	return fmt.Sprintf("M%d-%s", modelID, strings.Join(parts, "-"))
}
