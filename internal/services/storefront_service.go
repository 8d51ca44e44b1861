// internal/services/storefront_service.go
package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
)

// StorefrontService serves the customer-facing model listing and the
// attribute-combination-to-product variant resolution.
type StorefrontService struct {
	db *gorm.DB
}

type AttributeOption struct {
	AttributeTypeID   uint                    `json:"attributeTypeId"`
	AttributeTypeName string                  `json:"attributeTypeName"`
	Values            []models.AttributeValue `json:"values"`
}

type VariantSummary struct {
	ProductID         uint    `json:"productId"`
	SKU               string  `json:"sku"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stockQuantity"`
	AttributeValueIDs []uint  `json:"attributeValueIds"`
}

type ModelListing struct {
	ModelID          uint              `json:"modelId"`
	ModelName        string            `json:"modelName"`
	BrandID          uint              `json:"brandId"`
	BrandName        string            `json:"brandName"`
	MinPrice         float64           `json:"minPrice"`
	MaxPrice         float64           `json:"maxPrice"`
	TotalStock       int               `json:"totalStock"`
	AttributeOptions []AttributeOption `json:"attributeOptions"`
	Variants         []VariantSummary  `json:"variants"`
}

type MatchVariantRequest struct {
	AttributeValueIDs []uint `json:"attributeValueIds"`
}

func NewStorefrontService(db *gorm.DB) *StorefrontService {
	return &StorefrontService{db: db}
}

// GetModelListings returns every model that has at least one in-stock
// product, with its price range and selectable attribute options.
func (s *StorefrontService) GetModelListings() ([]ModelListing, error) {
	var phoneModels []models.PhoneModel
	if err := s.db.
		Preload("Brand").
		Preload("Products", "stock_quantity > 0").
		Preload("Products.Attributes.AttributeValue.AttributeType").
		Order("name").
		Find(&phoneModels).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch models: %w", err)
	}

	listings := []ModelListing{}
	for _, m := range phoneModels {
		if len(m.Products) == 0 {
			continue
		}
		listings = append(listings, buildModelListing(m))
	}
	return listings, nil
}

func buildModelListing(m models.PhoneModel) ModelListing {
	listing := ModelListing{
		ModelID:   m.ID,
		ModelName: m.Name,
		BrandID:   m.BrandID,
		BrandName: m.Brand.Name,
		MinPrice:  m.Products[0].Price,
		MaxPrice:  m.Products[0].Price,
	}

	optionsByType := map[uint]*AttributeOption{}
	valueSeen := map[uint]bool{}

	for _, p := range m.Products {
		if p.Price < listing.MinPrice {
			listing.MinPrice = p.Price
		}
		if p.Price > listing.MaxPrice {
			listing.MaxPrice = p.Price
		}
		listing.TotalStock += p.StockQuantity

		variant := VariantSummary{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		}
		for _, a := range p.Attributes {
			variant.AttributeValueIDs = append(variant.AttributeValueIDs, a.AttributeValueID)

			v := a.AttributeValue
			opt, ok := optionsByType[v.AttributeTypeID]
			if !ok {
				opt = &AttributeOption{
					AttributeTypeID:   v.AttributeTypeID,
					AttributeTypeName: v.AttributeType.Name,
				}
				optionsByType[v.AttributeTypeID] = opt
			}
			if !valueSeen[v.ID] {
				valueSeen[v.ID] = true
				opt.Values = append(opt.Values, v)
			}
		}
		sort.Slice(variant.AttributeValueIDs, func(i, j int) bool {
			return variant.AttributeValueIDs[i] < variant.AttributeValueIDs[j]
		})
		listing.Variants = append(listing.Variants, variant)
	}

	for _, opt := range optionsByType {
		sort.Slice(opt.Values, func(i, j int) bool { return opt.Values[i].Value < opt.Values[j].Value })
		listing.AttributeOptions = append(listing.AttributeOptions, *opt)
	}
	sort.Slice(listing.AttributeOptions, func(i, j int) bool {
		return listing.AttributeOptions[i].AttributeTypeName < listing.AttributeOptions[j].AttributeTypeName
	})

	return listing
}

// MatchVariant resolves the product of the model whose attribute value set
// is exactly the given ids.
func (s *StorefrontService) MatchVariant(modelID uint, valueIDs []uint) (*models.Product, error) {
	if len(valueIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one attribute value id is required", ErrInvalidOperation)
	}
	seen := make(map[uint]bool, len(valueIDs))
	for _, id := range valueIDs {
		if id == 0 {
			return nil, fmt.Errorf("%w: attribute value ids must be positive", ErrInvalidOperation)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate attribute value id %d", ErrInvalidOperation, id)
		}
		seen[id] = true
	}

	var candidates []models.Product
	if err := s.db.
		Preload("Attributes").
		Preload("Model.Brand").
		Preload("ImageAssignments.ProductImage").
		Where("model_id = ?", modelID).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	for i := range candidates {
		p := &candidates[i]
		if len(p.Attributes) != len(valueIDs) {
			continue
		}
		match := true
		for _, a := range p.Attributes {
			if !seen[a.AttributeValueID] {
				match = false
				break
			}
		}
		if match {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: no variant matches the given attribute combination", ErrNotFound)
}
