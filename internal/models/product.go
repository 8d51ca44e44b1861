// internal/models/product.go
package models

// Product is a sellable variant: one attribute-value combination of a model.
type Product struct {
	BaseModel
	ModelID       uint    `json:"modelId" gorm:"not null;index"`
	SKU           string  `json:"sku" gorm:"uniqueIndex;size:150;not null"`
	Price         float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int     `json:"stockQuantity" gorm:"not null;default:0"`

	Model            PhoneModel               `json:"model,omitempty" gorm:"foreignKey:ModelID"`
	Attributes       []ProductAttribute       `json:"attributes,omitempty" gorm:"foreignKey:ProductID"`
	ImageAssignments []ProductImageAssignment `json:"imageAssignments,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductAttribute joins a product to one attribute value. A product holds
// at most one value per attribute type; the duplicate-type rule is enforced
// by the product service.
type ProductAttribute struct {
	BaseModel
	ProductID        uint `json:"productId" gorm:"not null;uniqueIndex:idx_product_attr"`
	AttributeValueID uint `json:"attributeValueId" gorm:"not null;uniqueIndex:idx_product_attr"`

	AttributeValue AttributeValue `json:"attributeValue,omitempty" gorm:"foreignKey:AttributeValueID"`
}

type ProductImage struct {
	BaseModel
	ImageURL    string `json:"imageUrl" gorm:"size:500;not null"`
	Description string `json:"description" gorm:"size:255"`

	Assignments []ProductImageAssignment `json:"assignments,omitempty" gorm:"foreignKey:ProductImageID"`
}

// ProductImageAssignment links an image to a product. At most one
// assignment per product carries IsDefault; the image service clears
// competing defaults when one is set.
type ProductImageAssignment struct {
	BaseModel
	ProductID      uint `json:"productId" gorm:"not null;uniqueIndex:idx_image_assignment"`
	ProductImageID uint `json:"productImageId" gorm:"not null;uniqueIndex:idx_image_assignment"`
	IsDefault      bool `json:"isDefault" gorm:"not null;default:false"`

	ProductImage ProductImage `json:"productImage,omitempty" gorm:"foreignKey:ProductImageID"`
}
