// internal/models/catalog.go
package models

type Brand struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`

	Models []PhoneModel `json:"models,omitempty" gorm:"foreignKey:BrandID"`
}

// PhoneModel is a device model (e.g. "Galaxy S24") under a brand. Each of
// its products is one attribute-value combination of the model.
type PhoneModel struct {
	BaseModel
	Name    string `json:"name" gorm:"size:150;not null;index"`
	BrandID uint   `json:"brandId" gorm:"not null;index"`

	Brand    Brand     `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:ModelID"`
}

func (PhoneModel) TableName() string { return "models" }

type AttributeType struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`

	Values []AttributeValue `json:"values,omitempty" gorm:"foreignKey:AttributeTypeID"`
}

type AttributeValue struct {
	BaseModel
	AttributeTypeID uint   `json:"attributeTypeId" gorm:"not null;index"`
	Value           string `json:"value" gorm:"size:100;not null"`

	AttributeType AttributeType `json:"attributeType,omitempty" gorm:"foreignKey:AttributeTypeID"`
}
