// internal/services/attribute_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
)

type AttributeServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AttributeService
}

func (s *AttributeServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewAttributeService(s.db)
}

func (s *AttributeServiceTestSuite) TestCreateTypeRejectsDuplicateName() {
	_, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Color"})
	s.Require().NoError(err)

	_, err = s.svc.CreateType(&AttributeTypeRequest{Name: "color"})
	s.ErrorIs(err, ErrInvalidOperation)
}

func (s *AttributeServiceTestSuite) TestDeleteTypeWithValuesRejected() {
	attrType, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Color"})
	s.Require().NoError(err)

	_, err = s.svc.CreateValue(&AttributeValueRequest{AttributeTypeID: attrType.ID, Value: "Black"})
	s.Require().NoError(err)

	s.ErrorIs(s.svc.DeleteType(attrType.ID), ErrInvalidOperation)
}

func (s *AttributeServiceTestSuite) TestDeleteTypeSurfacesValueLookupFailure() {
	attrType, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Color"})
	s.Require().NoError(err)

	// When the value count cannot be read the delete must fail instead of
	// treating the type as empty.
	s.Require().NoError(s.db.Migrator().DropTable(&models.AttributeValue{}))

	err = s.svc.DeleteType(attrType.ID)
	s.Require().Error(err)
	s.NotErrorIs(err, ErrInvalidOperation)

	var kept models.AttributeType
	s.NoError(s.db.First(&kept, attrType.ID).Error)
}

func (s *AttributeServiceTestSuite) TestCreateValueRejectsDuplicatePerType() {
	attrType, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Color"})
	s.Require().NoError(err)

	_, err = s.svc.CreateValue(&AttributeValueRequest{AttributeTypeID: attrType.ID, Value: "Black"})
	s.Require().NoError(err)

	_, err = s.svc.CreateValue(&AttributeValueRequest{AttributeTypeID: attrType.ID, Value: "black"})
	s.ErrorIs(err, ErrInvalidOperation)

	// Same value under another type is allowed.
	other, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Finish"})
	s.Require().NoError(err)
	_, err = s.svc.CreateValue(&AttributeValueRequest{AttributeTypeID: other.ID, Value: "Black"})
	s.NoError(err)
}

func (s *AttributeServiceTestSuite) TestBulkCreateDeduplicates() {
	attrType, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Storage"})
	s.Require().NoError(err)

	_, err = s.svc.CreateValue(&AttributeValueRequest{AttributeTypeID: attrType.ID, Value: "128GB"})
	s.Require().NoError(err)

	created, err := s.svc.BulkCreateValues(&BulkAttributeValueRequest{
		AttributeTypeID: attrType.ID,
		Values:          []string{"128gb", "256GB", "256GB", "512GB"},
	})
	s.Require().NoError(err)

	// 128gb already exists, 256GB listed twice: two new rows.
	s.Len(created, 2)

	var total int64
	s.db.Model(&models.AttributeValue{}).Where("attribute_type_id = ?", attrType.ID).Count(&total)
	s.EqualValues(3, total)
}

func (s *AttributeServiceTestSuite) TestReplaceValuesForType() {
	attrType, err := s.svc.CreateType(&AttributeTypeRequest{Name: "Color"})
	s.Require().NoError(err)

	_, err = s.svc.BulkCreateValues(&BulkAttributeValueRequest{
		AttributeTypeID: attrType.ID,
		Values:          []string{"Black", "White", "Red"},
	})
	s.Require().NoError(err)

	result, err := s.svc.ReplaceValuesForType(attrType.ID, []string{"Black", "Blue"})
	s.Require().NoError(err)
	s.Len(result, 2)

	values := map[string]bool{}
	for _, v := range result {
		values[v.Value] = true
	}
	s.True(values["Black"])
	s.True(values["Blue"])
	s.False(values["White"])
	s.False(values["Red"])
}

func (s *AttributeServiceTestSuite) TestCreateTypeWithValues() {
	attrType, err := s.svc.CreateTypeWithValues(&TypeWithValuesRequest{
		Name:   "RAM",
		Values: []string{"8GB", "12GB", "8gb"},
	})
	s.Require().NoError(err)
	s.Len(attrType.Values, 2)
}

func (s *AttributeServiceTestSuite) TestGroupedValues() {
	color, err := s.svc.CreateTypeWithValues(&TypeWithValuesRequest{
		Name:   "Color",
		Values: []string{"Black", "White"},
	})
	s.Require().NoError(err)

	_, err = s.svc.CreateType(&AttributeTypeRequest{Name: "Storage"})
	s.Require().NoError(err)

	grouped, err := s.svc.GetGroupedValues()
	s.Require().NoError(err)
	s.Require().Len(grouped, 2)

	s.Equal(color.ID, grouped[0].AttributeTypeID)
	s.Equal("Color", grouped[0].AttributeTypeName)
	s.Len(grouped[0].Values, 2)

	// Empty types appear with an empty (non-nil) value list.
	s.Equal("Storage", grouped[1].AttributeTypeName)
	s.NotNil(grouped[1].Values)
	s.Empty(grouped[1].Values)
}

func TestAttributeServiceSuite(t *testing.T) {
	suite.Run(t, new(AttributeServiceTestSuite))
}
