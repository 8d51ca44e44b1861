// internal/services/image_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/models"
)

type ImageServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	svc      *ImageService
	catalog  *testCatalog
	product  *models.Product
	product2 *models.Product
}

func (s *ImageServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewImageService(s.db)
	s.catalog = createTestCatalog(s.T(), s.db)
	s.product = createTestProduct(s.T(), s.db, s.catalog.Model.ID, 900, 3, s.catalog.Black.ID, s.catalog.GB128.ID)
	s.product2 = createTestProduct(s.T(), s.db, s.catalog.Model.ID, 1100, 2, s.catalog.White.ID, s.catalog.GB256.ID)
}

func (s *ImageServiceTestSuite) TestCreateWithAssignments() {
	image, err := s.svc.Create(&ImageRequest{
		ImageURL:   "https://cdn.example.com/black-front.jpg",
		ProductIDs: []uint{s.product.ID, s.product2.ID},
	})
	s.Require().NoError(err)
	s.Len(image.Assignments, 2)
}

func (s *ImageServiceTestSuite) TestCreateRejectsUnknownProduct() {
	_, err := s.svc.Create(&ImageRequest{
		ImageURL:   "https://cdn.example.com/black-front.jpg",
		ProductIDs: []uint{9999},
	})
	s.ErrorIs(err, ErrNotFound)
}

func (s *ImageServiceTestSuite) TestUpdateRewritesAssignments() {
	image, err := s.svc.Create(&ImageRequest{
		ImageURL:   "https://cdn.example.com/black-front.jpg",
		ProductIDs: []uint{s.product.ID},
	})
	s.Require().NoError(err)

	updated, err := s.svc.Update(image.ID, &ImageRequest{
		ImageURL:    "https://cdn.example.com/black-front-v2.jpg",
		Description: "Front view",
		ProductIDs:  []uint{s.product2.ID},
	})
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/black-front-v2.jpg", updated.ImageURL)
	s.Require().Len(updated.Assignments, 1)
	s.Equal(s.product2.ID, updated.Assignments[0].ProductID)
}

func (s *ImageServiceTestSuite) TestAssignAndUnassign() {
	image, err := s.svc.Create(&ImageRequest{ImageURL: "https://cdn.example.com/a.jpg"})
	s.Require().NoError(err)

	_, err = s.svc.Assign(&AssignImageRequest{ProductImageID: image.ID, ProductID: s.product.ID})
	s.Require().NoError(err)

	// Double assignment rejected.
	_, err = s.svc.Assign(&AssignImageRequest{ProductImageID: image.ID, ProductID: s.product.ID})
	s.ErrorIs(err, ErrInvalidOperation)

	s.Require().NoError(s.svc.Unassign(image.ID, s.product.ID))
	s.ErrorIs(s.svc.Unassign(image.ID, s.product.ID), ErrNotFound)
}

func (s *ImageServiceTestSuite) TestSetDefaultClearsOthers() {
	first, err := s.svc.Create(&ImageRequest{ImageURL: "https://cdn.example.com/a.jpg"})
	s.Require().NoError(err)
	second, err := s.svc.Create(&ImageRequest{ImageURL: "https://cdn.example.com/b.jpg"})
	s.Require().NoError(err)

	_, err = s.svc.Assign(&AssignImageRequest{ProductImageID: first.ID, ProductID: s.product.ID, IsDefault: true})
	s.Require().NoError(err)
	_, err = s.svc.Assign(&AssignImageRequest{ProductImageID: second.ID, ProductID: s.product.ID})
	s.Require().NoError(err)

	_, err = s.svc.SetDefault(second.ID, s.product.ID)
	s.Require().NoError(err)

	assignments, err := s.svc.GetForProduct(s.product.ID)
	s.Require().NoError(err)
	s.Require().Len(assignments, 2)

	// Default-first ordering; exactly one default.
	s.True(assignments[0].IsDefault)
	s.Equal(second.ID, assignments[0].ProductImageID)
	s.False(assignments[1].IsDefault)
}

func (s *ImageServiceTestSuite) TestDeleteRemovesAssignments() {
	image, err := s.svc.Create(&ImageRequest{
		ImageURL:   "https://cdn.example.com/a.jpg",
		ProductIDs: []uint{s.product.ID},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(image.ID))

	var count int64
	s.db.Model(&models.ProductImageAssignment{}).Where("product_image_id = ?", image.ID).Count(&count)
	s.EqualValues(0, count)
}

func TestImageServiceSuite(t *testing.T) {
	suite.Run(t, new(ImageServiceTestSuite))
}
