// internal/services/setup_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mobileshop/backend/internal/config"
	"github.com/mobileshop/backend/internal/models"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own named shared-cache database so suites never leak
// state into each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.PhoneModel{},
		&models.AttributeType{},
		&models.AttributeValue{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductImage{},
		&models.ProductImageAssignment{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderAddress{},
		&models.Transaction{},
		&models.CashOnDelivery{},
	))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Payment: config.PaymentConfig{
			ShippingFee: 750,
			Currency:    "USD",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestCatalog seeds one brand, one model, a Color type with two
// values and a Storage type with two values.
type testCatalog struct {
	Brand   *models.Brand
	Model   *models.PhoneModel
	Black   *models.AttributeValue
	White   *models.AttributeValue
	GB128   *models.AttributeValue
	GB256   *models.AttributeValue
	Color   *models.AttributeType
	Storage *models.AttributeType
}

func createTestCatalog(t *testing.T, db *gorm.DB) *testCatalog {
	t.Helper()

	brand := &models.Brand{Name: "Acme"}
	require.NoError(t, db.Create(brand).Error)

	phoneModel := &models.PhoneModel{Name: "Phone X", BrandID: brand.ID}
	require.NoError(t, db.Create(phoneModel).Error)

	color := &models.AttributeType{Name: "Color"}
	require.NoError(t, db.Create(color).Error)
	storage := &models.AttributeType{Name: "Storage"}
	require.NoError(t, db.Create(storage).Error)

	black := &models.AttributeValue{AttributeTypeID: color.ID, Value: "Black"}
	white := &models.AttributeValue{AttributeTypeID: color.ID, Value: "White"}
	gb128 := &models.AttributeValue{AttributeTypeID: storage.ID, Value: "128GB"}
	gb256 := &models.AttributeValue{AttributeTypeID: storage.ID, Value: "256GB"}
	for _, v := range []*models.AttributeValue{black, white, gb128, gb256} {
		require.NoError(t, db.Create(v).Error)
	}

	return &testCatalog{
		Brand:   brand,
		Model:   phoneModel,
		Black:   black,
		White:   white,
		GB128:   gb128,
		GB256:   gb256,
		Color:   color,
		Storage: storage,
	}
}

func createTestProduct(t *testing.T, db *gorm.DB, modelID uint, price float64, stock int, valueIDs ...uint) *models.Product {
	t.Helper()

	var values []models.AttributeValue
	for _, id := range valueIDs {
		var v models.AttributeValue
		require.NoError(t, db.First(&v, id).Error)
		values = append(values, v)
	}

	product := &models.Product{
		ModelID:       modelID,
		SKU:           generateSKU(modelID, values),
		Price:         price,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(product).Error)
	for _, id := range valueIDs {
		require.NoError(t, db.Create(&models.ProductAttribute{
			ProductID:        product.ID,
			AttributeValueID: id,
		}).Error)
	}
	return product
}

func shippingAddressFixture() OrderAddressRequest {
	return OrderAddressRequest{
		FullName:     "Pat Recipient",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		Country:      "US",
	}
}
