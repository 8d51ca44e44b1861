// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/config"
	"github.com/mobileshop/backend/internal/handlers"
	"github.com/mobileshop/backend/internal/middleware"
	"github.com/mobileshop/backend/internal/models"
	"github.com/mobileshop/backend/internal/services"
)

// Setup wires services, handlers and middleware into the gin engine.
func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	notificationService := services.NewNotificationService(db, cfg)

	authService := services.NewAuthService(db, cfg)
	brandService := services.NewBrandService(db)
	modelService := services.NewModelService(db)
	attributeService := services.NewAttributeService(db)
	productService := services.NewProductService(db)
	imageService := services.NewImageService(db)
	storefrontService := services.NewStorefrontService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cfg, notificationService)
	transactionService := services.NewTransactionService(db, cfg)

	authHandler := handlers.NewAuthHandler(authService)
	brandHandler := handlers.NewBrandHandler(brandService)
	modelHandler := handlers.NewModelHandler(modelService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)
	productHandler := handlers.NewProductHandler(productService)
	imageHandler := handlers.NewImageHandler(imageService)
	storefrontHandler := handlers.NewStorefrontHandler(storefrontService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	staffOnly := []gin.HandlerFunc{middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin, models.RoleStaff)}

	brands := api.Group("/brands")
	{
		brands.GET("", brandHandler.GetAll)
		brands.GET("/:id", brandHandler.GetByID)
		brands.POST("", append(staffOnly, brandHandler.Create)...)
		brands.PUT("/:id", append(staffOnly, brandHandler.Update)...)
		brands.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), brandHandler.Delete)
	}

	phoneModels := api.Group("/models")
	{
		phoneModels.GET("", modelHandler.GetAll)
		phoneModels.GET("/:id", modelHandler.GetByID)
		phoneModels.POST("", append(staffOnly, modelHandler.Create)...)
		phoneModels.PUT("/:id", append(staffOnly, modelHandler.Update)...)
		phoneModels.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), modelHandler.Delete)
	}

	attributeTypes := api.Group("/attributetypes")
	{
		attributeTypes.GET("", attributeHandler.GetTypes)
		attributeTypes.POST("", append(staffOnly, attributeHandler.CreateType)...)
		attributeTypes.PUT("/:id", append(staffOnly, attributeHandler.UpdateType)...)
		attributeTypes.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), attributeHandler.DeleteType)
	}

	attributeValues := api.Group("/attributevalues")
	{
		attributeValues.GET("", attributeHandler.GetValues)
		attributeValues.POST("", append(staffOnly, attributeHandler.CreateValue)...)
		attributeValues.POST("/bulk", append(staffOnly, attributeHandler.BulkCreateValues)...)
		attributeValues.POST("/type-with-values", append(staffOnly, attributeHandler.CreateTypeWithValues)...)
		attributeValues.PUT("/type/:typeId", append(staffOnly, attributeHandler.ReplaceValuesForType)...)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.GetAll)
		products.GET("/:id", productHandler.GetByID)
		products.GET("/export", middleware.AuthRequired(), middleware.AdminRequired(), productHandler.Export)
		products.POST("", append(staffOnly, productHandler.Create)...)
		products.PUT("/:id", append(staffOnly, productHandler.Update)...)
		products.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), productHandler.Delete)
	}

	storefront := api.Group("/storefront")
	{
		storefront.GET("/models", storefrontHandler.GetModels)
		storefront.GET("/models/:id/variant", storefrontHandler.MatchVariant)
	}

	images := api.Group("/productimage")
	{
		images.GET("", imageHandler.GetAll)
		images.GET("/:id", imageHandler.GetByID)
		images.GET("/product/:productId", imageHandler.GetForProduct)
		images.POST("", append(staffOnly, imageHandler.Create)...)
		images.PUT("/:id", append(staffOnly, imageHandler.Update)...)
		images.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), imageHandler.Delete)
		images.POST("/assign", append(staffOnly, imageHandler.Assign)...)
		images.DELETE("/:id/products/:productId", append(staffOnly, imageHandler.Unassign)...)
		images.PUT("/:id/products/:productId/default", append(staffOnly, imageHandler.SetDefault)...)
	}

	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired())
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:productId", cartHandler.UpdateItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.Clear)
	}

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.GetMyOrders)
		orders.GET("/admin/all", middleware.RoleRequired(models.RoleAdmin, models.RoleStaff), orderHandler.GetAllAdmin)
		orders.GET("/admin/:id", middleware.RoleRequired(models.RoleAdmin, models.RoleStaff), orderHandler.GetByIDAdmin)
		orders.PUT("/admin/:id/status", middleware.RoleRequired(models.RoleAdmin, models.RoleStaff), orderHandler.UpdateStatus)
		orders.GET("/:id", orderHandler.GetByID)
		orders.DELETE("/:id/cancel", orderHandler.Cancel)
	}

	transactions := api.Group("/transactions")
	transactions.Use(middleware.AuthRequired())
	{
		transactions.POST("", transactionHandler.Create)
		transactions.GET("", transactionHandler.GetMyTransactions)
		transactions.GET("/admin/all", middleware.RoleRequired(models.RoleAdmin, models.RoleStaff), transactionHandler.GetAllAdmin)
		transactions.PUT("/admin/:id/collect-cash", middleware.RoleRequired(models.RoleAdmin, models.RoleStaff), transactionHandler.CollectCash)
		transactions.GET("/:id", transactionHandler.GetByID)
	}

	return r
}
