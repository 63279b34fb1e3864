package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/config"
	productControllers "github.com/korede-dotcom/beautybytasapi/controllers/product"
	"github.com/korede-dotcom/beautybytasapi/middleware"
)

// SetupProductRoutes registers catalog browsing (public) and product/category
// management (admin).
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	productGroup := r.Group("/product")
	{
		productGroup.GET("/", productControllers.GetProducts(db))
		productGroup.GET("/details/:productId", productControllers.GetProductDetails(db))
		productGroup.GET("/almost-sold-out", productControllers.GetAlmostSoldOut(db, cfg.AlmostSoldOutThreshold))
		productGroup.GET("/best-selling", productControllers.GetBestSelling(db))
		productGroup.GET("/new", productControllers.GetNewProducts(db))

		adminOnly := productGroup.Group("")
		adminOnly.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminOnly.POST("/", productControllers.CreateProduct(db))
			adminOnly.PUT("/details/:productId", productControllers.UpdateProduct(db))
			adminOnly.DELETE("/:productId", productControllers.DeleteProduct(db))
		}
	}

	categoryGroup := r.Group("/category")
	{
		categoryGroup.GET("/", productControllers.GetCategories(db))
		categoryGroup.GET("/:categoryId/products", productControllers.GetCategoryProducts(db))

		adminOnly := categoryGroup.Group("")
		adminOnly.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminOnly.POST("/", productControllers.CreateCategory(db))
			adminOnly.PUT("/:categoryId", productControllers.UpdateCategory(db))
			adminOnly.DELETE("/:categoryId", productControllers.DeleteCategory(db))
		}
	}
}
