package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/config"
	adminControllers "github.com/korede-dotcom/beautybytasapi/controllers/admin"
	uploadControllers "github.com/korede-dotcom/beautybytasapi/controllers/upload"
	"github.com/korede-dotcom/beautybytasapi/middleware"
)

// SetupAdminRoutes registers report exports and image uploads for the admin
// dashboard.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		adminGroup.GET("/export/orders.xlsx", adminControllers.ExportOrdersToExcel(db))
		adminGroup.GET("/export/subscribers.xlsx", adminControllers.ExportSubscribersToExcel(db))
		adminGroup.POST("/upload", uploadControllers.UploadProductImage(cfg.UploadDir, cfg.PublicBaseURL))
		adminGroup.DELETE("/upload/:filename", uploadControllers.DeleteProductImage(cfg.UploadDir))
	}

	r.Static("/uploads", cfg.UploadDir)
}
