package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	blogControllers "github.com/korede-dotcom/beautybytasapi/controllers/blog"
	"github.com/korede-dotcom/beautybytasapi/middleware"
)

// SetupBlogRoutes registers the storefront blog. Reading requires a token;
// publishing and visibility toggles are admin-only.
func SetupBlogRoutes(r *gin.Engine, db *gorm.DB) {
	blogGroup := r.Group("/blogs")
	blogGroup.Use(middleware.ValidateToken)
	{
		blogGroup.GET("/", blogControllers.GetBlogs(db))

		adminOnly := blogGroup.Group("")
		adminOnly.Use(middleware.RequireAdmin)
		{
			adminOnly.POST("/", blogControllers.CreateBlog(db))
			adminOnly.GET("/toggle/:id", blogControllers.ToggleBlogStatus(db))
		}
	}
}
