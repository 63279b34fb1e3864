package blogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
)

type CreateBlogRequest struct {
	Title       string `json:"title" binding:"required"`
	CoverImage  string `json:"coverImage"`
	TextContent string `json:"textContent" binding:"required"`
}

// GetBlogs lists posts newest first, paginated. "?type=all" returns the
// whole set without the pagination envelope for dashboard pickers.
func GetBlogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("type") == "all" {
			var blogs []models.Blog
			if err := db.Order("created_at DESC").Find(&blogs).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":  true,
				"message": "blogs",
				"blogs":   blogs,
			})
			return
		}

		page, limit, offset := pagination.Params(c)

		var total int64
		if err := db.Model(&models.Blog{}).Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var blogs []models.Blog
		if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&blogs).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"message":    "blogs",
			"blogs":      blogs,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// CreateBlog publishes a post; new posts start visible.
func CreateBlog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("title and text content are required"))
			return
		}

		blog := models.Blog{
			Title:       req.Title,
			CoverImage:  req.CoverImage,
			TextContent: req.TextContent,
			Status:      true,
		}
		if err := db.Create(&blog).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "Blog created successfully",
			"data":    blog,
		})
	}
}

// ToggleBlogStatus flips a post between visible and hidden.
func ToggleBlogStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID := c.Param("id")

		var blog models.Blog
		if err := db.First(&blog, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("blog not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		blog.Status = !blog.Status
		if err := db.Save(&blog).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Blog status toggled",
			"data":    blog,
		})
	}
}
