package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
)

type CategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Status *bool  `json:"status"`
}

// CategoryView is a category with its product count for the admin listing.
type CategoryView struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Status       bool   `json:"status"`
	ProductCount int    `json:"productCount"`
}

// GetCategories lists categories with product counts, paginated.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination.Params(c)

		var total int64
		if err := db.Model(&models.Category{}).Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var categories []CategoryView
		err := db.Table("categories").
			Select(`categories.id AS category_id, categories.name AS category_name,
				categories.status, COUNT(products.id) AS product_count`).
			Joins("LEFT JOIN products ON products.category_id = categories.id").
			Group("categories.id, categories.name, categories.status, categories.created_at").
			Order("categories.created_at DESC").
			Limit(limit).Offset(offset).
			Scan(&categories).Error
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"message":    "categories",
			"items":      categories,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// GetCategoryProducts lists every product in one category.
func GetCategoryProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID := c.Param("categoryId")

		var products []models.Product
		if err := db.Preload("Category").Preload("Images").
			Where("category_id = ?", categoryID).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Products retrieved successfully",
			"data":    toViews(products),
		})
	}
}

// CreateCategory adds a category.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("name is required"))
			return
		}

		category := models.Category{Name: req.Name, Status: true}
		if req.Status != nil {
			category.Status = *req.Status
		}
		if err := db.Create(&category).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "Category created successfully",
			"data":    category,
		})
	}
}

// UpdateCategory renames or toggles a category.
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID := c.Param("categoryId")

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("name is required"))
			return
		}

		updates := map[string]interface{}{"name": req.Name}
		if req.Status != nil {
			updates["status"] = *req.Status
		}

		result := db.Model(&models.Category{}).Where("id = ?", categoryID).Updates(updates)
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("category not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Category updated successfully"})
	}
}

// DeleteCategory removes an empty category. Categories still holding
// products are refused.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID := c.Param("categoryId")

		var category models.Category
		if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("category not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		var productCount int64
		if err := db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&productCount).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if productCount > 0 {
			apperr.Respond(c, apperr.Validation("category still has products"))
			return
		}

		if err := db.Delete(&category).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Category deleted successfully"})
	}
}
