package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
)

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId"`
	TotalStock  *int     `json:"totalStock"`
	Status      *bool    `json:"status"`
}

// UpdateProduct applies a partial update; only fields present in the body
// change.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.TotalStock != nil {
			if *req.TotalStock < 0 {
				apperr.Respond(c, apperr.Validation("totalStock must not be negative"))
				return
			}
			updates["total_stock"] = *req.TotalStock
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if len(updates) == 0 {
			apperr.Respond(c, apperr.Validation("no fields to update"))
			return
		}

		result := db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates)
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("product not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Product updated successfully"})
	}
}
