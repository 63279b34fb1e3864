package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/models"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required"`
	CategoryID  string   `json:"categoryId" binding:"required"`
	TotalStock  int      `json:"totalStock" binding:"required,min=0"`
	Benefits    string   `json:"benefits"`
	Ingredients string   `json:"ingredients"`
	HowToUse    string   `json:"howtouse"`
	Images      []string `json:"images" binding:"required,min=1"`
}

// CreateProduct creates a product and its image attachments in one
// transaction.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("category not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		product := models.Product{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			TotalStock:  req.TotalStock,
			Benefits:    req.Benefits,
			Ingredients: req.Ingredients,
			UserID:      userID,
			Status:      true,
		}
		if req.HowToUse != "" {
			product.HowToUse = req.HowToUse
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			for _, url := range req.Images {
				image := models.Image{ProductID: product.ID, ImageURL: url}
				if err := tx.Create(&image).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "Product created successfully",
			"data":    product,
		})
	}
}
