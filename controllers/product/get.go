package productcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
)

// ProductView flattens a product with its category name and image URL set
// for listing responses. Image order is not significant.
type ProductView struct {
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	Benefits     string    `json:"benefits"`
	HowToUse     string    `json:"howtouse"`
	Ingredients  string    `json:"ingredients"`
	TotalStock   int       `json:"totalStock"`
	Status       bool      `json:"status"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toView(p models.Product) ProductView {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.ImageURL)
	}
	return ProductView{
		ProductID:    p.ID,
		ProductName:  p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.Category.Name,
		Price:        p.Price,
		Description:  p.Description,
		Benefits:     p.Benefits,
		HowToUse:     p.HowToUse,
		Ingredients:  p.Ingredients,
		TotalStock:   p.TotalStock,
		Status:       p.Status,
		Images:       images,
		CreatedAt:    p.CreatedAt,
	}
}

func toViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return views
}

// GetProducts lists products with category and images, filterable by
// category_id and a case-insensitive name/description search.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination.Params(c)

		query := db.Model(&models.Product{})
		if categoryID := c.Query("category_id"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var products []models.Product
		if err := query.Preload("Category").Preload("Images").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"message":    "products",
			"items":      toViews(products),
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// GetProductDetails returns one product with category and images.
func GetProductDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")

		var product models.Product
		err := db.Preload("Category").Preload("Images").First(&product, "id = ?", productID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("product not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "success",
			"results": toView(product),
		})
	}
}
