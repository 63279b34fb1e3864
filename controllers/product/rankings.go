package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
)

// Derived catalog views. All three are computed on read, nothing is
// materialized.

// GetAlmostSoldOut lists products whose stock has fallen to or below the
// configured threshold.
func GetAlmostSoldOut(db *gorm.DB, defaultThreshold int) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := defaultThreshold
		if raw := c.Query("threshold"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				threshold = n
			}
		}

		var products []models.Product
		if err := db.Preload("Category").Preload("Images").
			Where("total_stock <= ?", threshold).
			Order("total_stock ASC").
			Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    true,
			"message":   "almost sold out products",
			"threshold": threshold,
			"items":     toViews(products),
		})
	}
}

// GetBestSelling ranks products by the summed quantity of their successful
// orders.
func GetBestSelling(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		type ranked struct {
			ProductID string
			Sold      int
		}
		var rankings []ranked
		err := db.Table("orders").
			Select("product_id, SUM(quantity) AS sold").
			Where("status = ?", models.OrderStatusSuccess).
			Group("product_id").
			Order("sold DESC").
			Limit(limit).
			Scan(&rankings).Error
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		ids := make([]string, 0, len(rankings))
		soldByID := make(map[string]int, len(rankings))
		for _, r := range rankings {
			ids = append(ids, r.ProductID)
			soldByID[r.ProductID] = r.Sold
		}

		var products []models.Product
		if len(ids) > 0 {
			if err := db.Preload("Category").Preload("Images").
				Where("id IN ?", ids).Find(&products).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
		}

		// Keep ranking order; Find returns rows in arbitrary order.
		byID := make(map[string]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		type bestSeller struct {
			ProductView
			Sold int `json:"sold"`
		}
		items := make([]bestSeller, 0, len(rankings))
		for _, r := range rankings {
			p, ok := byID[r.ProductID]
			if !ok {
				continue
			}
			items = append(items, bestSeller{ProductView: toView(p), Sold: r.Sold})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "best selling products",
			"items":   items,
		})
	}
}

// GetNewProducts lists the most recently created products.
func GetNewProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		var products []models.Product
		if err := db.Preload("Category").Preload("Images").
			Order("created_at DESC").
			Limit(limit).
			Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "new products",
			"items":   toViews(products),
		})
	}
}
