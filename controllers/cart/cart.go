package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/models"
)

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartLine is one cart row joined with its product's live price and stock.
type CartLine struct {
	CartID      string    `json:"cartId"`
	Quantity    int       `json:"quantity"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	TotalStock  int       `json:"totalStock"`
	Status      bool      `json:"status"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AddItem puts a product in the user's cart. A second add of the same
// product replaces the stored quantity, it does not sum.
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("product ID and quantity are required"))
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("product not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		if product.TotalStock < input.Quantity {
			apperr.Respond(c, apperr.ErrInsufficientStock)
			return
		}

		// Single upsert on the (user, product) unique index so concurrent
		// adds of the same product both land on replace semantics instead
		// of one of them tripping the constraint.
		item := models.Cart{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   input.Quantity,
				"updated_at": time.Now(),
			}),
		}).Create(&item).Error
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		// On conflict the existing row keeps its id; re-read the canonical
		// line before returning it.
		if err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&item).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Item added to cart successfully",
			"data":    item,
		})
	}
}

// GetCart lists the user's cart joined with current product data; the total
// is recomputed from live prices on every read.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		lines, err := loadCartLines(db, userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var total float64
		for _, l := range lines {
			total += l.Price * float64(l.Quantity)
		}

		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"data": gin.H{
				"items": lines,
				"total": total,
			},
		})
	}
}

// UpdateQuantity changes one cart line, re-validated against current stock.
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}
		cartID := c.Param("cartId")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("valid quantity is required"))
			return
		}

		var item models.Cart
		if err := db.Where("id = ? AND user_id = ?", cartID, userID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("cart item not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if product.TotalStock < input.Quantity {
			apperr.Respond(c, apperr.ErrInsufficientStock)
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Cart updated successfully",
			"data":    item,
		})
	}
}

// RemoveItem hard-deletes one cart line owned by the user.
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}
		cartID := c.Param("cartId")

		result := db.Where("id = ? AND user_id = ?", cartID, userID).Delete(&models.Cart{})
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("cart item not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Item removed from cart successfully",
		})
	}
}

// loadCartLines joins cart rows with products and attaches image URLs.
func loadCartLines(db *gorm.DB, userID string) ([]CartLine, error) {
	var lines []CartLine
	err := db.Table("carts").
		Select(`carts.id AS cart_id, carts.quantity, carts.created_at, carts.updated_at,
			products.id AS product_id, products.name AS product_name, products.price,
			products.description, products.total_stock, products.status`).
		Joins("JOIN products ON products.id = carts.product_id").
		Where("carts.user_id = ?", userID).
		Order("carts.created_at DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return lines, nil
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	var images []models.Image
	if err := db.Where("product_id IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	byProduct := make(map[string][]string)
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img.ImageURL)
	}
	for i := range lines {
		lines[i].Images = byProduct[lines[i].ProductID]
	}
	return lines, nil
}
