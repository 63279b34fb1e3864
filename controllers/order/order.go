package orderControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

// OrderView is one order row joined with its buyer and delivery state for
// the admin listing.
type OrderView struct {
	ID            string  `json:"id"`
	Reference     string  `json:"reference"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	CustomerName  string  `json:"customer_name"`
	Amount        float64 `json:"amount"`
	Quantity      int     `json:"quantity"`
	Status        string  `json:"status"`
	UserID        string  `json:"user_id"`
	UserEmail     string  `json:"user_email"`
	DeliveryCity  string  `json:"delivery_city"`
	DeliveryState string  `json:"delivery_state"`
	DeliveryStage string  `json:"delivery_status"`
}

// GetAllOrders returns the paginated admin view joining orders with users
// and deliveries.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination.Params(c)

		var total int64
		if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var orders []OrderView
		err := db.Table("orders").
			Select(`orders.id, orders.reference, orders.product_id, orders.product_name,
				orders.customer_name, orders.amount, orders.quantity, orders.status,
				orders.user_id, users.email AS user_email,
				deliveries.city AS delivery_city, deliveries.state AS delivery_state,
				deliveries.status AS delivery_stage`).
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Joins("LEFT JOIN deliveries ON deliveries.order_id = orders.reference").
			Order("orders.created_at DESC").
			Limit(limit).Offset(offset).
			Scan(&orders).Error
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"message":    "orders",
			"items":      orders,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// GetMyOrders returns the authenticated user's orders, newest first.
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}
		page, limit, offset := pagination.Params(c)

		var total int64
		if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&orders).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"items":      orders,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// GetByReference returns all order rows plus the delivery produced by one
// settlement. Non-admin callers only see their own references; a reference
// belonging to someone else reads as not found.
func GetByReference(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}
		reference := c.Param("reference")
		if reference == "" {
			apperr.Respond(c, apperr.Validation("reference is required"))
			return
		}

		query := db.Where("reference = ?", reference)
		if role, _ := c.Get("role"); role != "admin" {
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if len(orders) == 0 {
			apperr.Respond(c, apperr.NotFound("no orders for reference"))
			return
		}

		var delivery models.Delivery
		if err := db.Where("order_id = ?", reference).First(&delivery).Error; err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   true,
			"orders":   orders,
			"delivery": delivery,
		})
	}
}

// VerifyAndFinalize is the GET variant of the pull settlement path, hit by
// clients after the gateway redirect.
func VerifyAndFinalize(db *gorm.DB, ps *paystack.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Param("reference")
		if reference == "" {
			apperr.Respond(c, apperr.Validation("reference is required"))
			return
		}

		verified, err := ps.VerifyTransaction(reference)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		result, err := FinalizeReference(db, reference, verified)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Payment verification successful",
			"data":    result,
		})
	}
}

// Webhook handles gateway settlement callbacks. The HMAC-SHA512 signature is
// checked over the raw body before anything is parsed, and the transaction
// status is re-verified by reference — the webhook body alone is never
// trusted. Replays of the same reference settle at most once.
func Webhook(db *gorm.DB, ps *paystack.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			apperr.Respond(c, apperr.Validation("failed to read body"))
			return
		}

		signature := c.GetHeader("x-paystack-signature")
		if !paystack.ValidSignature(body, signature, secret) {
			apperr.Respond(c, apperr.ErrInvalidSignature)
			return
		}

		event, err := paystack.ParseEvent(body)
		if err != nil {
			apperr.Respond(c, apperr.Validation("malformed webhook payload"))
			return
		}
		if event.Data.Reference == "" {
			apperr.Respond(c, apperr.Validation("webhook payload carries no reference"))
			return
		}

		verified, err := ps.VerifyTransaction(event.Data.Reference)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if verified.Status != "success" {
			// Nothing to settle; acknowledge so the gateway stops retrying.
			c.JSON(http.StatusOK, gin.H{"status": true, "message": "Payment not successful"})
			return
		}

		result, err := FinalizeReference(db, event.Data.Reference, verified)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Webhook processed",
			"data":    result,
		})
	}
}

type ExplicitLine struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type InitializeOrdersRequest struct {
	Email     string         `json:"email" binding:"required,email"`
	Lines     []ExplicitLine `json:"lines" binding:"required,min=1,dive"`
	AddressID string         `json:"addressId"`
}

// InitializeExplicit is the secondary input path: an explicit list of
// (product, quantity) pairs instead of the stored cart. Prices still come
// from the products table, never from the client.
func InitializeExplicit(db *gorm.DB, ps *paystack.Client, callbackURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var req InitializeOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var address models.Customer
		addrQuery := db.Where("user_id = ? AND is_default_address = ?", userID, true)
		if req.AddressID != "" {
			addrQuery = db.Where("id = ? AND user_id = ?", req.AddressID, userID)
		}
		if err := addrQuery.First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.Validation("no delivery address found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		var total float64
		items := make([]paystack.LineItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			var product models.Product
			if err := db.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					apperr.Respond(c, apperr.NotFound("product not found"))
					return
				}
				apperr.Respond(c, err)
				return
			}
			if product.TotalStock < line.Quantity {
				apperr.Respond(c, fmt.Errorf("%w for %s", apperr.ErrInsufficientStock, product.Name))
				return
			}
			lineTotal := product.Price * float64(line.Quantity)
			total += lineTotal
			items = append(items, paystack.LineItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     line.Quantity,
				Price:        product.Price,
				ProductTotal: lineTotal,
				CustomerName: user.Name,
			})
		}

		init, err := ps.InitializeTransaction(paystack.InitializeRequest{
			Email:       req.Email,
			Amount:      int64(math.Round(total * 100)),
			CallbackURL: callbackURL,
			Metadata: paystack.Metadata{
				UserID:    userID,
				AddressID: address.ID,
				Products: paystack.MetadataProducts{
					ProductDescriptions: items,
					DeliveryDetails: paystack.DeliveryDetails{
						Address:    address.Address,
						City:       address.City,
						State:      address.State,
						Country:    address.Country,
						PostalCode: address.PostalCode,
					},
				},
			},
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Payment initialized successfully",
			"data":    init,
		})
	}
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateDeliveryStatus moves one delivery through its lifecycle.
func UpdateDeliveryStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		deliveryID := c.Param("id")

		var req UpdateDeliveryStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("status is required"))
			return
		}

		status, err := models.ParseDeliveryStatus(req.Status)
		if err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		result := db.Model(&models.Delivery{}).Where("id = ?", deliveryID).Update("status", status)
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("delivery not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Delivery status updated successfully"})
	}
}
