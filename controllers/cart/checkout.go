package cartControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	orderControllers "github.com/korede-dotcom/beautybytasapi/controllers/order"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

type CheckoutRequest struct {
	Email     string `json:"email" binding:"required,email"`
	AddressID string `json:"addressId"`
}

type VerifyPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// Checkout initializes a gateway transaction from the user's cart. Line
// totals are recomputed from current product prices; client-supplied amounts
// are never trusted. No order rows are written here — the line items travel
// in the gateway metadata and come back at settlement.
func Checkout(db *gorm.DB, ps *paystack.Client, callbackURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("email is required"))
			return
		}

		address, err := resolveAddress(db, userID, req.AddressID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		lines, err := loadCartLines(db, userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if len(lines) == 0 {
			apperr.Respond(c, apperr.ErrEmptyCart)
			return
		}

		var total float64
		items := make([]paystack.LineItem, 0, len(lines))
		for _, l := range lines {
			if l.TotalStock < l.Quantity {
				apperr.Respond(c, fmt.Errorf("%w for %s", apperr.ErrInsufficientStock, l.ProductName))
				return
			}
			lineTotal := l.Price * float64(l.Quantity)
			total += lineTotal
			items = append(items, paystack.LineItem{
				ProductID:    l.ProductID,
				ProductName:  l.ProductName,
				Quantity:     l.Quantity,
				Price:        l.Price,
				ProductTotal: lineTotal,
				CustomerName: user.Name,
			})
		}

		init, err := ps.InitializeTransaction(paystack.InitializeRequest{
			Email:       req.Email,
			Amount:      int64(math.Round(total * 100)), // kobo; rounded, never truncated
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

// VerifyPayment is the pull-based settlement path a client calls after the
// gateway redirect. It converges on the same idempotency guard as the
// webhook, so either path may finalize first.
func VerifyPayment(db *gorm.DB, ps *paystack.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.UserID(c); !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("reference is required"))
			return
		}

		verified, err := ps.VerifyTransaction(req.Reference)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		result, err := orderControllers.FinalizeReference(db, req.Reference, verified)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Payment verified and order processed successfully",
			"data":    result,
		})
	}
}

// resolveAddress picks the requested address book entry or the user's
// default one.
func resolveAddress(db *gorm.DB, userID, addressID string) (*models.Customer, error) {
	var address models.Customer
	if addressID != "" {
		err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("address not found")
			}
			return nil, err
		}
		return &address, nil
	}

	err := db.Where("user_id = ? AND is_default_address = ?", userID, true).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("no default address found, please add an address first")
		}
		return nil, err
	}
	return &address, nil
}
