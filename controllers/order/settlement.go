package orderControllers

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

// SettlementResult is what both settlement paths (webhook and client verify)
// return: the order rows and delivery for one payment reference.
type SettlementResult struct {
	Reference       string          `json:"reference"`
	Orders          []models.Order  `json:"orders"`
	Delivery        models.Delivery `json:"delivery"`
	AlreadySettled  bool            `json:"already_settled"`
	SkippedProducts []string        `json:"skipped_products,omitempty"`
}

// FinalizeReference turns a gateway-confirmed payment into persisted Order
// rows, stock decrements, a Delivery record, and a cleared cart — all inside
// one transaction.
//
// Idempotency: the Delivery insert doubles as the claim on the reference.
// Its order_id column is unique and the insert uses ON CONFLICT DO NOTHING;
// zero rows affected means another delivery of the same reference got there
// first, and the existing rows are returned read-only.
//
// A line whose product no longer has enough stock at settle time (a race
// between initialize and confirmation) is skipped and logged rather than
// aborting the whole settlement.
func FinalizeReference(db *gorm.DB, reference string, verified *paystack.VerifyData) (*SettlementResult, error) {
	if verified.Status != "success" {
		return nil, apperr.ErrPaymentVerificationFailed
	}

	meta := verified.Metadata
	lines := meta.Products.ProductDescriptions
	if len(lines) == 0 {
		return nil, apperr.Validation("transaction metadata carries no line items")
	}

	result := &SettlementResult{Reference: reference}

	err := db.Transaction(func(tx *gorm.DB) error {
		delivery := models.Delivery{
			OrderID:    reference,
			Address:    meta.Products.DeliveryDetails.Address,
			City:       meta.Products.DeliveryDetails.City,
			State:      meta.Products.DeliveryDetails.State,
			Country:    meta.Products.DeliveryDetails.Country,
			PostalCode: meta.Products.DeliveryDetails.PostalCode,
			Status:     models.DeliveryStatusPending,
		}
		claim := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).Create(&delivery)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			result.AlreadySettled = true
			return nil
		}
		result.Delivery = delivery

		productIDs := make([]string, 0, len(lines))
		for _, line := range lines {
			if line.Quantity < 1 {
				continue
			}

			// Conditional decrement, checked by affected-row count, so
			// concurrent settlements can never drive stock negative.
			dec := tx.Model(&models.Product{}).
				Where("id = ? AND total_stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("total_stock", gorm.Expr("total_stock - ?", line.Quantity))
			if dec.Error != nil {
				return dec.Error
			}
			if dec.RowsAffected == 0 {
				log.Printf("⚠️ Skipping line for %s (%s): stock ran out before settlement of %s",
					line.ProductName, line.ProductID, reference)
				result.SkippedProducts = append(result.SkippedProducts, line.ProductID)
				continue
			}

			order := models.Order{
				Reference:    reference,
				ProductID:    line.ProductID,
				ProductName:  line.ProductName,
				CustomerName: line.CustomerName,
				Amount:       line.ProductTotal,
				UserID:       meta.UserID,
				Quantity:     line.Quantity,
				Status:       models.OrderStatusSuccess,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order row: %w", err)
			}
			result.Orders = append(result.Orders, order)
			productIDs = append(productIDs, line.ProductID)
		}

		if meta.UserID != "" && len(productIDs) > 0 {
			if err := tx.Where("user_id = ? AND product_id IN ?", meta.UserID, productIDs).
				Delete(&models.Cart{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadySettled {
		if err := db.Where("reference = ?", reference).Find(&result.Orders).Error; err != nil {
			return nil, err
		}
		if err := db.Where("order_id = ?", reference).First(&result.Delivery).Error; err != nil {
			return nil, err
		}
		return result, nil
	}

	for _, o := range result.Orders {
		broadcastNewOrder(o)
	}
	return result, nil
}
