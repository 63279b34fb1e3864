package orderControllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Category{}, &models.Product{},
		&models.Image{}, &models.Cart{}, &models.Order{}, &models.Delivery{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	category := models.Category{Name: "haircare-" + name}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Description: "test product",
		Price:       price,
		TotalStock:  stock,
		Status:      true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		RoleID:   models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func verifiedPayment(reference, userID string, lines ...paystack.LineItem) *paystack.VerifyData {
	return &paystack.VerifyData{
		Status:    "success",
		Reference: reference,
		Metadata: paystack.Metadata{
			UserID: userID,
			Products: paystack.MetadataProducts{
				ProductDescriptions: lines,
				DeliveryDetails: paystack.DeliveryDetails{
					Address: "1 Marina Road",
					City:    "Lagos",
					State:   "Lagos",
					Country: "Nigeria",
				},
			},
		},
	}
}

func TestFinalizeReference_Success(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "ada")
	product := seedProduct(t, db, "shea butter", 10, 7)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, ProductID: product.ID, Quantity: 2}).Error)

	verified := verifiedPayment("ref-success-1", user.ID, paystack.LineItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     2,
		Price:        10,
		ProductTotal: 20,
		CustomerName: user.Name,
	})

	result, err := FinalizeReference(db, "ref-success-1", verified)
	require.NoError(t, err)
	require.False(t, result.AlreadySettled)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, models.OrderStatusSuccess, result.Orders[0].Status)
	assert.Equal(t, 20.0, result.Orders[0].Amount)
	assert.Equal(t, models.DeliveryStatusPending, result.Delivery.Status)
	assert.Equal(t, "ref-success-1", result.Delivery.OrderID)
	assert.Equal(t, "Lagos", result.Delivery.City)

	var stocked models.Product
	require.NoError(t, db.First(&stocked, "id = ?", product.ID).Error)
	assert.Equal(t, 5, stocked.TotalStock)

	// The paid-for lines are gone from the cart.
	var cartCount int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Zero(t, cartCount)
}

func TestFinalizeReference_ReplayIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "bea")
	product := seedProduct(t, db, "clay mask", 15, 10)

	verified := verifiedPayment("ref-replay", user.ID, paystack.LineItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     3,
		Price:        15,
		ProductTotal: 45,
		CustomerName: user.Name,
	})

	first, err := FinalizeReference(db, "ref-replay", verified)
	require.NoError(t, err)
	require.False(t, first.AlreadySettled)

	// Webhook retry with the same reference: nothing new is written.
	second, err := FinalizeReference(db, "ref-replay", verified)
	require.NoError(t, err)
	assert.True(t, second.AlreadySettled)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, first.Orders[0].ID, second.Orders[0].ID)

	var orderCount, deliveryCount int64
	db.Model(&models.Order{}).Where("reference = ?", "ref-replay").Count(&orderCount)
	db.Model(&models.Delivery{}).Where("order_id = ?", "ref-replay").Count(&deliveryCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(1), deliveryCount)

	var stocked models.Product
	require.NoError(t, db.First(&stocked, "id = ?", product.ID).Error)
	assert.Equal(t, 7, stocked.TotalStock, "replay must not decrement stock twice")
}

func TestFinalizeReference_StockNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "cai")
	product := seedProduct(t, db, "lip balm", 5, 5)

	line := paystack.LineItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     3,
		Price:        5,
		ProductTotal: 15,
		CustomerName: user.Name,
	}

	first, err := FinalizeReference(db, "ref-a", verifiedPayment("ref-a", user.ID, line))
	require.NoError(t, err)
	assert.Empty(t, first.SkippedProducts)

	// Second payment wants another 3 of the remaining 2. The line is
	// skipped instead of driving stock below zero.
	second, err := FinalizeReference(db, "ref-b", verifiedPayment("ref-b", user.ID, line))
	require.NoError(t, err)
	assert.Equal(t, []string{product.ID}, second.SkippedProducts)
	assert.Empty(t, second.Orders)

	var stocked models.Product
	require.NoError(t, db.First(&stocked, "id = ?", product.ID).Error)
	assert.Equal(t, 2, stocked.TotalStock)
}

func TestFinalizeReference_RejectsFailedPayment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dee")
	product := seedProduct(t, db, "toner", 9, 4)

	verified := verifiedPayment("ref-failed", user.ID, paystack.LineItem{
		ProductID: product.ID, ProductName: product.Name, Quantity: 1, Price: 9, ProductTotal: 9,
	})
	verified.Status = "failed"

	_, err := FinalizeReference(db, "ref-failed", verified)
	require.ErrorIs(t, err, apperr.ErrPaymentVerificationFailed)

	var orderCount, deliveryCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.Delivery{}).Count(&deliveryCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, deliveryCount)

	var stocked models.Product
	require.NoError(t, db.First(&stocked, "id = ?", product.ID).Error)
	assert.Equal(t, 4, stocked.TotalStock)
}

func TestFinalizeReference_RejectsEmptyMetadata(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "eve")

	verified := verifiedPayment("ref-empty", user.ID)
	_, err := FinalizeReference(db, "ref-empty", verified)
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestFinalizeReference_MultipleLines(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "fay")
	p1 := seedProduct(t, db, "cleanser", 12, 6)
	p2 := seedProduct(t, db, "sunscreen", 18, 2)

	verified := verifiedPayment("ref-multi", user.ID,
		paystack.LineItem{ProductID: p1.ID, ProductName: p1.Name, Quantity: 2, Price: 12, ProductTotal: 24, CustomerName: user.Name},
		paystack.LineItem{ProductID: p2.ID, ProductName: p2.Name, Quantity: 2, Price: 18, ProductTotal: 36, CustomerName: user.Name},
	)

	result, err := FinalizeReference(db, "ref-multi", verified)
	require.NoError(t, err)
	require.Len(t, result.Orders, 2)
	assert.Empty(t, result.SkippedProducts)

	for _, o := range result.Orders {
		assert.Equal(t, "ref-multi", o.Reference)
		assert.Equal(t, user.ID, o.UserID)
	}
}
