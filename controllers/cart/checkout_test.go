package cartControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

func seedAddress(t *testing.T, db *gorm.DB, userID string, isDefault bool) models.Customer {
	t.Helper()
	address := models.Customer{
		UserID:           userID,
		PhoneNumber:      "+2348000000000",
		Address:          "1 Marina Road",
		City:             "Lagos",
		State:            "Lagos",
		Country:          "Nigeria",
		IsDefaultAddress: isDefault,
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func checkoutRouter(db *gorm.DB, ps *paystack.Client, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/cart/checkout", Checkout(db, ps, "https://shop.example.com/verify"))
	r.POST("/cart/verify-payment", VerifyPayment(db, ps))
	return r
}

func TestCheckout_InitializesFromCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "ada")
	seedAddress(t, db, user.ID, true)
	p1 := seedProduct(t, db, "cream", 10, 10)
	p2 := seedProduct(t, db, "soap", 19.99, 10)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, ProductID: p1.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, ProductID: p2.ID, Quantity: 1}).Error)

	var got paystack.InitializeRequest
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]string{
				"authorization_url": "https://checkout.paystack.com/xyz",
				"access_code":       "xyz",
				"reference":         "ref-ck-1",
			},
		})
	}))
	defer gw.Close()

	r := checkoutRouter(db, paystack.NewClient(gw.URL, "sk_test"), user.ID)
	w := doJSON(r, http.MethodPost, "/cart/checkout", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "authorization_url")

	// 2x10 + 1x19.99 = 39.99, sent in kobo. Rounding matters: the float
	// product 39.99*100 sits just below 3999 and truncation would undercharge
	// by one minor unit.
	assert.Equal(t, int64(3999), got.Amount)
	assert.Equal(t, user.ID, got.Metadata.UserID)
	assert.Equal(t, "Lagos", got.Metadata.Products.DeliveryDetails.City)
	require.Len(t, got.Metadata.Products.ProductDescriptions, 2)

	// No order rows exist until the gateway confirms payment.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckout_RejectsEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "bea")
	seedAddress(t, db, user.ID, true)

	r := checkoutRouter(db, paystack.NewClient("http://127.0.0.1:1", "sk_test"), user.ID)
	w := doJSON(r, http.MethodPost, "/cart/checkout", gin.H{"email": "bea@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestCheckout_RequiresAddress(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "cai")
	product := seedProduct(t, db, "gel", 5, 10)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)

	r := checkoutRouter(db, paystack.NewClient("http://127.0.0.1:1", "sk_test"), user.ID)

	w := doJSON(r, http.MethodPost, "/cart/checkout", gin.H{"email": "cai@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "address")

	w = doJSON(r, http.MethodPost, "/cart/checkout", gin.H{"email": "cai@example.com", "addressId": "no-such-address"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckout_RejectsStaleStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dee")
	seedAddress(t, db, user.ID, true)
	product := seedProduct(t, db, "wash", 6, 5)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, ProductID: product.ID, Quantity: 3}).Error)

	// Stock dropped below the carted quantity since the item was added.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("total_stock", 2).Error)

	r := checkoutRouter(db, paystack.NewClient("http://127.0.0.1:1", "sk_test"), user.ID)
	w := doJSON(r, http.MethodPost, "/cart/checkout", gin.H{"email": "dee@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "stock")
}

func TestVerifyPayment_SettlesAndClearsCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "eve")
	seedAddress(t, db, user.ID, true)
	product := seedProduct(t, db, "polish", 10, 7)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, ProductID: product.ID, Quantity: 2}).Error)

	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/transaction/verify/"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": paystack.VerifyData{
				Status:    "success",
				Reference: "ref-vp-1",
				Amount:    2000,
				Metadata: paystack.Metadata{
					UserID: user.ID,
					Products: paystack.MetadataProducts{
						ProductDescriptions: []paystack.LineItem{{
							ProductID:    product.ID,
							ProductName:  product.Name,
							Quantity:     2,
							Price:        10,
							ProductTotal: 20,
							CustomerName: user.Name,
						}},
						DeliveryDetails: paystack.DeliveryDetails{
							Address: "1 Marina Road", City: "Lagos", State: "Lagos", Country: "Nigeria",
						},
					},
				},
			},
		})
	}))
	defer gw.Close()

	r := checkoutRouter(db, paystack.NewClient(gw.URL, "sk_test"), user.ID)
	w := doJSON(r, http.MethodPost, "/cart/verify-payment", gin.H{"reference": "ref-vp-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var orderCount, cartCount int64
	db.Model(&models.Order{}).Where("reference = ?", "ref-vp-1").Count(&orderCount)
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Zero(t, cartCount)

	var stocked models.Product
	require.NoError(t, db.First(&stocked, "id = ?", product.ID).Error)
	assert.Equal(t, 5, stocked.TotalStock)
}

func TestVerifyPayment_FailedTransaction(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "fay")

	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   paystack.VerifyData{Status: "failed", Reference: "ref-vp-2"},
		})
	}))
	defer gw.Close()

	r := checkoutRouter(db, paystack.NewClient(gw.URL, "sk_test"), user.ID)
	w := doJSON(r, http.MethodPost, "/cart/verify-payment", gin.H{"reference": "ref-vp-2"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "verification failed")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}
