package productcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.Image{},
		&models.Cart{}, &models.Order{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Status: true}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: name + " description",
		Price:       price,
		TotalStock:  stock,
		Status:      true,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.Image{ProductID: product.ID, ImageURL: "https://cdn.example.com/" + name + ".jpg"}).Error)
	return product
}

func productRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:productId", GetProductDetails(db))
	r.POST("/products", CreateProduct(db))
	r.PUT("/products/:productId", UpdateProduct(db))
	r.DELETE("/products/:productId", DeleteProduct(db))
	r.GET("/almost-sold-out", GetAlmostSoldOut(db, 10))
	r.GET("/best-selling", GetBestSelling(db))
	r.GET("/new", GetNewProducts(db))
	r.GET("/category", GetCategories(db))
	r.GET("/category/:categoryId/products", GetCategoryProducts(db))
	r.POST("/category", CreateCategory(db))
	r.DELETE("/category/:categoryId", DeleteCategory(db))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Status     bool                  `json:"status"`
	Items      []ProductView         `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

func TestGetProducts_PaginationAndFilters(t *testing.T) {
	db := setupTestDB(t)
	skincare := seedCategory(t, db, "skincare")
	haircare := seedCategory(t, db, "haircare")
	for i := 0; i < 12; i++ {
		seedProduct(t, db, skincare.ID, fmt.Sprintf("serum-%02d", i), 10, 5)
	}
	seedProduct(t, db, haircare.ID, "Argan Oil", 15, 5)

	r := productRouter(db)

	w := get(r, "/products?page=1&limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 5)
	assert.Equal(t, int64(13), resp.Pagination.TotalItems)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)

	// Category filter.
	w = get(r, "/products?category_id="+haircare.ID)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Argan Oil", resp.Items[0].ProductName)
	assert.Equal(t, "haircare", resp.Items[0].CategoryName)
	require.Len(t, resp.Items[0].Images, 1)

	// Case-insensitive search.
	w = get(r, "/products?search=argan")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Argan Oil", resp.Items[0].ProductName)
}

func TestGetProductDetails(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "skincare")
	product := seedProduct(t, db, category.ID, "toner", 9, 4)

	r := productRouter(db)

	w := get(r, "/products/"+product.ID)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results ProductView `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, product.ID, resp.Results.ProductID)
	assert.Equal(t, "skincare", resp.Results.CategoryName)

	assert.Equal(t, http.StatusNotFound, get(r, "/products/no-such-id").Code)
}

func TestCreateUpdateDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "bodycare")
	r := productRouter(db)

	w := doJSON(r, http.MethodPost, "/products", gin.H{
		"name":        "Shea Body Butter",
		"price":       25.5,
		"description": "Rich moisturizer",
		"categoryId":  category.ID,
		"totalStock":  30,
		"images":      []string{"https://cdn.example.com/shea.jpg", "https://cdn.example.com/shea-2.jpg"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Shea Body Butter").First(&product).Error)

	var imageCount int64
	db.Model(&models.Image{}).Where("product_id = ?", product.ID).Count(&imageCount)
	assert.Equal(t, int64(2), imageCount)

	// Unknown category is refused.
	w = doJSON(r, http.MethodPost, "/products", gin.H{
		"name": "Orphan", "price": 1.0, "description": "x",
		"categoryId": "no-such-category", "totalStock": 1,
		"images": []string{"https://cdn.example.com/x.jpg"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Partial update touches only the sent fields.
	w = doJSON(r, http.MethodPut, "/products/"+product.ID, gin.H{"price": 27.0})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&product, "id = ?", product.ID).Error)
	assert.Equal(t, 27.0, product.Price)
	assert.Equal(t, 30, product.TotalStock)

	// Delete takes the images and cart lines with it.
	require.NoError(t, db.Create(&models.Cart{UserID: "u-1", ProductID: product.ID, Quantity: 1}).Error)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/products/"+product.ID, nil).Code)

	var productCount, cartCount int64
	db.Model(&models.Product{}).Count(&productCount)
	db.Model(&models.Image{}).Where("product_id = ?", product.ID).Count(&imageCount)
	db.Model(&models.Cart{}).Count(&cartCount)
	assert.Zero(t, productCount)
	assert.Zero(t, imageCount)
	assert.Zero(t, cartCount)
}

func TestGetAlmostSoldOut(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "skincare")
	seedProduct(t, db, category.ID, "low", 5, 3)
	seedProduct(t, db, category.ID, "edge", 5, 10)
	seedProduct(t, db, category.ID, "plenty", 5, 50)

	r := productRouter(db)

	w := get(r, "/almost-sold-out")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Threshold int           `json:"threshold"`
		Items     []ProductView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Threshold)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "low", resp.Items[0].ProductName)

	w = get(r, "/almost-sold-out?threshold=5")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
}

func TestGetBestSelling_RanksBySoldQuantity(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "skincare")
	runner := seedProduct(t, db, category.ID, "runner-up", 5, 50)
	top := seedProduct(t, db, category.ID, "top-seller", 5, 50)
	seedProduct(t, db, category.ID, "unsold", 5, 50)

	orders := []models.Order{
		{Reference: "r1", ProductID: top.ID, ProductName: top.Name, CustomerName: "a", Amount: 10, UserID: "u-1", Quantity: 6, Status: models.OrderStatusSuccess},
		{Reference: "r2", ProductID: top.ID, ProductName: top.Name, CustomerName: "b", Amount: 10, UserID: "u-2", Quantity: 4, Status: models.OrderStatusSuccess},
		{Reference: "r3", ProductID: runner.ID, ProductName: runner.Name, CustomerName: "c", Amount: 10, UserID: "u-3", Quantity: 5, Status: models.OrderStatusSuccess},
		// Declined orders never count.
		{Reference: "r4", ProductID: runner.ID, ProductName: runner.Name, CustomerName: "d", Amount: 10, UserID: "u-4", Quantity: 50, Status: models.OrderStatusDeclined},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	r := productRouter(db)
	w := get(r, "/best-selling")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []struct {
			ProductView
			Sold int `json:"sold"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "top-seller", resp.Items[0].ProductName)
	assert.Equal(t, 10, resp.Items[0].Sold)
	assert.Equal(t, "runner-up", resp.Items[1].ProductName)
	assert.Equal(t, 5, resp.Items[1].Sold)
}

func TestCategories(t *testing.T) {
	db := setupTestDB(t)
	r := productRouter(db)

	w := doJSON(r, http.MethodPost, "/category", gin.H{"name": "fragrance"})
	require.Equal(t, http.StatusCreated, w.Code)

	var category models.Category
	require.NoError(t, db.Where("name = ?", "fragrance").First(&category).Error)
	seedProduct(t, db, category.ID, "mist", 12, 8)

	w = get(r, "/category")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items []CategoryView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].ProductCount)

	// A category with products cannot be deleted.
	w = doJSON(r, http.MethodDelete, "/category/"+category.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/category/"+category.ID+"/products")
	require.Equal(t, http.StatusOK, w.Code)
	var productsResp struct {
		Data []ProductView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &productsResp))
	require.Len(t, productsResp.Data, 1)

	require.NoError(t, db.Exec("DELETE FROM images").Error)
	require.NoError(t, db.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/category/"+category.ID, nil).Code)
}
