package customerControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
)

type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phonenumber" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

type AddressRequest struct {
	PhoneNumber      string `json:"phonenumber"`
	Address          string `json:"address" binding:"required"`
	City             string `json:"city"`
	State            string `json:"state"`
	Country          string `json:"country"`
	PostalCode       string `json:"postal_code"`
	IsDefaultAddress bool   `json:"is_default_address"`
}

// CustomerView joins an address entry with its user for the admin listing.
type CustomerView struct {
	CustomerID  string `json:"customerId"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// CreateCustomer registers a user and their first address in a single
// transaction.
func CreateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			apperr.Respond(c, apperr.Validation("email already exists"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hash),
			RoleID:   models.RoleUser,
		}
		var customer models.Customer

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			customer = models.Customer{
				UserID:           user.ID,
				PhoneNumber:      req.PhoneNumber,
				Address:          req.Address,
				IsDefaultAddress: true,
			}
			return tx.Create(&customer).Error
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":   true,
			"message":  "Customer created",
			"customer": customer,
			"user":     user,
		})
	}
}

// GetCustomers is the paginated admin listing of customers joined with
// their users.
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination.Params(c)

		var total int64
		if err := db.Model(&models.Customer{}).Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var customers []CustomerView
		err := db.Table("customers").
			Select(`customers.id AS customer_id, users.name AS user_name,
				users.email AS user_email, customers.phone_number, customers.address,
				customers.city, customers.country`).
			Joins("INNER JOIN users ON users.id = customers.user_id").
			Order("customers.created_at").
			Limit(limit).Offset(offset).
			Scan(&customers).Error
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"message":    "customers",
			"items":      customers,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// ListAddresses returns the authenticated user's address book.
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var addresses []models.Customer
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "data": addresses})
	}
}

// CreateAddress adds an address book entry. Marking it default clears the
// flag on the user's other entries.
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		address := models.Customer{
			UserID:           userID,
			PhoneNumber:      req.PhoneNumber,
			Address:          req.Address,
			City:             req.City,
			State:            req.State,
			Country:          req.Country,
			PostalCode:       req.PostalCode,
			IsDefaultAddress: req.IsDefaultAddress,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefaultAddress {
				if err := tx.Model(&models.Customer{}).
					Where("user_id = ?", userID).
					Update("is_default_address", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "Address created",
			"data":    address,
		})
	}
}

// UpdateAddress edits one of the user's entries.
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}
		addressID := c.Param("id")

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		var address models.Customer
		if err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("address not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		address.PhoneNumber = req.PhoneNumber
		address.Address = req.Address
		address.City = req.City
		address.State = req.State
		address.Country = req.Country
		address.PostalCode = req.PostalCode

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefaultAddress && !address.IsDefaultAddress {
				if err := tx.Model(&models.Customer{}).
					Where("user_id = ?", userID).
					Update("is_default_address", false).Error; err != nil {
					return err
				}
			}
			address.IsDefaultAddress = req.IsDefaultAddress
			return tx.Save(&address).Error
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Address updated", "data": address})
	}
}

// DeleteAddress removes one of the user's entries.
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}
		addressID := c.Param("id")

		result := db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Customer{})
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("address not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Address deleted"})
	}
}
