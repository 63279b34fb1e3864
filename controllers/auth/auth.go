package authControllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a regular user (roleId 2) and, when an address was sent,
// a default address book entry in the same transaction.
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
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

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if req.Address != "" {
				customer := models.Customer{
					UserID:           user.ID,
					PhoneNumber:      req.Phone,
					Address:          req.Address,
					IsDefaultAddress: true,
				}
				if err := tx.Create(&customer).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "User created successfully",
			"data":    user,
		})
	}
}

// Login checks credentials and issues a signed bearer token.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.Validation("invalid credentials"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			apperr.Respond(c, apperr.Validation("invalid credentials"))
			return
		}

		token, err := IssueToken(&user)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"token":  token,
			"user":   user,
		})
	}
}

// Logout exists for API compatibility; bearer tokens are stateless so there
// is nothing to revoke server-side.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out"})
	}
}

// IssueToken signs a 24h HS256 token carrying the user id and role.
func IssueToken(user *models.User) (string, error) {
	role := "user"
	if user.IsAdmin() {
		role = "admin"
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
