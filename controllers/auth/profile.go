package authControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/models"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// Me returns the authenticated user's profile together with their address
// book.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("user not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		var addresses []models.Customer
		if err := db.Where("user_id = ?", userID).
			Order("is_default_address DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"data": gin.H{
				"user":      user,
				"addresses": addresses,
			},
		})
	}
}

// UpdateMe applies a partial update to the authenticated user's profile.
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation(err.Error()))
			return
		}

		updates := map[string]interface{}{}
		if req.Name != nil && *req.Name != "" {
			updates["name"] = *req.Name
		}
		if req.Password != nil {
			if len(*req.Password) < 6 {
				apperr.Respond(c, apperr.Validation("password must be at least 6 characters"))
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			updates["password"] = string(hash)
		}
		if len(updates) == 0 {
			apperr.Respond(c, apperr.Validation("no fields to update"))
			return
		}

		result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("user not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Profile updated successfully"})
	}
}
