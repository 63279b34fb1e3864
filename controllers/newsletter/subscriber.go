package newsletterControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/apperr"
	"github.com/korede-dotcom/beautybytasapi/models"
	"github.com/korede-dotcom/beautybytasapi/pagination"
)

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// Subscribe adds an email to the list, or re-activates a previously
// unsubscribed one.
func Subscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("a valid email is required"))
			return
		}

		var existing models.Subscriber
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			if existing.Subscribed {
				c.JSON(http.StatusOK, gin.H{"status": true, "message": "Already subscribed"})
				return
			}
			existing.Subscribed = true
			existing.SubscribedAt = time.Now()
			existing.UnsubscribedAt = nil
			if err := db.Save(&existing).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": true, "message": "Subscribed successfully", "data": existing})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, err)
			return
		}

		subscriber := models.Subscriber{
			Email:      req.Email,
			Name:       req.Name,
			Subscribed: true,
			Source:     "signup_form",
		}
		if err := db.Create(&subscriber).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": true, "message": "Subscribed successfully", "data": subscriber})
	}
}

// Unsubscribe flags an email as opted out; the record is kept.
func Unsubscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("a valid email is required"))
			return
		}

		var subscriber models.Subscriber
		if err := db.Where("email = ?", req.Email).First(&subscriber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("subscriber not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		now := time.Now()
		subscriber.Subscribed = false
		subscriber.UnsubscribedAt = &now
		if err := db.Save(&subscriber).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Unsubscribed successfully"})
	}
}

// GetSubscribers lists subscribers for the admin panel, filterable by
// subscription state.
func GetSubscribers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination.Params(c)

		query := db.Model(&models.Subscriber{})
		if sub := c.Query("subscribed"); sub == "true" || sub == "false" {
			query = query.Where("subscribed = ?", sub == "true")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var subscribers []models.Subscriber
		if err := query.Order("subscribed_at DESC").Limit(limit).Offset(offset).Find(&subscribers).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"items":      subscribers,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// DeleteSubscriber hard-deletes a subscriber record.
func DeleteSubscriber(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Subscriber{})
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("subscriber not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Subscriber deleted"})
	}
}
