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

type NewsletterRequest struct {
	Subject       string     `json:"subject" binding:"required"`
	Content       string     `json:"content" binding:"required"`
	HTMLContent   string     `json:"htmlContent" binding:"required"`
	Template      string     `json:"template"`
	SendToAll     bool       `json:"sendToAll"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// SendNewsletter creates a campaign and marks it sent, or scheduled when a
// future date was supplied.
func SendNewsletter(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewsletterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("subject, content, and HTML content are required"))
			return
		}

		newsletter := models.Newsletter{
			Subject:       req.Subject,
			Content:       req.Content,
			HTMLContent:   req.HTMLContent,
			Template:      "basic",
			SendToAll:     req.SendToAll,
			ScheduledDate: req.ScheduledDate,
			Status:        models.NewsletterStatusScheduled,
		}
		if req.Template != "" {
			newsletter.Template = req.Template
		}

		// A date that is not in the future has no sender left to pick it
		// up; treat it as an immediate send.
		scheduled := req.ScheduledDate != nil && req.ScheduledDate.After(time.Now())
		if !scheduled {
			var recipients int64
			if err := db.Model(&models.Subscriber{}).Where("subscribed = ?", true).Count(&recipients).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
			now := time.Now()
			newsletter.Status = models.NewsletterStatusSent
			newsletter.SentAt = &now
			newsletter.SentCount = int(recipients)
		}

		if err := db.Create(&newsletter).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		message := "Newsletter sent successfully"
		if scheduled {
			message = "Newsletter scheduled successfully"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": message,
			"data":    newsletter,
		})
	}
}

// SaveDraft stores a campaign without sending it.
func SaveDraft(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewsletterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("subject, content, and HTML content are required"))
			return
		}

		newsletter := models.Newsletter{
			Subject:     req.Subject,
			Content:     req.Content,
			HTMLContent: req.HTMLContent,
			Template:    "basic",
			SendToAll:   req.SendToAll,
			Status:      models.NewsletterStatusDraft,
		}
		if req.Template != "" {
			newsletter.Template = req.Template
		}

		if err := db.Create(&newsletter).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "Draft saved successfully",
			"data":    newsletter,
		})
	}
}

// UpdateDraft edits a draft in place; sent campaigns are immutable.
func UpdateDraft(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		newsletterID := c.Param("id")

		var req NewsletterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("subject, content, and HTML content are required"))
			return
		}

		var newsletter models.Newsletter
		if err := db.First(&newsletter, "id = ?", newsletterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("newsletter not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}
		if newsletter.Status != models.NewsletterStatusDraft {
			apperr.Respond(c, apperr.Validation("only drafts can be edited"))
			return
		}

		newsletter.Subject = req.Subject
		newsletter.Content = req.Content
		newsletter.HTMLContent = req.HTMLContent
		newsletter.SendToAll = req.SendToAll
		if req.Template != "" {
			newsletter.Template = req.Template
		}
		if err := db.Save(&newsletter).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Draft updated", "data": newsletter})
	}
}

// GetNewsletters lists campaigns, optionally filtered by status.
func GetNewsletters(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination.Params(c)

		query := db.Model(&models.Newsletter{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var newsletters []models.Newsletter
		if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&newsletters).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"items":      newsletters,
			"pagination": pagination.Build(total, page, limit),
		})
	}
}

// DeleteNewsletter removes a campaign.
func DeleteNewsletter(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Newsletter{})
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("newsletter not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Newsletter deleted"})
	}
}
