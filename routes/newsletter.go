package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	newsletterControllers "github.com/korede-dotcom/beautybytasapi/controllers/newsletter"
	"github.com/korede-dotcom/beautybytasapi/middleware"
)

// SetupNewsletterRoutes registers the subscriber endpoints (public) and the
// campaign admin panel.
func SetupNewsletterRoutes(r *gin.Engine, db *gorm.DB) {
	newsletterGroup := r.Group("/newsletter")
	{
		newsletterGroup.POST("/subscribe", newsletterControllers.Subscribe(db))
		newsletterGroup.POST("/unsubscribe", newsletterControllers.Unsubscribe(db))

		adminOnly := newsletterGroup.Group("")
		adminOnly.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminOnly.GET("/", newsletterControllers.GetNewsletters(db))
			adminOnly.POST("/send", newsletterControllers.SendNewsletter(db))
			adminOnly.POST("/draft", newsletterControllers.SaveDraft(db))
			adminOnly.PUT("/draft/:id", newsletterControllers.UpdateDraft(db))
			adminOnly.DELETE("/campaign/:id", newsletterControllers.DeleteNewsletter(db))
			adminOnly.GET("/subscribers", newsletterControllers.GetSubscribers(db))
			adminOnly.DELETE("/subscribers/:id", newsletterControllers.DeleteSubscriber(db))
		}
	}
}
