package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/config"
	orderControllers "github.com/korede-dotcom/beautybytasapi/controllers/order"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

// SetupOrderRoutes registers the "/orders/*" endpoints: the webhook (public,
// signature-checked), the pull verification path, and the read views.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, ps *paystack.Client, cfg config.Config) {
	orders := r.Group("/orders")
	{
		// Gateway callback; authenticated by HMAC signature, not by token.
		orders.POST("/paystack/webhook", orderControllers.Webhook(db, ps, cfg.PaystackSecretKey))

		authed := orders.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.GET("/verify/:reference", orderControllers.VerifyAndFinalize(db, ps))
			authed.GET("/my-orders", orderControllers.GetMyOrders(db))
			authed.POST("/initialize", orderControllers.InitializeExplicit(db, ps, cfg.FrontendRedirectURL))
			authed.GET("/reference/:reference", orderControllers.GetByReference(db))
		}

		adminOnly := orders.Group("")
		adminOnly.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminOnly.GET("/", orderControllers.GetAllOrders(db))
			adminOnly.GET("/ws", orderControllers.OrderWebSocketHandler)
			adminOnly.PUT("/delivery/:id/status", orderControllers.UpdateDeliveryStatus(db))
		}
	}
}
