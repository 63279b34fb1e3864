package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/config"
	cartControllers "github.com/korede-dotcom/beautybytasapi/controllers/cart"
	"github.com/korede-dotcom/beautybytasapi/middleware"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

// SetupCartRoutes registers the "/cart/*" endpoints. All require a token.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB, ps *paystack.Client, cfg config.Config) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("/", cartControllers.GetCart(db))
		cartGroup.POST("/", cartControllers.AddItem(db))
		cartGroup.PUT("/:cartId", cartControllers.UpdateQuantity(db))
		cartGroup.DELETE("/:cartId", cartControllers.RemoveItem(db))

		cartGroup.POST("/checkout", cartControllers.Checkout(db, ps, cfg.FrontendRedirectURL))
		cartGroup.POST("/verify-payment", cartControllers.VerifyPayment(db, ps))
	}
}
