package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/config"
	"github.com/korede-dotcom/beautybytasapi/paystack"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	ps := paystack.NewClient(cfg.PaystackURL, cfg.PaystackSecretKey)

	SetupAuthRoutes(r, db)
	SetupCartRoutes(r, db, ps, cfg)
	SetupProductRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, ps, cfg)
	SetupCustomerRoutes(r, db)
	SetupNewsletterRoutes(r, db)
	SetupBlogRoutes(r, db)
	SetupAdminRoutes(r, db, cfg)
}
