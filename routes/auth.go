package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/korede-dotcom/beautybytasapi/controllers/auth"
	"github.com/korede-dotcom/beautybytasapi/middleware"
)

// SetupAuthRoutes registers the public "/auth/*" endpoints plus the
// token-gated profile pair.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", authControllers.Signup(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.GET("/logout", authControllers.Logout())

		profile := authGroup.Group("")
		profile.Use(middleware.ValidateToken)
		{
			profile.GET("/me", authControllers.Me(db))
			profile.PUT("/me", authControllers.UpdateMe(db))
		}
	}
}
