package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	customerControllers "github.com/korede-dotcom/beautybytasapi/controllers/customer"
	"github.com/korede-dotcom/beautybytasapi/middleware"
)

// SetupCustomerRoutes registers customer signup, the address book, and the
// admin customer listing.
func SetupCustomerRoutes(r *gin.Engine, db *gorm.DB) {
	customerGroup := r.Group("/customer")
	{
		customerGroup.POST("/", customerControllers.CreateCustomer(db))

		addressGroup := customerGroup.Group("/address")
		addressGroup.Use(middleware.ValidateToken)
		{
			addressGroup.GET("/", customerControllers.ListAddresses(db))
			addressGroup.POST("/", customerControllers.CreateAddress(db))
			addressGroup.PUT("/:id", customerControllers.UpdateAddress(db))
			addressGroup.DELETE("/:id", customerControllers.DeleteAddress(db))
		}

		adminOnly := customerGroup.Group("")
		adminOnly.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminOnly.GET("/", customerControllers.GetCustomers(db))
		}
	}
}
