// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/resteel-cart/internal/interfaces/http/handlers"
)

// SetupCartRoutes sets up cart routes. The group must run behind the cart session middleware.
func SetupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.GET("/quote", cartHandler.GetQuote)

		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupCatalogRoutes sets up read-only catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/warehouses/:id", catalogHandler.GetWarehouse)
		catalog.GET("/products/:id", catalogHandler.GetProduct)
	}
}
