package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/controllers"
	"github.com/pedrohsouza/marmitex/middleware"
)

// initUserRoutes initializes the storefront and customer routes
func initUserRoutes(router *gin.RouterGroup) {
	// Auth
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)

	// Menu browsing
	router.GET("/menu", controllers.GetMenu)
	router.GET("/menu/:id", controllers.GetDish)
	router.GET("/categories", controllers.GetCategories)

	// Delivery fee estimate
	router.POST("/delivery/estimate", controllers.EstimateDeliveryFee)

	// Storefront routes work for guests and logged-in customers alike;
	// the optional middleware attaches the user when a token is present.
	store := router.Group("")
	store.Use(middleware.OptionalAuthMiddleware())
	{
		store.GET("/cart", controllers.GetCart)
		store.POST("/cart/items", controllers.AddToCart)
		store.PUT("/cart/items/:id", controllers.UpdateCartItem)
		store.DELETE("/cart/items/:id", controllers.RemoveCartItem)
		store.DELETE("/cart", controllers.ClearCart)

		store.POST("/cart/coupon", controllers.ApplyCoupon)
		store.DELETE("/cart/coupon", controllers.RemoveCoupon)

		store.GET("/checkout", controllers.GetCheckoutSummary)
		store.POST("/checkout", controllers.PlaceOrder)

		store.GET("/orders/:number", controllers.GetOrder)
		store.POST("/orders/:number/pay", controllers.InitiatePixPayment)
		store.GET("/orders/:number/payment", controllers.GetPaymentStatus)
	}

	// Order history needs a real account.
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/orders", controllers.ListMyOrders)
	}
}
