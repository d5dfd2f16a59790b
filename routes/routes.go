package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/controllers"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Session middleware carries the guest cart key across requests.
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "marmitex-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24 * 7, // guest carts live for a week
		Path:     "/",
		Secure:   false, // set to true in production with HTTPS
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("marmitex", store))

	// Payment provider callbacks sit outside the versioned API.
	router.POST("/webhooks/payment", controllers.PaymentWebhook)

	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
