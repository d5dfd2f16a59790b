package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/controllers"
	"github.com/pedrohsouza/marmitex/middleware"
)

// initAdminRoutes initializes the restaurant back-office routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard", controllers.GetDashboardOverview)

			// Menu management
			admin.GET("/dishes", controllers.AdminListDishes)
			admin.POST("/dishes", controllers.CreateDish)
			admin.PUT("/dishes/:id", controllers.UpdateDish)
			admin.DELETE("/dishes/:id", controllers.DeleteDish)
			admin.POST("/categories", controllers.CreateCategory)

			// Coupon management
			admin.GET("/coupons", controllers.GetCoupons)
			admin.POST("/coupons", controllers.CreateCoupon)
			admin.PUT("/coupons/:id", controllers.UpdateCoupon)
			admin.DELETE("/coupons/:id", controllers.DeleteCoupon)

			// Order management
			admin.GET("/orders", controllers.AdminListOrders)
			admin.GET("/orders/:number", controllers.AdminGetOrder)
			admin.PATCH("/orders/:number/status", controllers.AdminUpdateOrderStatus)
			admin.DELETE("/orders/:number", controllers.AdminDeleteOrder)

			// Sales reports
			admin.GET("/reports/sales/excel", controllers.DownloadSalesReportExcel)
			admin.GET("/reports/sales/pdf", controllers.DownloadSalesReportPDF)
		}
	}
}
