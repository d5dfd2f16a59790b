package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// DashboardOverview represents the admin dashboard overview data
type DashboardOverview struct {
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
	TotalCustomers int64            `json:"total_customers"`
	RecentOrders   []OrderOverview  `json:"recent_orders"`
	TopDishes      []DishOverview   `json:"top_dishes"`
}

// OrderOverview represents simplified order data for the dashboard
type OrderOverview struct {
	Number       string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	DeliveryType string    `json:"delivery_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// DishOverview represents a dish ranked by quantity sold
type DishOverview struct {
	DishID   uint    `json:"dish_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity_sold"`
	Revenue  float64 `json:"revenue"`
}

// GetDashboardOverview returns overview data for the admin dashboard
func GetDashboardOverview(c *gin.Context) {
	utils.LogInfo("GetDashboardOverview called")

	ordersByStatus := make(map[string]int64)
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := config.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		utils.LogError("Failed to count orders by status: %v", err)
		utils.InternalServerError(c, "Failed to get dashboard data", nil)
		return
	}
	var totalOrders int64
	for _, sc := range counts {
		ordersByStatus[sc.Status] = sc.Count
		totalOrders += sc.Count
	}
	utils.LogDebug("Retrieved order counts for %d statuses", len(counts))

	// Revenue counts only orders that reached the customer.
	var totalRevenue float64
	if err := config.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		utils.LogError("Failed to get total revenue: %v", err)
		utils.InternalServerError(c, "Failed to get dashboard data", nil)
		return
	}

	var totalCustomers int64
	if err := config.DB.Model(&models.User{}).Count(&totalCustomers).Error; err != nil {
		utils.LogError("Failed to get total customers: %v", err)
		utils.InternalServerError(c, "Failed to get dashboard data", nil)
		return
	}

	var recentOrders []models.Order
	if err := config.DB.Order("created_at desc").Limit(5).Find(&recentOrders).Error; err != nil {
		utils.LogError("Failed to get recent orders: %v", err)
		utils.InternalServerError(c, "Failed to get dashboard data", nil)
		return
	}

	var topDishes []DishOverview
	if err := config.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status NOT IN ?", []string{models.OrderStatusPaymentPending, models.OrderStatusCancelled}).
		Select("order_items.dish_id, order_items.name, SUM(order_items.quantity) as quantity, SUM(order_items.total) as revenue").
		Group("order_items.dish_id, order_items.name").
		Order("quantity desc").
		Limit(5).
		Scan(&topDishes).Error; err != nil {
		utils.LogError("Failed to get top dishes: %v", err)
		utils.InternalServerError(c, "Failed to get dashboard data", nil)
		return
	}
	utils.LogDebug("Retrieved %d top dishes", len(topDishes))

	recentOverview := make([]OrderOverview, 0, len(recentOrders))
	for _, order := range recentOrders {
		recentOverview = append(recentOverview, OrderOverview{
			Number:       order.Number,
			CustomerName: order.CustomerName,
			Status:       order.Status,
			Total:        order.Total,
			DeliveryType: order.DeliveryType,
			CreatedAt:    order.CreatedAt,
		})
	}

	overview := DashboardOverview{
		OrdersByStatus: ordersByStatus,
		TotalOrders:    totalOrders,
		TotalRevenue:   totalRevenue,
		TotalCustomers: totalCustomers,
		RecentOrders:   recentOverview,
		TopDishes:      topDishes,
	}

	utils.LogInfo("Successfully retrieved dashboard overview")
	utils.Success(c, "Dashboard data retrieved successfully", gin.H{
		"overview": overview,
	})
}
