package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// ListMyOrders returns the authenticated customer's orders
func ListMyOrders(c *gin.Context) {
	utils.LogInfo("ListMyOrders called")

	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		list = append(list, orderSummaryResponse(&orders[i]))
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", list, total, pagination.Page, pagination.Limit)
}

// GetOrder returns one order by its public number. Guests track their order
// with the number from the confirmation screen; authenticated customers may
// only read their own orders.
//
// For guest orders the number itself is the access credential: it is derived
// from a random UUID, never enumerable, and only ever shown to the person who
// placed the order. Anyone presenting it is treated as the owner.
func GetOrder(c *gin.Context) {
	utils.LogInfo("GetOrder called")

	number := c.Param("number")
	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("StatusHistory").
		Where("number = ?", number).First(&order).Error; err != nil {
		utils.LogError("Order not found: %s", number)
		utils.NotFound(c, "Order not found")
		return
	}

	if user, ok := utils.CurrentUser(c); ok && order.UserID != nil && *order.UserID != user.ID {
		utils.LogError("User %d attempted to read order %s owned by user %d", user.ID, number, *order.UserID)
		utils.Forbidden(c, "You do not have access to this order")
		return
	}

	utils.Success(c, "Order retrieved successfully", orderResponse(&order))
}
