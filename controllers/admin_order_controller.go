package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// AdminListOrders lists all orders with optional status filter
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.BadRequest(c, "Invalid status filter", gin.H{"status": status})
			return
		}
		query = query.Where("status = ?", status)
	}
	if deliveryType := c.Query("delivery_type"); deliveryType != "" {
		query = query.Where("delivery_type = ?", deliveryType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		list = append(list, orderSummaryResponse(&orders[i]))
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", list, total, pagination.Page, pagination.Limit)
}

// AdminGetOrder returns full order detail for the kitchen dashboard
func AdminGetOrder(c *gin.Context) {
	utils.LogInfo("AdminGetOrder called")

	number := c.Param("number")
	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("StatusHistory").
		Where("number = ?", number).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", orderResponse(&order))
}

// UpdateOrderStatusRequest represents the status transition request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// AdminUpdateOrderStatus advances an order through its lifecycle. Only
// transitions allowed by the state machine are accepted; each transition
// appends a status history entry and notifies the customer.
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")

	number := c.Param("number")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.BadRequest(c, "Invalid status", gin.H{"status": req.Status})
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Where("number = ?", number).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status == req.Status {
		utils.Success(c, "Order already in requested status", orderSummaryResponse(&order))
		return
	}
	if !models.CanTransition(order.Status, req.Status) {
		utils.LogError("Invalid transition for order %s: %s -> %s", number, order.Status, req.Status)
		utils.Conflict(c, fmt.Sprintf("Cannot move order from %s to %s", order.Status, req.Status), gin.H{
			"current_status":   order.Status,
			"requested_status": req.Status,
		})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	previous := order.Status
	updates := map[string]interface{}{"status": req.Status}
	result := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, previous).
		Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to update order %s status: %v", number, result.Error)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.Conflict(c, "Order status changed concurrently, please retry", nil)
		return
	}

	if err := appendStatusHistory(tx, order.ID, req.Status, req.Note); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record status history for order %s: %v", number, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	// Cancelling a paid order returns its items to stock.
	if req.Status == models.OrderStatusCancelled && order.StockApplied {
		if err := restockOrderItems(tx, &order); err != nil {
			tx.Rollback()
			utils.LogError("Failed to restock order %s: %v", number, err)
			utils.InternalServerError(c, "Failed to update order status", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit status update for order %s: %v", number, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	order.Status = req.Status
	utils.LogInfo("Order %s moved %s -> %s", number, previous, req.Status)

	go func(o models.Order, status string) {
		if err := utils.SendStatusUpdateEmail(&o, status); err != nil {
			utils.LogError("Failed to send status email for order %s: %v", o.Number, err)
		}
	}(order, req.Status)

	utils.Success(c, "Order status updated successfully", orderSummaryResponse(&order))
}

// reenableDepletedDish targets a dish that left the menu because its stock
// ran out. Dishes an admin hid for other reasons are not matched, so the
// restock below never re-lists them.
func reenableDepletedDish(tx *gorm.DB, dishID uint) *gorm.DB {
	return tx.Model(&models.Dish{}).Where("id = ? AND available = ? AND stock <= 0", dishID, false)
}

// restockOrderItems returns a cancelled order's lines to stock and clears the
// order's stock flag. Availability comes back only for dishes the stock clamp
// had auto-disabled.
func restockOrderItems(tx *gorm.DB, order *models.Order) error {
	for _, item := range order.OrderItems {
		if err := reenableDepletedDish(tx, item.DishID).Update("available", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Dish{}).Where("id = ?", item.DishID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}
	return tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("stock_applied", false).Error
}

// AdminDeleteOrder removes an order record. Only cancelled orders can be
// deleted; everything else stays for reporting.
func AdminDeleteOrder(c *gin.Context) {
	utils.LogInfo("AdminDeleteOrder called")

	number := c.Param("number")
	var order models.Order
	if err := config.DB.Where("number = ?", number).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusCancelled {
		utils.Conflict(c, "Only cancelled orders can be deleted", gin.H{"status": order.Status})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusHistory{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete status history for order %s: %v", number, err)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete items for order %s: %v", number, err)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete order %s: %v", number, err)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}

	utils.LogInfo("Order %s deleted", number)
	utils.Success(c, "Order deleted successfully", nil)
}
