package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// PaymentWebhookRequest is the notification body sent by the payment
// provider: {"type": "payment", "data": {"id": "<payment id>"}}.
type PaymentWebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PaymentWebhook handles payment notifications. The webhook body is only a
// trigger: the authoritative payment state is re-fetched from the provider
// before anything changes, so a spoofed callback cannot confirm an order.
//
// The handler is idempotent. The payment_pending -> pending transition and
// the stock_applied flag flip in a single conditional update, so a replayed
// notification finds zero affected rows and changes nothing. It always
// acknowledges with 200 to keep the provider from retrying storms; failures
// are visible in the server logs only.
func PaymentWebhook(c *gin.Context) {
	utils.LogInfo("PaymentWebhook called")

	var req PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid webhook payload: %v", err)
		c.JSON(200, gin.H{"status": "ignored"})
		return
	}

	if req.Type != "payment" || req.Data.ID == "" {
		utils.LogInfo("Ignoring webhook of type %q", req.Type)
		c.JSON(200, gin.H{"status": "ignored"})
		return
	}

	paymentID, err := strconv.Atoi(req.Data.ID)
	if err != nil {
		utils.LogError("Invalid payment id in webhook: %q", req.Data.ID)
		c.JSON(200, gin.H{"status": "ignored"})
		return
	}

	client, err := paymentClient()
	if err != nil {
		utils.LogError("%v", err)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	resource, err := client.Get(c.Request.Context(), paymentID)
	if err != nil {
		utils.LogError("Failed to fetch payment %d from provider: %v", paymentID, err)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	if resource.Status != "approved" {
		utils.LogInfo("Payment %d status is %q, nothing to do", paymentID, resource.Status)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Where("number = ?", resource.ExternalReference).First(&order).Error; err != nil {
		// Unknown reference: acknowledge and move on so provider retries
		// don't pile up against an order we will never find.
		utils.LogError("Webhook for payment %d references unknown order %q", paymentID, resource.ExternalReference)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	confirmed, err := confirmOrderPayment(&order, int64(paymentID))
	if err != nil {
		utils.LogError("Failed to confirm payment for order %s: %v", order.Number, err)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}
	if !confirmed {
		utils.LogInfo("Order %s already confirmed, webhook replay ignored", order.Number)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	// Stock accounting is best-effort after the transition committed; a
	// decrement failure never turns a confirmed payment back into pending.
	applyStockDecrement(&order)

	go func(o models.Order) {
		if err := utils.SendOrderConfirmationEmail(&o); err != nil {
			utils.LogError("Failed to send confirmation email for order %s: %v", o.Number, err)
		}
		if err := utils.SendKitchenAlertEmail(&o); err != nil {
			utils.LogError("Failed to send kitchen alert for order %s: %v", o.Number, err)
		}
	}(order)

	utils.LogInfo("Order %s confirmed by payment %d", order.Number, paymentID)
	c.JSON(200, gin.H{"status": "ok"})
}

// confirmOrderPayment performs the conditional payment_pending -> pending
// transition. Returns false when the order was already past payment_pending
// or another delivery of the same webhook won the race.
func confirmOrderPayment(order *models.Order, paymentID int64) (bool, error) {
	tx := config.DB.Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	result := tx.Model(&models.Order{}).
		Where("id = ? AND status = ? AND stock_applied = ?", order.ID, models.OrderStatusPaymentPending, false).
		Updates(map[string]interface{}{
			"status":              models.OrderStatusPending,
			"payment_status":      models.PaymentStatusApproved,
			"provider_payment_id": paymentID,
			"paid_at":             gorm.Expr("NOW()"),
			"stock_applied":       true,
		})
	if result.Error != nil {
		tx.Rollback()
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return false, nil
	}

	if err := appendStatusHistory(tx, order.ID, models.OrderStatusPending, "Payment approved"); err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		return false, err
	}

	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusApproved
	return true, nil
}

// applyStockDecrement decrements stock for each line, clamped at zero, and
// takes sold-out dishes off the menu.
func applyStockDecrement(order *models.Order) {
	for _, item := range order.OrderItems {
		if err := config.DB.Model(&models.Dish{}).Where("id = ?", item.DishID).
			UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", item.Quantity)).Error; err != nil {
			utils.LogError("Failed to decrement stock for dish %d on order %s: %v", item.DishID, order.Number, err)
			continue
		}
		if err := config.DB.Model(&models.Dish{}).Where("id = ? AND stock <= 0", item.DishID).
			UpdateColumn("available", false).Error; err != nil {
			utils.LogError("Failed to mark dish %d unavailable: %v", item.DishID, err)
		}
	}
}
