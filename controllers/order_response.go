package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/models"
)

// orderResponse renders an order in the persisted wire shape: a payment
// block and a statusHistory map keyed by status name.
func orderResponse(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		line := gin.H{
			"dish_id":    item.DishID,
			"name":       item.Name,
			"unit_price": item.UnitPrice,
			"quantity":   item.Quantity,
			"total":      item.Total,
		}
		if item.Options != "" {
			var options map[string]string
			if err := json.Unmarshal([]byte(item.Options), &options); err == nil {
				line["options"] = options
			}
		}
		items = append(items, line)
	}

	history := gin.H{}
	for _, entry := range order.StatusHistory {
		record := gin.H{"at": entry.CreatedAt.Format("2006-01-02 15:04:05")}
		if entry.Note != "" {
			record["note"] = entry.Note
		}
		history[entry.Status] = record
	}

	payment := gin.H{
		"subtotal":       order.Subtotal,
		"discountCoupon": order.CouponDiscount,
		"deliveryFee":    order.DeliveryFee,
		"total":          order.Total,
		"status":         order.PaymentStatus,
		"method":         order.PaymentMethod,
	}
	if order.CouponCode != "" {
		payment["coupon"] = gin.H{
			"code": order.CouponCode,
			"kind": order.CouponKind,
		}
	}

	response := gin.H{
		"id":             order.Number,
		"status":         order.Status,
		"delivery_type":  order.DeliveryType,
		"customer_name":  order.CustomerName,
		"customer_phone": order.CustomerPhone,
		"items":          items,
		"payment":        payment,
		"scheduledDate":  order.ScheduledDate,
		"scheduledTime":  order.ScheduledTime,
		"statusHistory":  history,
		"created_at":     order.CreatedAt.Format("2006-01-02 15:04:05"),
		"updated_at":     order.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if order.Notes != "" {
		response["notes"] = order.Notes
	}
	if order.DeliveryType == models.DeliveryTypeDelivery {
		response["address"] = gin.H{
			"street": order.AddressStreet,
			"number": order.AddressNumber,
			"city":   order.AddressCity,
			"state":  order.AddressState,
		}
	}
	return response
}

// orderSummaryResponse is the compact listing shape for order tables.
func orderSummaryResponse(order *models.Order) gin.H {
	return gin.H{
		"id":             order.Number,
		"status":         order.Status,
		"delivery_type":  order.DeliveryType,
		"customer_name":  order.CustomerName,
		"total":          fmt.Sprintf("%.2f", order.Total),
		"payment_status": order.PaymentStatus,
		"scheduledDate":  order.ScheduledDate,
		"scheduledTime":  order.ScheduledTime,
		"created_at":     order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
