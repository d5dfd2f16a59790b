package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// GetCheckoutSummary returns the cart with the full monetary breakdown and
// the delivery fee for the given address, if provided through query params.
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

	ownerKey := utils.CartOwnerKey(c)
	details, err := utils.GetCartDetails(ownerKey, utils.CurrentUserID(c))
	if err != nil {
		utils.LogError("Failed to get cart details for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	deliveryType := c.DefaultQuery("delivery_type", models.DeliveryTypeDelivery)
	if deliveryType != models.DeliveryTypeDelivery && deliveryType != models.DeliveryTypePickup {
		utils.BadRequest(c, "delivery_type must be delivery or pickup", nil)
		return
	}

	var deliveryFee float64
	deliveryAvailable := true
	deliveryWarning := ""

	if deliveryType == models.DeliveryTypeDelivery {
		street := c.Query("street")
		city := c.Query("city")
		state := c.Query("state")
		if street == "" || city == "" {
			deliveryFee = utils.DefaultDeliveryFee
			deliveryWarning = "Provide a delivery address for an exact fee; showing the default fee."
		} else {
			cfg, cfgErr := config.LoadConfig()
			if cfgErr != nil {
				utils.LogError("Failed to load config: %v", cfgErr)
				utils.InternalServerError(c, "Failed to prepare checkout summary", nil)
				return
			}
			estimate, estErr := utils.EstimateDeliveryFee(cfg.RestaurantLat, cfg.RestaurantLng, street, c.Query("number"), city, state)
			switch {
			case errors.Is(estErr, utils.ErrOutOfRange):
				deliveryAvailable = false
				deliveryWarning = "Address is outside the delivery area."
			case errors.Is(estErr, utils.ErrGeocodeFailed):
				deliveryFee = utils.DefaultDeliveryFee
				deliveryWarning = "Could not locate the address; using the default delivery fee."
			case estErr != nil:
				utils.LogError("Delivery estimation failed: %v", estErr)
				utils.InternalServerError(c, "Failed to prepare checkout summary", nil)
				return
			default:
				deliveryFee = estimate.Fee
			}
		}
	}

	breakdown := utils.CalculatePrice(details.PriceLines(), deliveryType, deliveryFee, details.Coupon)

	response := gin.H{
		"can_checkout":       len(details.Items) > 0 && deliveryAvailable,
		"items":              details.Items,
		"subtotal":           fmt.Sprintf("%.2f", breakdown.Subtotal),
		"discount":           fmt.Sprintf("%.2f", breakdown.Discount),
		"delivery_fee":       fmt.Sprintf("%.2f", breakdown.DeliveryFee),
		"total":              fmt.Sprintf("%.2f", breakdown.Total),
		"delivery_available": deliveryAvailable,
	}
	if details.Coupon != nil {
		response["coupon_code"] = details.Coupon.Code
		response["coupon_kind"] = details.Coupon.Kind
	}
	if details.CouponError != nil {
		response["coupon_warning"] = details.CouponError.Error()
	}
	if deliveryWarning != "" {
		response["delivery_warning"] = deliveryWarning
	}

	utils.LogInfo("Prepared checkout summary for cart %s", ownerKey)
	utils.Success(c, "Checkout summary retrieved successfully", response)
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	DeliveryType  string `json:"delivery_type" binding:"required,oneof=delivery pickup"`
	Street        string `json:"street"`
	Number        string `json:"number"`
	City          string `json:"city"`
	State         string `json:"state"`
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	ScheduledTime string `json:"scheduled_time"`
	Notes         string `json:"notes"`
}

// PlaceOrder creates an order in payment_pending from the current cart. The
// cart snapshots are priced server-side, stock is re-verified for every line
// (all-or-nothing), and coupon usage counters are consumed atomically. Stock
// itself is decremented later, when the payment webhook confirms approval.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	ownerKey := utils.CartOwnerKey(c)
	userID := utils.CurrentUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if ok, msg := utils.ValidateEmail(req.CustomerEmail); !ok {
		utils.BadRequest(c, msg, nil)
		return
	}
	if ok, msg := utils.ValidatePhone(req.CustomerPhone); !ok {
		utils.BadRequest(c, msg, nil)
		return
	}
	if err := utils.ValidateSchedule(req.ScheduledDate, req.ScheduledTime, time.Now()); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if req.DeliveryType == models.DeliveryTypeDelivery && (req.Street == "" || req.City == "" || req.State == "") {
		utils.BadRequest(c, "Delivery orders require street, city and state", nil)
		return
	}

	details, err := utils.GetCartDetails(ownerKey, userID)
	if err != nil {
		utils.LogError("Failed to get cart details for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}
	if len(details.Items) == 0 {
		utils.BadRequest(c, "Cannot place an order with an empty cart", nil)
		return
	}
	if details.CouponError != nil {
		utils.LogError("Applied coupon no longer valid for cart %s: %v", ownerKey, details.CouponError)
		utils.BadRequest(c, details.CouponError.Error(), gin.H{"remove_coupon": true})
		return
	}

	// Delivery fee: exact when the address resolves, default on geocode
	// failure, hard stop when out of range.
	var deliveryFee float64
	deliveryWarning := ""
	if req.DeliveryType == models.DeliveryTypeDelivery {
		cfg, cfgErr := config.LoadConfig()
		if cfgErr != nil {
			utils.LogError("Failed to load config: %v", cfgErr)
			utils.InternalServerError(c, "Failed to place order", nil)
			return
		}
		estimate, estErr := utils.EstimateDeliveryFee(cfg.RestaurantLat, cfg.RestaurantLng, req.Street, req.Number, req.City, req.State)
		switch {
		case errors.Is(estErr, utils.ErrOutOfRange):
			utils.LogError("Order rejected, address out of range: %s, %s", req.Street, req.City)
			utils.BadRequest(c, "This address is outside our delivery area", gin.H{"out_of_range": true})
			return
		case errors.Is(estErr, utils.ErrGeocodeFailed):
			deliveryFee = utils.DefaultDeliveryFee
			deliveryWarning = "Could not locate the address; the default delivery fee was applied."
		case estErr != nil:
			utils.LogError("Delivery estimation failed: %v", estErr)
			utils.InternalServerError(c, "Failed to place order", nil)
			return
		default:
			deliveryFee = estimate.Fee
		}
	}

	breakdown := utils.CalculatePrice(details.PriceLines(), req.DeliveryType, deliveryFee, details.Coupon)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	// Stock re-check for every line; any shortfall rejects the whole order.
	// Nothing is decremented here.
	for _, item := range details.Items {
		var dish models.Dish
		if err := tx.Set("gorm:pessimistic_lock", true).First(&dish, item.DishID).Error; err != nil {
			tx.Rollback()
			utils.LogError("Dish not found during order placement: %d", item.DishID)
			utils.BadRequest(c, fmt.Sprintf("'%s' is no longer on the menu", item.Name), nil)
			return
		}
		if !dish.Available || dish.Stock < item.Quantity {
			tx.Rollback()
			utils.LogError("Insufficient stock for dish '%s', available: %d, requested: %d", dish.Name, dish.Stock, item.Quantity)
			utils.BadRequest(c, fmt.Sprintf("'%s' does not have enough stock. Available: %d, Requested: %d", dish.Name, dish.Stock, item.Quantity), nil)
			return
		}
	}

	order := models.Order{
		Number:         newOrderNumber(),
		UserID:         userID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:  req.CustomerPhone,
		DeliveryType:   req.DeliveryType,
		Status:         models.OrderStatusPaymentPending,
		AddressStreet:  req.Street,
		AddressNumber:  req.Number,
		AddressCity:    req.City,
		AddressState:   req.State,
		Subtotal:       breakdown.Subtotal,
		CouponDiscount: breakdown.Discount,
		DeliveryFee:    breakdown.DeliveryFee,
		Total:          breakdown.Total,
		PaymentStatus:  models.PaymentStatusPending,
		PaymentMethod:  "pix",
		Notes:          req.Notes,
		ScheduledDate:  req.ScheduledDate,
		ScheduledTime:  req.ScheduledTime,
	}
	if details.Coupon != nil {
		order.CouponCode = details.Coupon.Code
		order.CouponKind = details.Coupon.Kind
	}
	for _, item := range details.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			DishID:    item.DishID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Options:   item.Options,
			Total:     item.UnitPrice * float64(item.Quantity),
		})
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order: %v", err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}
	utils.LogInfo("Created order %s (ID: %d)", order.Number, order.ID)

	if err := appendStatusHistory(tx, order.ID, models.OrderStatusPaymentPending, "Order created, awaiting payment"); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record status history for order %s: %v", order.Number, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	if details.Coupon != nil {
		if err := utils.ConsumeCouponUsage(tx, details.Coupon.ID, userID, time.Now()); err != nil {
			tx.Rollback()
			if errors.Is(err, utils.ErrCouponExhausted) {
				utils.LogError("Coupon %s exhausted during order placement", details.Coupon.Code)
				utils.BadRequest(c, err.Error(), gin.H{"remove_coupon": true})
				return
			}
			utils.LogError("Failed to consume coupon usage: %v", err)
			utils.InternalServerError(c, "Failed to place order", nil)
			return
		}
		utils.LogInfo("Consumed usage of coupon %s for order %s", details.Coupon.Code, order.Number)
	}

	if err := tx.Where("owner_key = ?", ownerKey).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear cart %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}
	if err := tx.Where("owner_key = ?", ownerKey).Delete(&models.ActiveCoupon{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear active coupon for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order transaction: %v", err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	order.StatusHistory = []models.OrderStatusHistory{{
		OrderID:   order.ID,
		Status:    models.OrderStatusPaymentPending,
		CreatedAt: time.Now(),
	}}

	response := gin.H{
		"order":       orderResponse(&order),
		"payment_url": fmt.Sprintf("/v1/orders/%s/payment", order.Number),
	}
	if deliveryWarning != "" {
		response["delivery_warning"] = deliveryWarning
	}

	utils.LogInfo("Order %s placed successfully, awaiting payment", order.Number)
	utils.Created(c, "Order placed. Complete the PIX payment to confirm it.", response)
}

// newOrderNumber mints a short human-readable order id.
func newOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "MX-" + raw[:8]
}

// appendStatusHistory records when an order entered a status. A prior entry
// for the same status is left untouched so history is never rewritten.
func appendStatusHistory(tx *gorm.DB, orderID uint, status, note string) error {
	var existing models.OrderStatusHistory
	err := tx.Where("order_id = ? AND status = ?", orderID, status).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&models.OrderStatusHistory{
		OrderID: orderID,
		Status:  status,
		Note:    note,
	}).Error
}
