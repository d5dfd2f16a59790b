package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// ApplyCouponRequest represents the request body for applying a coupon
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon evaluates a coupon against the current cart and, when valid,
// records it as the cart's active coupon. No usage allowance is consumed
// here; counters only move when an order is actually placed.
func ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")

	ownerKey := utils.CartOwnerKey(c)
	userID := utils.CurrentUserID(c)

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid apply-coupon request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	details, err := utils.GetCartDetails(ownerKey, userID)
	if err != nil {
		utils.LogError("Failed to get cart details for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}
	if len(details.Items) == 0 {
		utils.BadRequest(c, "Cannot apply a coupon to an empty cart", nil)
		return
	}

	coupon, err := utils.EvaluateCoupon(config.DB, req.Code, userID, details.Subtotal, details.TotalQuantity, time.Now())
	if err != nil {
		if errors.Is(err, utils.ErrCouponNotFound) {
			utils.LogError("Coupon not found: %s", req.Code)
			utils.NotFound(c, err.Error())
			return
		}
		utils.LogError("Coupon %s rejected for cart %s: %v", req.Code, ownerKey, err)
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	// Replace any previously applied coupon
	if err := config.DB.Where("owner_key = ?", ownerKey).Delete(&models.ActiveCoupon{}).Error; err != nil {
		utils.LogError("Failed to clear previous active coupon for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to apply coupon", nil)
		return
	}

	active := models.ActiveCoupon{
		OwnerKey:  ownerKey,
		CouponID:  coupon.ID,
		Code:      coupon.Code,
		AppliedAt: time.Now(),
	}
	if err := config.DB.Create(&active).Error; err != nil {
		utils.LogError("Failed to save active coupon for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to apply coupon", nil)
		return
	}

	breakdown := utils.CalculatePrice(details.PriceLines(), models.DeliveryTypePickup, 0, coupon)

	utils.LogInfo("Applied coupon %s to cart %s", coupon.Code, ownerKey)
	utils.Success(c, "Coupon applied successfully", gin.H{
		"coupon_code": coupon.Code,
		"coupon_kind": coupon.Kind,
		"subtotal":    fmt.Sprintf("%.2f", breakdown.Subtotal),
		"discount":    fmt.Sprintf("%.2f", breakdown.Discount),
		"total":       fmt.Sprintf("%.2f", breakdown.Total),
	})
}

// RemoveCoupon clears the cart's active coupon
func RemoveCoupon(c *gin.Context) {
	utils.LogInfo("RemoveCoupon called")

	ownerKey := utils.CartOwnerKey(c)
	result := config.DB.Where("owner_key = ?", ownerKey).Delete(&models.ActiveCoupon{})
	if result.Error != nil {
		utils.LogError("Failed to remove active coupon for %s: %v", ownerKey, result.Error)
		utils.InternalServerError(c, "Failed to remove coupon", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "No coupon applied to this cart")
		return
	}

	utils.LogInfo("Removed active coupon from cart %s", ownerKey)
	utils.Success(c, "Coupon removed successfully", nil)
}
