package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// UpdateCouponRequest represents a partial coupon update
type UpdateCouponRequest struct {
	Value           *float64   `json:"value"`
	MinOrderValue   *float64   `json:"min_order_value"`
	MinItemQuantity *int       `json:"min_item_quantity"`
	UsageLimit      *int       `json:"usage_limit"`
	PerUserLimit    *int       `json:"per_user_limit"`
	Active          *bool      `json:"active"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// UpdateCoupon partially updates a coupon. Deactivation is the preferred way
// to retire a coupon; deletion stays available as an explicit admin action.
func UpdateCoupon(c *gin.Context) {
	utils.LogInfo("UpdateCoupon called")

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, couponID).Error; err != nil {
		utils.LogError("Coupon not found: %d", couponID)
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon update request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Value != nil {
		if coupon.Kind == models.CouponKindDiscount && *req.Value <= 0 {
			utils.BadRequest(c, "Discount coupons require a positive value", nil)
			return
		}
		updates["value"] = *req.Value
	}
	if req.MinOrderValue != nil {
		updates["min_order_value"] = *req.MinOrderValue
	}
	if req.MinItemQuantity != nil {
		updates["min_item_quantity"] = *req.MinItemQuantity
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.PerUserLimit != nil {
		updates["per_user_limit"] = *req.PerUserLimit
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&coupon).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update coupon %d: %v", couponID, err)
		utils.InternalServerError(c, "Failed to update coupon", err.Error())
		return
	}

	utils.LogInfo("Updated coupon %s (ID: %d)", coupon.Code, coupon.ID)
	utils.Success(c, "Coupon updated successfully", couponResponse(&coupon))
}
