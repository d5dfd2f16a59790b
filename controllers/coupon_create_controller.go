package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// CreateCouponRequest represents the request body for creating a new coupon
type CreateCouponRequest struct {
	Code            string     `json:"code" binding:"required"`
	Kind            string     `json:"kind" binding:"required,oneof=discount free_delivery free_item"`
	Value           float64    `json:"value"`
	MinOrderValue   float64    `json:"min_order_value" binding:"gte=0"`
	MinItemQuantity int        `json:"min_item_quantity" binding:"gte=0"`
	UsageLimit      int        `json:"usage_limit" binding:"gte=0"`
	PerUserLimit    int        `json:"per_user_limit" binding:"gte=0"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// CreateCoupon creates a new coupon
func CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon creation request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	code := utils.NormalizeCouponCode(req.Code)
	utils.LogInfo("Processing coupon creation with code: %s", code)

	if err := utils.ValidateCouponKind(req.Kind, req.Value, req.MinItemQuantity); err != nil {
		utils.LogError("Invalid coupon fields for code %s: %v", code, err)
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		utils.LogError("Invalid expiry date for coupon code %s: date is in the past", code)
		utils.BadRequest(c, "Expiry date must be in the future", nil)
		return
	}

	var existing models.Coupon
	if err := config.DB.Unscoped().Where("code = ?", code).First(&existing).Error; err == nil {
		utils.LogError("Coupon code already exists: %s", code)
		utils.Conflict(c, "Coupon code already exists", nil)
		return
	}

	coupon := models.Coupon{
		Code:            code,
		Kind:            req.Kind,
		Value:           req.Value,
		MinOrderValue:   req.MinOrderValue,
		MinItemQuantity: req.MinItemQuantity,
		UsageLimit:      req.UsageLimit,
		PerUserLimit:    req.PerUserLimit,
		ExpiresAt:       req.ExpiresAt,
		Active:          true,
	}
	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon: %v", err)
		utils.InternalServerError(c, "Failed to create coupon", err.Error())
		return
	}

	utils.LogInfo("Successfully created coupon %s, ID: %d", coupon.Code, coupon.ID)
	utils.Created(c, "Coupon created successfully", couponResponse(&coupon))
}

func couponResponse(coupon *models.Coupon) gin.H {
	response := gin.H{
		"id":                coupon.ID,
		"code":              coupon.Code,
		"kind":              coupon.Kind,
		"value":             coupon.Value,
		"min_order_value":   coupon.MinOrderValue,
		"min_item_quantity": coupon.MinItemQuantity,
		"usage_limit":       coupon.UsageLimit,
		"used_count":        coupon.UsedCount,
		"per_user_limit":    coupon.PerUserLimit,
		"active":            coupon.Active,
		"is_expired":        coupon.IsExpiredAt(time.Now()),
		"created_at":        coupon.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if coupon.ExpiresAt != nil {
		response["expires_at"] = coupon.ExpiresAt.Format("2006-01-02")
	}
	return response
}
