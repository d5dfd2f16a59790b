package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// GetCoupons returns all coupons with pagination
func GetCoupons(c *gin.Context) {
	utils.LogInfo("GetCoupons called")

	pagination := utils.NewPagination(c)
	sortBy := c.DefaultQuery("sort_by", "created_at")
	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	switch sortBy {
	case "created_at", "code", "used_count", "expires_at":
	default:
		sortBy = "created_at"
	}

	query := config.DB.Model(&models.Coupon{}).Order(fmt.Sprintf("%s %s", sortBy, order))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count coupons: %v", err)
		utils.InternalServerError(c, "Failed to count coupons", nil)
		return
	}

	var coupons []models.Coupon
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	list := make([]gin.H, 0, len(coupons))
	for i := range coupons {
		list = append(list, couponResponse(&coupons[i]))
	}

	utils.SuccessWithPagination(c, "Coupons retrieved successfully", list, total, pagination.Page, pagination.Limit)
}

// DeleteCoupon removes a coupon by id. This is an explicit admin cleanup
// action; toggling the active flag is the usual way to retire a coupon.
func DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")

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

	if err := config.DB.Delete(&coupon).Error; err != nil {
		utils.LogError("Failed to delete coupon %d: %v", couponID, err)
		utils.InternalServerError(c, "Failed to delete coupon", err.Error())
		return
	}

	utils.LogInfo("Deleted coupon %s (ID: %d)", coupon.Code, couponID)
	utils.Success(c, "Coupon deleted successfully", nil)
}
