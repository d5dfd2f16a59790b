package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/utils"
)

// EstimateDeliveryFeeRequest represents the address to estimate a fee for
type EstimateDeliveryFeeRequest struct {
	Street string `json:"street" binding:"required"`
	Number string `json:"number"`
	City   string `json:"city" binding:"required"`
	State  string `json:"state" binding:"required"`
}

// EstimateDeliveryFee geocodes an address and returns the delivery fee, an
// out-of-range flag, or a geocode-failed fallback. Out of range blocks
// delivery checkout; a geocode failure only downgrades to the default fee.
func EstimateDeliveryFee(c *gin.Context) {
	utils.LogInfo("EstimateDeliveryFee called")

	var req EstimateDeliveryFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid delivery estimate request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Failed to load config: %v", err)
		utils.InternalServerError(c, "Failed to estimate delivery fee", nil)
		return
	}

	estimate, err := utils.EstimateDeliveryFee(cfg.RestaurantLat, cfg.RestaurantLng, req.Street, req.Number, req.City, req.State)
	switch {
	case errors.Is(err, utils.ErrOutOfRange):
		utils.LogInfo("Address out of delivery range: %s, %s", req.Street, req.City)
		utils.Success(c, "Address is outside the delivery area", gin.H{
			"out_of_range":  true,
			"max_radius_km": utils.MaxDeliveryRadiusKm,
		})
		return
	case errors.Is(err, utils.ErrGeocodeFailed):
		utils.LogInfo("Geocoding failed for %s, %s; falling back to default fee", req.Street, req.City)
		utils.Success(c, "Could not locate the address; a default delivery fee will be used", gin.H{
			"geocode_failed": true,
			"fee":            fmt.Sprintf("%.2f", utils.DefaultDeliveryFee),
		})
		return
	case err != nil:
		utils.LogError("Delivery estimation failed: %v", err)
		utils.InternalServerError(c, "Failed to estimate delivery fee", nil)
		return
	}

	utils.LogInfo("Estimated delivery fee %.2f for %.2f km", estimate.Fee, estimate.DistanceKm)
	utils.Success(c, "Delivery fee estimated successfully", gin.H{
		"fee":         fmt.Sprintf("%.2f", estimate.Fee),
		"distance_km": fmt.Sprintf("%.2f", estimate.DistanceKm),
	})
}
