package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// AddToCartRequest represents the request body for adding a dish to the cart
type AddToCartRequest struct {
	DishID   uint              `json:"dish_id" binding:"required"`
	Quantity int               `json:"quantity" binding:"required,gte=1"`
	Options  map[string]string `json:"options"`
}

// AddToCart adds a dish to the cart, snapshotting its name and unit price.
// The snapshot is what the order will be priced from; only stock is
// re-verified when the order is placed.
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	ownerKey := utils.CartOwnerKey(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add-to-cart request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, req.DishID).Error; err != nil {
		utils.LogError("Dish not found: %d", req.DishID)
		utils.NotFound(c, "Dish not found")
		return
	}

	if !dish.Available || dish.Stock <= 0 {
		utils.LogError("Dish %d is unavailable", dish.ID)
		utils.BadRequest(c, fmt.Sprintf("'%s' is currently unavailable", dish.Name), nil)
		return
	}

	var optionsJSON string
	if len(req.Options) > 0 {
		raw, err := json.Marshal(req.Options)
		if err != nil {
			utils.BadRequest(c, "Invalid options", err.Error())
			return
		}
		optionsJSON = string(raw)
	}

	// Same dish with the same options collapses into one line
	var existing models.CartItem
	if err := config.DB.Where("owner_key = ? AND dish_id = ? AND options = ?", ownerKey, dish.ID, optionsJSON).
		First(&existing).Error; err == nil {
		newQuantity := existing.Quantity + req.Quantity
		if dish.Stock < newQuantity {
			utils.BadRequest(c, fmt.Sprintf("'%s' does not have enough stock. Available: %d", dish.Name, dish.Stock), nil)
			return
		}
		if err := config.DB.Model(&existing).Update("quantity", newQuantity).Error; err != nil {
			utils.LogError("Failed to update cart item %d: %v", existing.ID, err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
		utils.LogInfo("Increased quantity of cart item %d to %d", existing.ID, newQuantity)
		utils.Success(c, "Cart updated successfully", existing)
		return
	}

	if dish.Stock < req.Quantity {
		utils.BadRequest(c, fmt.Sprintf("'%s' does not have enough stock. Available: %d", dish.Name, dish.Stock), nil)
		return
	}

	item := models.CartItem{
		OwnerKey:  ownerKey,
		UserID:    utils.CurrentUserID(c),
		DishID:    dish.ID,
		Name:      dish.Name,
		UnitPrice: dish.Price,
		Quantity:  req.Quantity,
		Options:   optionsJSON,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		utils.LogError("Failed to add cart item: %v", err)
		utils.InternalServerError(c, "Failed to add to cart", nil)
		return
	}

	utils.LogInfo("Added dish %d to cart %s", dish.ID, ownerKey)
	utils.Created(c, "Added to cart successfully", item)
}

// UpdateCartItem changes the quantity of a cart line
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	ownerKey := utils.CartOwnerKey(c)
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart item ID", nil)
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,gte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var item models.CartItem
	if err := config.DB.Where("id = ? AND owner_key = ?", itemID, ownerKey).First(&item).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, item.DishID).Error; err == nil {
		if dish.Stock < req.Quantity {
			utils.BadRequest(c, fmt.Sprintf("'%s' does not have enough stock. Available: %d", dish.Name, dish.Stock), nil)
			return
		}
	}

	if err := config.DB.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		utils.LogError("Failed to update cart item %d: %v", item.ID, err)
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}

	utils.Success(c, "Cart updated successfully", item)
}

// RemoveCartItem deletes a cart line
func RemoveCartItem(c *gin.Context) {
	utils.LogInfo("RemoveCartItem called")

	ownerKey := utils.CartOwnerKey(c)
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart item ID", nil)
		return
	}

	result := config.DB.Where("id = ? AND owner_key = ?", itemID, ownerKey).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.LogError("Failed to remove cart item %d: %v", itemID, result.Error)
		utils.InternalServerError(c, "Failed to remove item", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Cart item not found")
		return
	}

	utils.Success(c, "Item removed from cart", nil)
}

// ClearCart removes every line and the applied coupon
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	ownerKey := utils.CartOwnerKey(c)
	if err := config.DB.Where("owner_key = ?", ownerKey).Delete(&models.CartItem{}).Error; err != nil {
		utils.LogError("Failed to clear cart %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}
	if err := config.DB.Where("owner_key = ?", ownerKey).Delete(&models.ActiveCoupon{}).Error; err != nil {
		utils.LogError("Failed to clear active coupon for %s: %v", ownerKey, err)
	}

	utils.Success(c, "Cart cleared successfully", nil)
}

// GetCart returns the cart lines with the running totals
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	ownerKey := utils.CartOwnerKey(c)
	details, err := utils.GetCartDetails(ownerKey, utils.CurrentUserID(c))
	if err != nil {
		utils.LogError("Failed to get cart details for %s: %v", ownerKey, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	// Delivery fee is estimated at checkout; the cart preview prices as pickup
	breakdown := utils.CalculatePrice(details.PriceLines(), models.DeliveryTypePickup, 0, details.Coupon)

	response := gin.H{
		"items":          details.Items,
		"subtotal":       fmt.Sprintf("%.2f", breakdown.Subtotal),
		"discount":       fmt.Sprintf("%.2f", breakdown.Discount),
		"total":          fmt.Sprintf("%.2f", breakdown.Total),
		"total_quantity": details.TotalQuantity,
	}
	if details.Coupon != nil {
		response["coupon_code"] = details.Coupon.Code
		response["coupon_kind"] = details.Coupon.Kind
	}
	if details.CouponError != nil {
		response["coupon_warning"] = details.CouponError.Error()
	}

	utils.Success(c, "Cart retrieved successfully", response)
}
