package utils

import (
	"fmt"
	"time"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
)

// CartDetails aggregates a cart with its subtotal and the evaluated coupon.
type CartDetails struct {
	Items         []models.CartItem
	Subtotal      float64
	TotalQuantity int
	Coupon        *AppliedCoupon
	CouponError   error
}

// GetCartDetails loads the cart for an owner key and evaluates any applied
// coupon against it. Line subtotals use the snapshot prices taken at
// add-to-cart time. A coupon that has become invalid since it was applied is
// reported through CouponError rather than failing the whole lookup.
func GetCartDetails(ownerKey string, userID *uint) (*CartDetails, error) {
	db := config.DB

	var items []models.CartItem
	if err := db.Where("owner_key = ?", ownerKey).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	details := &CartDetails{Items: items}
	for _, item := range items {
		details.Subtotal += item.UnitPrice * float64(item.Quantity)
		details.TotalQuantity += item.Quantity
	}
	details.Subtotal = roundCurrency(details.Subtotal)

	var active models.ActiveCoupon
	if err := db.Where("owner_key = ?", ownerKey).First(&active).Error; err == nil {
		coupon, err := EvaluateCoupon(db, active.Code, userID, details.Subtotal, details.TotalQuantity, time.Now())
		if err != nil {
			details.CouponError = err
		} else {
			details.Coupon = coupon
		}
	}

	return details, nil
}

// PriceLines converts cart items into pricing calculator input.
func (d *CartDetails) PriceLines() []PriceLine {
	lines := make([]PriceLine, 0, len(d.Items))
	for _, item := range d.Items {
		lines = append(lines, PriceLine{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
