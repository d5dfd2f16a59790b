package utils

import (
	"math"

	"github.com/pedrohsouza/marmitex/models"
)

// PriceLine is one cart line as seen by the pricing calculator. UnitPrice and
// Quantity come from the cart snapshot taken at add-to-cart time.
type PriceLine struct {
	UnitPrice float64
	Quantity  int
}

// AppliedCoupon carries the evaluated coupon data pricing needs. Value is
// only meaningful for kind "discount", MinItemQuantity only for "free_item".
type AppliedCoupon struct {
	ID              uint
	Code            string
	Kind            string
	Value           float64
	MinItemQuantity int
}

// PriceBreakdown is the monetary breakdown persisted into the order's
// payment block.
type PriceBreakdown struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount_coupon"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// CalculatePrice computes the order totals for a cart. The delivery fee is
// zeroed for pickup orders and for free_delivery coupons; the discount never
// exceeds the subtotal, and the total never goes below zero.
func CalculatePrice(lines []PriceLine, deliveryType string, baseDeliveryFee float64, coupon *AppliedCoupon) PriceBreakdown {
	var breakdown PriceBreakdown
	var totalQuantity int

	for _, line := range lines {
		breakdown.Subtotal += line.UnitPrice * float64(line.Quantity)
		totalQuantity += line.Quantity
	}

	breakdown.DeliveryFee = baseDeliveryFee
	if deliveryType == models.DeliveryTypePickup {
		breakdown.DeliveryFee = 0
	}

	if coupon != nil {
		switch coupon.Kind {
		case models.CouponKindDiscount:
			breakdown.Discount = coupon.Value
		case models.CouponKindFreeDelivery:
			breakdown.DeliveryFee = 0
		case models.CouponKindFreeItem:
			if totalQuantity >= coupon.MinItemQuantity {
				breakdown.Discount = cheapestUnitPrice(lines)
			}
		}
	}

	if breakdown.Discount > breakdown.Subtotal {
		breakdown.Discount = breakdown.Subtotal
	}

	breakdown.Subtotal = roundCurrency(breakdown.Subtotal)
	breakdown.Discount = roundCurrency(breakdown.Discount)
	breakdown.DeliveryFee = roundCurrency(breakdown.DeliveryFee)

	breakdown.Total = roundCurrency(breakdown.Subtotal - breakdown.Discount + breakdown.DeliveryFee)
	if breakdown.Total < 0 {
		breakdown.Total = 0
	}

	return breakdown
}

// cheapestUnitPrice returns the lowest unit price among the cart lines. This
// is the benefit of a free_item coupon: the cheapest eligible item is free.
func cheapestUnitPrice(lines []PriceLine) float64 {
	var cheapest float64
	for i, line := range lines {
		if i == 0 || line.UnitPrice < cheapest {
			cheapest = line.UnitPrice
		}
	}
	return cheapest
}

func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
