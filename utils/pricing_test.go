package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pedrohsouza/marmitex/models"
)

func TestCalculatePriceNoCoupon(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 30, Quantity: 2}}

	breakdown := CalculatePrice(lines, models.DeliveryTypeDelivery, 6, nil)

	assert.Equal(t, 60.0, breakdown.Subtotal)
	assert.Equal(t, 0.0, breakdown.Discount)
	assert.Equal(t, 6.0, breakdown.DeliveryFee)
	assert.Equal(t, 66.0, breakdown.Total)
}

func TestCalculatePriceDiscountCoupon(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 30, Quantity: 2}}
	coupon := &AppliedCoupon{Code: "SAVE10", Kind: models.CouponKindDiscount, Value: 10}

	breakdown := CalculatePrice(lines, models.DeliveryTypeDelivery, 6, coupon)

	assert.Equal(t, 60.0, breakdown.Subtotal)
	assert.Equal(t, 10.0, breakdown.Discount)
	assert.Equal(t, 6.0, breakdown.DeliveryFee)
	assert.Equal(t, 56.0, breakdown.Total)
}

func TestCalculatePriceFreeDeliveryCoupon(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 30, Quantity: 2}}
	coupon := &AppliedCoupon{Code: "FRETEGRATIS", Kind: models.CouponKindFreeDelivery}

	breakdown := CalculatePrice(lines, models.DeliveryTypeDelivery, 6, coupon)

	assert.Equal(t, 60.0, breakdown.Subtotal)
	assert.Equal(t, 0.0, breakdown.Discount)
	assert.Equal(t, 0.0, breakdown.DeliveryFee)
	assert.Equal(t, 60.0, breakdown.Total)
}

func TestCalculatePricePickupHasNoFee(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 25, Quantity: 1}}

	breakdown := CalculatePrice(lines, models.DeliveryTypePickup, 6, nil)

	assert.Equal(t, 0.0, breakdown.DeliveryFee)
	assert.Equal(t, 25.0, breakdown.Total)
}

func TestCalculatePriceDiscountClampedToSubtotal(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 15, Quantity: 1}}
	coupon := &AppliedCoupon{Code: "SAVE50", Kind: models.CouponKindDiscount, Value: 50}

	breakdown := CalculatePrice(lines, models.DeliveryTypePickup, 0, coupon)

	assert.Equal(t, 15.0, breakdown.Discount)
	assert.Equal(t, 0.0, breakdown.Total)
}

func TestCalculatePriceDiscountNeverEatsDeliveryFee(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 15, Quantity: 1}}
	coupon := &AppliedCoupon{Code: "SAVE50", Kind: models.CouponKindDiscount, Value: 50}

	breakdown := CalculatePrice(lines, models.DeliveryTypeDelivery, 8, coupon)

	// Discount is capped at the subtotal, so the fee survives.
	assert.Equal(t, 15.0, breakdown.Discount)
	assert.Equal(t, 8.0, breakdown.Total)
}

func TestCalculatePriceFreeItemAtThreshold(t *testing.T) {
	lines := []PriceLine{
		{UnitPrice: 30, Quantity: 2},
		{UnitPrice: 12, Quantity: 1},
	}
	coupon := &AppliedCoupon{Code: "COMBO3", Kind: models.CouponKindFreeItem, MinItemQuantity: 3}

	breakdown := CalculatePrice(lines, models.DeliveryTypeDelivery, 5, coupon)

	assert.Equal(t, 72.0, breakdown.Subtotal)
	assert.Equal(t, 12.0, breakdown.Discount)
	assert.Equal(t, 65.0, breakdown.Total)
}

func TestCalculatePriceFreeItemBelowThreshold(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 30, Quantity: 2}}
	coupon := &AppliedCoupon{Code: "COMBO3", Kind: models.CouponKindFreeItem, MinItemQuantity: 3}

	breakdown := CalculatePrice(lines, models.DeliveryTypeDelivery, 5, coupon)

	assert.Equal(t, 0.0, breakdown.Discount)
	assert.Equal(t, 65.0, breakdown.Total)
}

func TestCalculatePriceRoundsCurrency(t *testing.T) {
	lines := []PriceLine{{UnitPrice: 9.99, Quantity: 3}}

	breakdown := CalculatePrice(lines, models.DeliveryTypePickup, 0, nil)

	assert.Equal(t, 29.97, breakdown.Subtotal)
	assert.Equal(t, 29.97, breakdown.Total)
}

func TestCheapestUnitPrice(t *testing.T) {
	lines := []PriceLine{
		{UnitPrice: 30, Quantity: 1},
		{UnitPrice: 8.5, Quantity: 2},
		{UnitPrice: 22, Quantity: 1},
	}

	assert.Equal(t, 8.5, cheapestUnitPrice(lines))
	assert.Equal(t, 0.0, cheapestUnitPrice(nil))
}
