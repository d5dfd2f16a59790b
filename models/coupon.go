package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon benefit kinds.
const (
	CouponKindDiscount     = "discount"      // flat currency reduction
	CouponKindFreeDelivery = "free_delivery" // zero delivery fee
	CouponKindFreeItem     = "free_item"     // cheapest line free above a quantity threshold
)

type Coupon struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"uniqueIndex" json:"code"` // stored uppercase
	Kind            string         `gorm:"not null" json:"kind"`
	Value           float64        `json:"value"` // discount amount, only meaningful for kind "discount"
	MinOrderValue   float64        `json:"min_order_value"`
	MinItemQuantity int            `json:"min_item_quantity"` // only meaningful for kind "free_item"
	UsageLimit      int            `json:"usage_limit"`
	UsedCount       int            `json:"used_count"`
	PerUserLimit    int            `json:"per_user_limit"`
	Active          bool           `gorm:"default:true" json:"active"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponUsage counts how many orders a given user has placed with a coupon.
type CouponUsage struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index:idx_coupon_usage_user_coupon,unique" json:"user_id"`
	CouponID uint      `gorm:"index:idx_coupon_usage_user_coupon,unique" json:"coupon_id"`
	Count    int       `gorm:"default:0" json:"count"`
	LastUsed time.Time `json:"last_used"`
}

// IsExpiredAt reports whether the coupon's expiry has passed. A coupon with
// no expiry date never expires.
func (cp *Coupon) IsExpiredAt(now time.Time) bool {
	return cp.ExpiresAt != nil && cp.ExpiresAt.Before(now)
}
