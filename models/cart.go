package models

import (
	"time"
)

// CartItem stores a snapshot of the dish name and unit price taken at
// add-to-cart time. Snapshots are kept for display and are not re-priced at
// checkout; only stock is re-verified when the order is placed.
//
// OwnerKey identifies the cart owner: "user:<id>" for authenticated users or
// "guest:<uuid>" for session-backed guest carts.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerKey  string    `gorm:"index;not null" json:"-"`
	UserID    *uint     `json:"user_id,omitempty"`
	DishID    uint      `gorm:"not null" json:"dish_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Options   string    `gorm:"type:text" json:"options,omitempty"` // JSON-encoded option map
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveCoupon tracks the coupon currently applied to a cart. Applying a
// coupon consumes no allowance; counters move only when an order is placed.
type ActiveCoupon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerKey  string    `gorm:"uniqueIndex" json:"-"` // one active coupon per cart
	CouponID  uint      `json:"coupon_id"`
	Code      string    `json:"code"`
	AppliedAt time.Time `json:"applied_at"`
}
