package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPaymentPending = "payment_pending"
	OrderStatusPending        = "pending"
	OrderStatusPreparing      = "preparing"
	OrderStatusDelivering     = "delivering"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Delivery type constants
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusFailed   = "failed"
)

// orderTransitions maps each status to the statuses it may move to.
// payment_pending -> pending happens automatically on payment approval;
// every other transition is an admin action.
var orderTransitions = map[string][]string{
	OrderStatusPaymentPending: {OrderStatusPending, OrderStatusCancelled},
	OrderStatusPending:        {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusDelivering, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivering:     {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions are permitted.
func IsTerminalStatus(s string) bool {
	return len(orderTransitions[s]) == 0
}

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	Number string `gorm:"uniqueIndex;not null" json:"id"` // human-readable order id, also the payment external reference
	UserID *uint  `json:"user_id,omitempty"`              // nil for guest checkout
	User   *User  `json:"-" gorm:"foreignKey:UserID"`

	// Denormalized customer contact block
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	DeliveryType string `gorm:"not null" json:"delivery_type"` // delivery | pickup
	Status       string `gorm:"not null" json:"status"`

	// Delivery address block (empty for pickup)
	AddressStreet string `json:"address_street,omitempty"`
	AddressNumber string `json:"address_number,omitempty"`
	AddressCity   string `json:"address_city,omitempty"`
	AddressState  string `json:"address_state,omitempty"`

	// Payment block
	Subtotal          float64    `json:"subtotal"`
	CouponDiscount    float64    `json:"discount_coupon"`
	DeliveryFee       float64    `json:"delivery_fee"`
	Total             float64    `json:"total"`
	PaymentStatus     string     `json:"payment_status"`
	PaymentMethod     string     `json:"payment_method"` // "pix"
	CouponCode        string     `json:"coupon_code,omitempty"`
	CouponKind        string     `json:"coupon_kind,omitempty"`
	ProviderPaymentID int64      `gorm:"index" json:"provider_payment_id,omitempty"`
	PixQRCode         string     `gorm:"type:text" json:"pix_qr_code,omitempty"`
	PixCopyPaste      string     `gorm:"type:text" json:"pix_copy_paste,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`

	// StockApplied guards the one-time stock decrement performed on payment
	// confirmation. Flipped together with the payment_pending -> pending
	// status update so replayed webhooks never decrement twice.
	StockApplied bool `gorm:"default:false" json:"-"`

	Notes         string `json:"notes,omitempty"`
	ScheduledDate string `json:"scheduled_date"` // "2006-01-02"
	ScheduledTime string `json:"scheduled_time"` // "15:04"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrderItems    []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history" gorm:"foreignKey:OrderID"`
}

// OrderItem is the cart line snapshot frozen into the order.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	DishID    uint    `json:"dish_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Options   string  `gorm:"type:text" json:"options,omitempty"`
	Total     float64 `json:"total"`
}

// OrderStatusHistory records when an order entered a status. One row per
// status per order; re-entering a status never overwrites the original entry.
type OrderStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index:idx_order_status_history,unique" json:"order_id"`
	Status    string    `gorm:"index:idx_order_status_history,unique" json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
