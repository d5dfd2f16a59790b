package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/pedrohsouza/marmitex/models"
	"gorm.io/gorm"
)

// Coupon evaluation errors. Validation failures are surfaced synchronously to
// the customer and block submission.
var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInactive    = errors.New("coupon is inactive")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrCouponUserLimit   = errors.New("coupon already used the maximum number of times by this user")
	ErrCouponMinOrder    = errors.New("cart total is below the coupon minimum order value")
	ErrCouponMinQuantity = errors.New("cart quantity is below the coupon minimum item quantity")
)

// NormalizeCouponCode trims and uppercases a coupon code before lookup.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckCouponRules applies the coupon usability rules to an already-loaded
// coupon. userUsageCount is the caller's prior successful uses; it is only
// checked when the user is known (hasUser).
func CheckCouponRules(coupon *models.Coupon, hasUser bool, userUsageCount int, subtotal float64, totalQuantity int, now time.Time) error {
	if !coupon.Active {
		return ErrCouponInactive
	}
	if coupon.IsExpiredAt(now) {
		return ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return ErrCouponExhausted
	}
	if hasUser && coupon.PerUserLimit > 0 && userUsageCount >= coupon.PerUserLimit {
		return ErrCouponUserLimit
	}
	if subtotal < coupon.MinOrderValue {
		return ErrCouponMinOrder
	}
	if coupon.Kind == models.CouponKindFreeItem && totalQuantity < coupon.MinItemQuantity {
		return ErrCouponMinQuantity
	}
	return nil
}

// EvaluateCoupon looks up a coupon by code and decides whether the given cart
// may use it. Evaluation has no side effects; usage counters move only inside
// the order-placement transaction.
func EvaluateCoupon(db *gorm.DB, code string, userID *uint, subtotal float64, totalQuantity int, now time.Time) (*AppliedCoupon, error) {
	normalized := NormalizeCouponCode(code)
	if normalized == "" {
		return nil, ErrCouponNotFound
	}

	var coupon models.Coupon
	if err := db.Where("code = ?", normalized).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	userUsageCount := 0
	if userID != nil {
		var usage models.CouponUsage
		if err := db.Where("user_id = ? AND coupon_id = ?", *userID, coupon.ID).First(&usage).Error; err == nil {
			userUsageCount = usage.Count
		}
	}

	if err := CheckCouponRules(&coupon, userID != nil, userUsageCount, subtotal, totalQuantity, now); err != nil {
		return nil, err
	}

	return &AppliedCoupon{
		ID:              coupon.ID,
		Code:            coupon.Code,
		Kind:            coupon.Kind,
		Value:           coupon.Value,
		MinItemQuantity: coupon.MinItemQuantity,
	}, nil
}

// couponConsumeQuery targets the coupon row for the global counter increment.
// While a usage limit is set, the counter only moves under the limit, so a
// concurrent order cannot push it past.
func couponConsumeQuery(tx *gorm.DB, coupon *models.Coupon) *gorm.DB {
	query := tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID)
	if coupon.UsageLimit > 0 {
		query = query.Where("used_count < usage_limit")
	}
	return query
}

// couponUsageConsumeQuery targets the per-user usage row with the same guard
// shape as the global counter, against the coupon's per-user limit.
func couponUsageConsumeQuery(tx *gorm.DB, coupon *models.Coupon, usageID uint) *gorm.DB {
	query := tx.Model(&models.CouponUsage{}).Where("id = ?", usageID)
	if coupon.PerUserLimit > 0 {
		query = query.Where("count < ?", coupon.PerUserLimit)
	}
	return query
}

// ConsumeCouponUsage increments the coupon counters inside an order placement
// transaction. Both counters only move while still under their limit; a zero
// rows-affected result means a concurrent order used up the allowance first
// and the placement must roll back.
func ConsumeCouponUsage(tx *gorm.DB, couponID uint, userID *uint, now time.Time) error {
	var coupon models.Coupon
	if err := tx.First(&coupon, couponID).Error; err != nil {
		return err
	}

	result := couponConsumeQuery(tx, &coupon).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCouponExhausted
	}

	if userID != nil {
		usage := models.CouponUsage{UserID: *userID, CouponID: couponID}
		if err := tx.Where("user_id = ? AND coupon_id = ?", *userID, couponID).
			FirstOrCreate(&usage).Error; err != nil {
			return err
		}
		result := couponUsageConsumeQuery(tx, &coupon, usage.ID).
			Updates(map[string]interface{}{
				"count":     gorm.Expr("count + ?", 1),
				"last_used": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCouponUserLimit
		}
	}

	return nil
}
