package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pedrohsouza/marmitex/models"
)

// dryRunDB builds statements without touching a database.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=marmitex dbname=marmitex sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)
	return db
}

func validCoupon() *models.Coupon {
	return &models.Coupon{
		Code:          "SAVE10",
		Kind:          models.CouponKindDiscount,
		Value:         10,
		MinOrderValue: 20,
		UsageLimit:    100,
		UsedCount:     5,
		PerUserLimit:  2,
		Active:        true,
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCouponCode("  save10 "))
	assert.Equal(t, "FRETEGRATIS", NormalizeCouponCode("FreteGratis"))
	assert.Equal(t, "", NormalizeCouponCode("   "))
}

func TestCheckCouponRulesValid(t *testing.T) {
	err := CheckCouponRules(validCoupon(), true, 0, 50, 2, time.Now())
	assert.NoError(t, err)
}

func TestCheckCouponRulesInactive(t *testing.T) {
	coupon := validCoupon()
	coupon.Active = false

	err := CheckCouponRules(coupon, true, 0, 50, 2, time.Now())
	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestCheckCouponRulesExpired(t *testing.T) {
	coupon := validCoupon()
	past := time.Now().Add(-time.Hour)
	coupon.ExpiresAt = &past

	err := CheckCouponRules(coupon, true, 0, 50, 2, time.Now())
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCheckCouponRulesNoExpiryNeverExpires(t *testing.T) {
	coupon := validCoupon()
	coupon.ExpiresAt = nil

	err := CheckCouponRules(coupon, true, 0, 50, 2, time.Now().AddDate(10, 0, 0))
	assert.NoError(t, err)
}

func TestCheckCouponRulesGlobalLimitExhausted(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = 5
	coupon.UsedCount = 5

	// Exhaustion wins even when this user still has allowance left.
	err := CheckCouponRules(coupon, true, 0, 50, 2, time.Now())
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestCheckCouponRulesZeroLimitIsUnlimited(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = 0
	coupon.UsedCount = 10000

	err := CheckCouponRules(coupon, true, 0, 50, 2, time.Now())
	assert.NoError(t, err)
}

func TestCheckCouponRulesPerUserLimit(t *testing.T) {
	coupon := validCoupon()

	err := CheckCouponRules(coupon, true, 2, 50, 2, time.Now())
	assert.ErrorIs(t, err, ErrCouponUserLimit)
}

func TestCheckCouponRulesGuestSkipsPerUserLimit(t *testing.T) {
	coupon := validCoupon()

	err := CheckCouponRules(coupon, false, 99, 50, 2, time.Now())
	assert.NoError(t, err)
}

func TestCheckCouponRulesMinOrderValue(t *testing.T) {
	coupon := validCoupon()

	err := CheckCouponRules(coupon, true, 0, 19.99, 1, time.Now())
	assert.ErrorIs(t, err, ErrCouponMinOrder)
}

func TestCouponConsumeQueryGuardsGlobalLimit(t *testing.T) {
	db := dryRunDB(t)
	coupon := validCoupon()
	coupon.ID = 3

	stmt := couponConsumeQuery(db, coupon).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Statement
	assert.Contains(t, stmt.SQL.String(), "used_count < usage_limit")

	// Unlimited coupons move the counter unconditionally.
	coupon.UsageLimit = 0
	stmt = couponConsumeQuery(db, coupon).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Statement
	assert.NotContains(t, stmt.SQL.String(), "used_count < usage_limit")
}

func TestCouponUsageConsumeQueryGuardsPerUserLimit(t *testing.T) {
	db := dryRunDB(t)
	coupon := validCoupon() // PerUserLimit 2

	// The per-user counter carries the same in-query guard as the global one,
	// so two concurrent orders cannot both spend the user's last allowance.
	stmt := couponUsageConsumeQuery(db, coupon, 7).
		Updates(map[string]interface{}{
			"count":     gorm.Expr("count + ?", 1),
			"last_used": time.Now(),
		}).Statement
	assert.Contains(t, stmt.SQL.String(), "count < $")
	assert.Contains(t, stmt.Vars, coupon.PerUserLimit)

	coupon.PerUserLimit = 0
	stmt = couponUsageConsumeQuery(db, coupon, 7).
		Updates(map[string]interface{}{
			"count":     gorm.Expr("count + ?", 1),
			"last_used": time.Now(),
		}).Statement
	assert.NotContains(t, stmt.SQL.String(), "count < $")
}

func TestCheckCouponRulesMinItemQuantity(t *testing.T) {
	coupon := validCoupon()
	coupon.Kind = models.CouponKindFreeItem
	coupon.MinItemQuantity = 3

	err := CheckCouponRules(coupon, true, 0, 90, 2, time.Now())
	assert.ErrorIs(t, err, ErrCouponMinQuantity)

	err = CheckCouponRules(coupon, true, 0, 90, 3, time.Now())
	assert.NoError(t, err)
}
