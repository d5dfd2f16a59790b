package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pedrohsouza/marmitex/models"
)

func TestValidateEmail(t *testing.T) {
	ok, _ := ValidateEmail("maria@example.com")
	assert.True(t, ok)

	ok, msg := ValidateEmail("")
	assert.False(t, ok)
	assert.Equal(t, "Email is required", msg)

	ok, _ = ValidateEmail("not-an-email")
	assert.False(t, ok)
}

func TestValidatePhone(t *testing.T) {
	ok, _ := ValidatePhone("+55 (11) 91234-5678")
	assert.True(t, ok)

	ok, _ = ValidatePhone("1234567")
	assert.False(t, ok)

	ok, _ = ValidatePhone("12345678901234567890")
	assert.False(t, ok)
}

func TestValidateCouponKind(t *testing.T) {
	assert.NoError(t, ValidateCouponKind(models.CouponKindDiscount, 10, 0))
	assert.Error(t, ValidateCouponKind(models.CouponKindDiscount, 0, 0))

	assert.NoError(t, ValidateCouponKind(models.CouponKindFreeDelivery, 0, 0))

	assert.NoError(t, ValidateCouponKind(models.CouponKindFreeItem, 0, 3))
	assert.Error(t, ValidateCouponKind(models.CouponKindFreeItem, 0, 0))

	assert.Error(t, ValidateCouponKind("cashback", 10, 0))
}

func TestValidateSchedule(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateSchedule("2025-06-15", "12:30", now))
	assert.NoError(t, ValidateSchedule("2025-06-16", "", now))

	assert.Error(t, ValidateSchedule("", "12:30", now))
	assert.Error(t, ValidateSchedule("15/06/2025", "12:30", now))
	assert.Error(t, ValidateSchedule("2025-06-15", "noon", now))
	assert.Error(t, ValidateSchedule("2025-06-14", "12:30", now))
}

func TestValidateScheduleSameDayPastTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.Error(t, ValidateSchedule("2025-06-15", "09:00", now))
	assert.NoError(t, ValidateSchedule("2025-06-15", "10:30", now))
	// The morning slot is still valid for tomorrow.
	assert.NoError(t, ValidateSchedule("2025-06-16", "09:00", now))
	// A date-only schedule for today stays valid all day.
	assert.NoError(t, ValidateSchedule("2025-06-15", "", now))
}
