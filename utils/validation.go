package utils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pedrohsouza/marmitex/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePhone checks that a phone number has a plausible length
func ValidatePhone(phone string) (bool, string) {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 8 || digits > 15 {
		return false, "Phone number must have between 8 and 15 digits"
	}
	return true, ""
}

// ValidateCouponKind checks the benefit kind and its kind-specific fields
func ValidateCouponKind(kind string, value float64, minItemQuantity int) error {
	switch kind {
	case models.CouponKindDiscount:
		if value <= 0 {
			return fmt.Errorf("discount coupons require a positive value")
		}
	case models.CouponKindFreeDelivery:
		// no extra fields
	case models.CouponKindFreeItem:
		if minItemQuantity < 1 {
			return fmt.Errorf("free_item coupons require a minimum item quantity of at least 1")
		}
	default:
		return fmt.Errorf("kind must be one of: %s, %s, %s",
			models.CouponKindDiscount, models.CouponKindFreeDelivery, models.CouponKindFreeItem)
	}
	return nil
}

// ValidateSchedule checks the scheduled delivery date and time formats and
// rejects dates in the past.
func ValidateSchedule(date, timeOfDay string, now time.Time) error {
	if date == "" {
		return fmt.Errorf("scheduled date is required")
	}
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return fmt.Errorf("scheduled date must be in YYYY-MM-DD format")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return fmt.Errorf("scheduled date cannot be in the past")
	}
	if timeOfDay != "" {
		clock, err := time.Parse("15:04", timeOfDay)
		if err != nil {
			return fmt.Errorf("scheduled time must be in HH:MM format")
		}
		scheduled := time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if scheduled.Before(now) {
			return fmt.Errorf("scheduled time cannot be in the past")
		}
	}
	return nil
}
