package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{
		OrderStatusPaymentPending,
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusDelivering,
		OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestCanTransitionHappyPath(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPaymentPending, OrderStatusPending))
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusPreparing))
	assert.True(t, CanTransition(OrderStatusPreparing, OrderStatusDelivering))
	assert.True(t, CanTransition(OrderStatusDelivering, OrderStatusDelivered))
}

func TestCanTransitionPickupSkipsDelivering(t *testing.T) {
	// Pickup orders go straight from preparing to delivered.
	assert.True(t, CanTransition(OrderStatusPreparing, OrderStatusDelivered))
}

func TestCanTransitionCancellation(t *testing.T) {
	for _, from := range []string{
		OrderStatusPaymentPending,
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusDelivering,
	} {
		assert.True(t, CanTransition(from, OrderStatusCancelled), from)
	}
}

func TestCanTransitionRejectsSkipsAndReversals(t *testing.T) {
	assert.False(t, CanTransition(OrderStatusPaymentPending, OrderStatusPreparing))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusDelivered))
	assert.False(t, CanTransition(OrderStatusPreparing, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusDelivering, OrderStatusPreparing))
}

func TestTerminalStatusesAllowNothing(t *testing.T) {
	assert.True(t, IsTerminalStatus(OrderStatusDelivered))
	assert.True(t, IsTerminalStatus(OrderStatusCancelled))

	for _, to := range []string{
		OrderStatusPaymentPending,
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusDelivering,
		OrderStatusCancelled,
	} {
		assert.False(t, CanTransition(OrderStatusDelivered, to), to)
		assert.False(t, CanTransition(OrderStatusCancelled, to), to)
	}
}

func TestCanTransitionSameStatusIsNotATransition(t *testing.T) {
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusPending))
}
