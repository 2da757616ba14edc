package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusShipped))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))

	assert.False(t, StatusPending.CanTransitionTo(StatusShipped))
	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusShipped.CanTransitionTo(StatusShipped))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestDeliveryChargeFor(t *testing.T) {
	// At or below the threshold home delivery costs the flat fee.
	assert.Equal(t, 50.0, DeliveryChargeFor(360, DeliveryHome))
	assert.Equal(t, 50.0, DeliveryChargeFor(500, DeliveryHome))
	assert.Equal(t, 0.0, DeliveryChargeFor(500.01, DeliveryHome))
	assert.Equal(t, 0.0, DeliveryChargeFor(600, DeliveryHome))

	// Shop pickup is always free.
	assert.Equal(t, 0.0, DeliveryChargeFor(100, DeliveryPickup))
	assert.Equal(t, 0.0, DeliveryChargeFor(9999, DeliveryPickup))
}

func TestNewOrderID(t *testing.T) {
	now := time.UnixMilli(1717171717171)
	assert.Equal(t, "ARN-1717171717171", NewOrderID(now))
}

func TestFullyCovers(t *testing.T) {
	order := Order{Items: []OrderItem{{Name: "Fan"}, {Name: "Switch"}, {Name: "Wire"}}}

	assert.True(t, order.FullyCovers([]int{0, 1, 2}))
	assert.True(t, order.FullyCovers([]int{2, 0, 1}))

	assert.False(t, order.FullyCovers([]int{0, 1}))
	assert.False(t, order.FullyCovers([]int{0, 1, 1}))
	assert.False(t, order.FullyCovers([]int{0, 1, 3}))
	assert.False(t, order.FullyCovers(nil))
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{Entity: "order", From: "pending", To: "shipped"}
	assert.Equal(t, "invalid order transition: pending -> shipped", err.Error())
}
