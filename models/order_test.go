package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionAllowed(t *testing.T) {
	allowed := [][2]string{
		{OrderPending, OrderConfirmed},
		{OrderPending, OrderCancelled},
		{OrderConfirmed, OrderShipped},
		{OrderConfirmed, OrderCancelled},
		{OrderShipped, OrderDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc[0], tc[1]), "%s -> %s should be allowed", tc[0], tc[1])
	}
}

func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	states := []string{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}

	allowed := map[[2]string]bool{
		{OrderPending, OrderConfirmed}:   true,
		{OrderPending, OrderCancelled}:   true,
		{OrderConfirmed, OrderShipped}:   true,
		{OrderConfirmed, OrderCancelled}: true,
		{OrderShipped, OrderDelivered}:   true,
	}

	for _, from := range states {
		for _, to := range states {
			if allowed[[2]string{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestCanTransitionUnknownStates(t *testing.T) {
	assert.False(t, CanTransition("refunded", OrderPending))
	assert.False(t, CanTransition(OrderDelivered, "archived"))
}
