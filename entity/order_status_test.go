package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderPlaced:    {OrderAccepted, OrderCancelled},
		OrderAccepted:  {OrderPreparing, OrderCancelled},
		OrderPreparing: {OrderDelivered, OrderCancelled},
		OrderDelivered: {},
		OrderCancelled: {},
	}
	all := []OrderStatus{OrderPlaced, OrderAccepted, OrderPreparing, OrderDelivered, OrderCancelled}

	for from, nexts := range allowed {
		legal := map[OrderStatus]bool{}
		for _, n := range nexts {
			legal[n] = true
		}
		for _, to := range all {
			assert.Equal(t, legal[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPlaced, OrderAccepted, OrderPreparing, OrderDelivered, OrderCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusCancellable(t *testing.T) {
	assert.True(t, OrderPlaced.Cancellable())
	assert.True(t, OrderAccepted.Cancellable())
	assert.False(t, OrderPreparing.Cancellable())
	assert.False(t, OrderDelivered.Cancellable())
	assert.False(t, OrderCancelled.Cancellable())
}
