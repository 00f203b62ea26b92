package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusCanTransitionTo(t *testing.T) {
	t.Run("Pending Payment Transitions", func(t *testing.T) {
		assert.True(t, BookingPendingPayment.CanTransitionTo(BookingPending))
		assert.True(t, BookingPendingPayment.CanTransitionTo(BookingCancelled))
		assert.True(t, BookingPendingPayment.CanTransitionTo(BookingExpired))
		assert.False(t, BookingPendingPayment.CanTransitionTo(BookingConfirmed), "payment must land before confirmation")
		assert.False(t, BookingPendingPayment.CanTransitionTo(BookingCompleted))
	})

	t.Run("Pending Transitions", func(t *testing.T) {
		assert.True(t, BookingPending.CanTransitionTo(BookingConfirmed))
		assert.True(t, BookingPending.CanTransitionTo(BookingCancelled))
		assert.False(t, BookingPending.CanTransitionTo(BookingCompleted), "a booking must be confirmed before completion")
		assert.False(t, BookingPending.CanTransitionTo(BookingExpired), "a paid booking cannot expire")
	})

	t.Run("Confirmed Transitions", func(t *testing.T) {
		assert.True(t, BookingConfirmed.CanTransitionTo(BookingCompleted))
		assert.True(t, BookingConfirmed.CanTransitionTo(BookingCancelled))
		assert.False(t, BookingConfirmed.CanTransitionTo(BookingPending), "no going backwards")
	})

	t.Run("Terminal Statuses Allow Nothing", func(t *testing.T) {
		for _, status := range []BookingStatus{BookingCompleted, BookingCancelled, BookingExpired} {
			assert.True(t, status.IsTerminal(), "%s should be terminal", status)
			for _, target := range []BookingStatus{BookingPendingPayment, BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingExpired} {
				assert.False(t, status.CanTransitionTo(target), "%s -> %s should be rejected", status, target)
			}
		}
	})

	t.Run("Self Transition Is Rejected", func(t *testing.T) {
		assert.False(t, BookingPending.CanTransitionTo(BookingPending))
	})
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		assert.True(t, OrderPendingPayment.CanTransitionTo(OrderProcessing))
		assert.True(t, OrderProcessing.CanTransitionTo(OrderShipped))
		assert.True(t, OrderShipped.CanTransitionTo(OrderDelivered))
	})

	t.Run("Cancellation Window", func(t *testing.T) {
		assert.True(t, OrderPendingPayment.CanTransitionTo(OrderCancelled))
		assert.True(t, OrderProcessing.CanTransitionTo(OrderCancelled))
		assert.False(t, OrderShipped.CanTransitionTo(OrderCancelled), "shipped orders cannot be cancelled")
	})

	t.Run("Terminal Statuses Allow Nothing", func(t *testing.T) {
		for _, status := range []OrderStatus{OrderDelivered, OrderCancelled} {
			for _, target := range []OrderStatus{OrderPendingPayment, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
				assert.False(t, status.CanTransitionTo(target), "%s -> %s should be rejected", status, target)
			}
		}
	})
}

func TestPaymentStatusIsFinal(t *testing.T) {
	assert.False(t, PaymentPending.IsFinal())
	assert.False(t, PaymentPaid.IsFinal(), "a paid payment can still be refunded")
	assert.True(t, PaymentFailed.IsFinal())
	assert.True(t, PaymentExpired.IsFinal())
	assert.True(t, PaymentRefunded.IsFinal())
}
