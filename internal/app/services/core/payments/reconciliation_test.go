package payments

import (
	"medika-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipStatusOverwrite(t *testing.T) {
	t.Run("Replayed Settlement Leaves Paid Row Alone", func(t *testing.T) {
		assert.True(t, SkipStatusOverwrite(models.PaymentPaid, models.PaymentPaid), "a second settlement must not restamp paid_at")
	})

	t.Run("Late Pending Cannot Downgrade Paid", func(t *testing.T) {
		assert.True(t, SkipStatusOverwrite(models.PaymentPaid, models.PaymentPending))
	})

	t.Run("Refund May Touch A Paid Payment", func(t *testing.T) {
		assert.False(t, SkipStatusOverwrite(models.PaymentPaid, models.PaymentRefunded))
	})

	t.Run("Pending Notification Updates Pending Row", func(t *testing.T) {
		assert.False(t, SkipStatusOverwrite(models.PaymentPending, models.PaymentPending), "the first pending webhook carries the channel details")
		assert.False(t, SkipStatusOverwrite(models.PaymentPending, models.PaymentPaid))
	})

	t.Run("Finished Payments Accept Only Refund", func(t *testing.T) {
		for _, current := range []models.PaymentStatus{models.PaymentFailed, models.PaymentExpired, models.PaymentRefunded} {
			assert.True(t, SkipStatusOverwrite(current, models.PaymentPaid), "%s must not be revived by a settlement", current)
			assert.True(t, SkipStatusOverwrite(current, models.PaymentPending), "%s must not be revived by a pending", current)
		}
		assert.False(t, SkipStatusOverwrite(models.PaymentFailed, models.PaymentRefunded))
		assert.False(t, SkipStatusOverwrite(models.PaymentExpired, models.PaymentRefunded))
	})
}

func TestShouldAdvanceOrder(t *testing.T) {
	t.Run("Settlement Advances A Fresh Order", func(t *testing.T) {
		assert.True(t, ShouldAdvanceOrder(models.OrderPendingPayment, models.OrderProcessing))
	})

	t.Run("Replayed Cancellation Is A No Op", func(t *testing.T) {
		assert.False(t, ShouldAdvanceOrder(models.OrderCancelled, models.OrderCancelled), "stock is restored only when the row actually moves")
	})

	t.Run("Shipped Order Cannot Be Cancelled By The Gateway", func(t *testing.T) {
		assert.False(t, ShouldAdvanceOrder(models.OrderShipped, models.OrderCancelled))
	})
}

func TestShouldAdvanceBooking(t *testing.T) {
	t.Run("Settlement Advances A Fresh Booking", func(t *testing.T) {
		assert.True(t, ShouldAdvanceBooking(models.BookingPendingPayment, models.BookingPending))
	})

	t.Run("Replayed Settlement Is A No Op", func(t *testing.T) {
		assert.False(t, ShouldAdvanceBooking(models.BookingPending, models.BookingPending))
	})

	t.Run("Completed Booking Stays Completed", func(t *testing.T) {
		assert.False(t, ShouldAdvanceBooking(models.BookingCompleted, models.BookingCancelled))
	})
}

func TestMapBookingNotification(t *testing.T) {
	t.Run("Settlement Marks Payment Paid", func(t *testing.T) {
		result := MapBookingNotification("settlement", "")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentPaid, result.PaymentStatus)
		assert.Equal(t, models.BookingPending, result.BookingStatus)
		assert.True(t, result.Settled, "settlement should count the patient")
	})

	t.Run("Capture Accept Marks Payment Paid", func(t *testing.T) {
		for _, fraudStatus := range []string{"accept", ""} {
			result := MapBookingNotification("capture", fraudStatus)

			assert.NotNil(t, result)
			assert.Equal(t, models.PaymentPaid, result.PaymentStatus)
			assert.Equal(t, models.BookingPending, result.BookingStatus)
			assert.True(t, result.Settled)
		}
	})

	t.Run("Capture Challenge Stays Pending", func(t *testing.T) {
		result := MapBookingNotification("capture", "challenge")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentPending, result.PaymentStatus)
		assert.Equal(t, models.BookingPendingPayment, result.BookingStatus)
		assert.False(t, result.Settled, "challenged capture must not settle")
	})

	t.Run("Capture Deny Is Not Actionable", func(t *testing.T) {
		result := MapBookingNotification("capture", "deny")

		assert.Nil(t, result, "denied fraud status on capture should be ignored")
	})

	t.Run("Pending Stays Pending", func(t *testing.T) {
		result := MapBookingNotification("pending", "")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentPending, result.PaymentStatus)
		assert.Equal(t, models.BookingPendingPayment, result.BookingStatus)
	})

	t.Run("Deny And Cancel Fail The Payment", func(t *testing.T) {
		for _, transactionStatus := range []string{"deny", "cancel"} {
			result := MapBookingNotification(transactionStatus, "")

			assert.NotNil(t, result)
			assert.Equal(t, models.PaymentFailed, result.PaymentStatus)
			assert.Equal(t, models.BookingCancelled, result.BookingStatus)
			assert.False(t, result.Settled)
		}
	})

	t.Run("Expire Expires Payment And Booking", func(t *testing.T) {
		result := MapBookingNotification("expire", "")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentExpired, result.PaymentStatus)
		assert.Equal(t, models.BookingExpired, result.BookingStatus)
	})

	t.Run("Refund Touches Only The Payment", func(t *testing.T) {
		for _, transactionStatus := range []string{"refund", "partial_refund"} {
			result := MapBookingNotification(transactionStatus, "")

			assert.NotNil(t, result)
			assert.Equal(t, models.PaymentRefunded, result.PaymentStatus)
			assert.Empty(t, result.BookingStatus, "refund must leave the booking alone")
		}
	})

	t.Run("Unknown Status Is Ignored", func(t *testing.T) {
		assert.Nil(t, MapBookingNotification("authorize", ""))
		assert.Nil(t, MapBookingNotification("", ""))
	})
}

func TestMapOrderNotification(t *testing.T) {
	t.Run("Settlement Moves Order To Processing", func(t *testing.T) {
		result := MapOrderNotification("settlement", "")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentPaid, result.PaymentStatus)
		assert.Equal(t, models.OrderProcessing, result.OrderStatus)
		assert.True(t, result.Settled)
		assert.False(t, result.RestoreStock)
	})

	t.Run("Capture Accept Moves Order To Processing", func(t *testing.T) {
		result := MapOrderNotification("capture", "accept")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentPaid, result.PaymentStatus)
		assert.Equal(t, models.OrderProcessing, result.OrderStatus)
		assert.True(t, result.Settled)
	})

	t.Run("Capture Challenge Stays Pending", func(t *testing.T) {
		result := MapOrderNotification("capture", "challenge")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentPending, result.PaymentStatus)
		assert.Empty(t, result.OrderStatus)
		assert.False(t, result.RestoreStock)
	})

	t.Run("Deny And Cancel Restore Stock", func(t *testing.T) {
		for _, transactionStatus := range []string{"deny", "cancel"} {
			result := MapOrderNotification(transactionStatus, "")

			assert.NotNil(t, result)
			assert.Equal(t, models.PaymentFailed, result.PaymentStatus)
			assert.Equal(t, models.OrderCancelled, result.OrderStatus)
			assert.True(t, result.RestoreStock, "a dead payment should return reserved stock")
		}
	})

	t.Run("Expire Restores Stock", func(t *testing.T) {
		result := MapOrderNotification("expire", "")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentExpired, result.PaymentStatus)
		assert.Equal(t, models.OrderCancelled, result.OrderStatus)
		assert.True(t, result.RestoreStock)
	})

	t.Run("Refund Touches Only The Payment", func(t *testing.T) {
		result := MapOrderNotification("refund", "")

		assert.NotNil(t, result)
		assert.Equal(t, models.PaymentRefunded, result.PaymentStatus)
		assert.Empty(t, result.OrderStatus)
		assert.False(t, result.RestoreStock)
	})

	t.Run("Unknown Status Is Ignored", func(t *testing.T) {
		assert.Nil(t, MapOrderNotification("authorize", ""))
	})
}
