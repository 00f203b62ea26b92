package payments

import (
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/constvars"
)

// SkipStatusOverwrite reports whether an incoming payment status must leave
// the stored row untouched. Finished payments only ever accept a refund, and
// once a payment is PAID nothing but a refund may touch it again: a late
// pending notification cannot downgrade it and a replayed settlement cannot
// restamp paid_at. Pending-to-pending writes still pass, because the first
// pending notification is what carries the payer's channel details.
func SkipStatusOverwrite(current, incoming models.PaymentStatus) bool {
	if current.IsFinal() && incoming != models.PaymentRefunded {
		return true
	}
	if current == models.PaymentPaid && incoming != models.PaymentRefunded {
		return true
	}
	return false
}

// ShouldAdvanceOrder reports whether the order row actually moves along a
// legal edge. This is also the only moment reserved stock may be returned, so
// a replayed cancellation restocks exactly once.
func ShouldAdvanceOrder(current, target models.OrderStatus) bool {
	return current != target && current.CanTransitionTo(target)
}

// ShouldAdvanceBooking is the booking-side counterpart of ShouldAdvanceOrder.
func ShouldAdvanceBooking(current, target models.BookingStatus) bool {
	return current != target && current.CanTransitionTo(target)
}

// MapBookingNotification translates a gateway transaction status (plus fraud
// status for card captures) into the payment and booking statuses to apply.
// A nil result means the notification carries nothing actionable.
func MapBookingNotification(transactionStatus, fraudStatus string) *models.ReconciliationResult {
	switch transactionStatus {
	case constvars.GatewayStatusCapture:
		if fraudStatus == constvars.GatewayFraudChallenge {
			return &models.ReconciliationResult{
				PaymentStatus: models.PaymentPending,
				BookingStatus: models.BookingPendingPayment,
			}
		}
		if fraudStatus == constvars.GatewayFraudAccept || fraudStatus == "" {
			return &models.ReconciliationResult{
				PaymentStatus: models.PaymentPaid,
				BookingStatus: models.BookingPending,
				Settled:       true,
			}
		}
		return nil
	case constvars.GatewayStatusSettlement:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentPaid,
			BookingStatus: models.BookingPending,
			Settled:       true,
		}
	case constvars.GatewayStatusPending:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentPending,
			BookingStatus: models.BookingPendingPayment,
		}
	case constvars.GatewayStatusDeny, constvars.GatewayStatusCancel:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentFailed,
			BookingStatus: models.BookingCancelled,
		}
	case constvars.GatewayStatusExpire:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentExpired,
			BookingStatus: models.BookingExpired,
		}
	case constvars.GatewayStatusRefund, constvars.GatewayStatusPartialRefund:
		// A refund flips the payment only; the booking keeps whatever state
		// the clinic put it in.
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentRefunded,
		}
	}
	return nil
}

// MapOrderNotification is the marketplace variant: settlement moves the order
// to PROCESSING, and failures and expiries cancel it and return its stock.
func MapOrderNotification(transactionStatus, fraudStatus string) *models.ReconciliationResult {
	switch transactionStatus {
	case constvars.GatewayStatusCapture:
		if fraudStatus == constvars.GatewayFraudChallenge {
			return &models.ReconciliationResult{
				PaymentStatus: models.PaymentPending,
			}
		}
		if fraudStatus == constvars.GatewayFraudAccept || fraudStatus == "" {
			return &models.ReconciliationResult{
				PaymentStatus: models.PaymentPaid,
				OrderStatus:   models.OrderProcessing,
				Settled:       true,
			}
		}
		return nil
	case constvars.GatewayStatusSettlement:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentPaid,
			OrderStatus:   models.OrderProcessing,
			Settled:       true,
		}
	case constvars.GatewayStatusPending:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentPending,
		}
	case constvars.GatewayStatusDeny, constvars.GatewayStatusCancel:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentFailed,
			OrderStatus:   models.OrderCancelled,
			RestoreStock:  true,
		}
	case constvars.GatewayStatusExpire:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentExpired,
			OrderStatus:   models.OrderCancelled,
			RestoreStock:  true,
		}
	case constvars.GatewayStatusRefund, constvars.GatewayStatusPartialRefund:
		return &models.ReconciliationResult{
			PaymentStatus: models.PaymentRefunded,
		}
	}
	return nil
}
