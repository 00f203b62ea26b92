package constvars

const (
	ResponseSuccess = "Success"

	BookingCreatedMessage      = "Booking created successfully"
	BookingConfirmedMessage    = "Booking confirmed successfully"
	BookingCompletedMessage    = "Booking completed successfully"
	BookingCancelledMessage    = "Booking cancelled successfully"
	PaymentCreatedMessage      = "Payment created successfully. Please complete the payment."
	PaymentCancelledMessage    = "Payment cancelled successfully"
	NotificationHandledMessage = "Payment notification handled successfully"
	OrderCreatedMessage        = "Order created successfully. Please complete payment."
	OrderCancelledMessage      = "Order cancelled successfully"
	ScheduleCreatedMessage     = "Schedule created successfully"
)
