package models

import "time"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingPending        BookingStatus = "PENDING"
	BookingConfirmed      BookingStatus = "CONFIRMED"
	BookingCompleted      BookingStatus = "COMPLETED"
	BookingCancelled      BookingStatus = "CANCELLED"
	BookingExpired        BookingStatus = "EXPIRED"
)

type ConsultationType string

const (
	ConsultationOnline  ConsultationType = "ONLINE"
	ConsultationOffline ConsultationType = "OFFLINE"
)

// bookingTransitions is the allowed forward edge set for booking statuses.
// CANCELLED and EXPIRED are terminal, as is COMPLETED.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPendingPayment: {BookingPending, BookingCancelled, BookingExpired},
	BookingPending:        {BookingConfirmed, BookingCancelled},
	BookingConfirmed:      {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether moving from the current status to target is
// a legal booking lifecycle step.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Booking carries the fee snapshotted at creation time; checkout prices from
// this value, not from the doctor's current fee.
type Booking struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	DoctorID           string           `json:"doctor_id"`
	ScheduleID         string           `json:"schedule_id"`
	BookingDate        time.Time        `json:"booking_date"`
	Type               ConsultationType `json:"type"`
	ConsultationFee    float64          `json:"consultation_fee"`
	Status             BookingStatus    `json:"status"`
	Complaint          string           `json:"complaint,omitempty"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
