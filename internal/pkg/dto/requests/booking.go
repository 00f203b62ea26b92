package requests

// CreateBookingRequest declares the consultation fee up front; the declared
// fee is snapshotted onto the booking and is what checkout later charges,
// regardless of fee changes on the doctor profile in between.
type CreateBookingRequest struct {
	DoctorID        string  `json:"doctor_id" validate:"required,uuid"`
	ScheduleID      string  `json:"schedule_id" validate:"required,uuid"`
	BookingDate     string  `json:"booking_date" validate:"required,calendar_date"`
	Type            string  `json:"type" validate:"required,oneof=ONLINE OFFLINE"`
	ConsultationFee float64 `json:"consultation_fee" validate:"required,gt=0"`
	Complaint       string  `json:"complaint" validate:"omitempty,max=1000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// BookingListFilter carries the admin listing query parameters. Empty fields
// are not filtered on.
type BookingListFilter struct {
	Status      string `json:"status" validate:"omitempty,oneof=PENDING_PAYMENT PENDING CONFIRMED COMPLETED CANCELLED EXPIRED"`
	DoctorID    string `json:"doctor_id" validate:"omitempty,uuid"`
	BookingDate string `json:"booking_date" validate:"omitempty,calendar_date"`
}

type CreateScheduleRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
}

type UpdateScheduleStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
