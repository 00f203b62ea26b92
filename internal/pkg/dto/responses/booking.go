package responses

import "time"

type BookingResponse struct {
	ID                 string    `json:"id"`
	DoctorID           string    `json:"doctor_id"`
	DoctorName         string    `json:"doctor_name,omitempty"`
	ScheduleID         string    `json:"schedule_id"`
	BookingDate        string    `json:"booking_date"`
	DayName            string    `json:"day_name,omitempty"`
	StartTime          string    `json:"start_time,omitempty"`
	EndTime            string    `json:"end_time,omitempty"`
	Type               string    `json:"type"`
	ConsultationFee    float64   `json:"consultation_fee"`
	Status             string    `json:"status"`
	Complaint          string    `json:"complaint,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// AvailableSlotResponse is one schedule slot on a concrete date, flagged with
// whether a live booking already holds it.
type AvailableSlotResponse struct {
	ScheduleID string `json:"schedule_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	IsBooked   bool   `json:"is_booked"`
}

type ScheduleResponse struct {
	ID        string `json:"id"`
	DoctorID  string `json:"doctor_id"`
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type DoctorResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	ConsultationFee float64 `json:"consultation_fee"`
	IsAvailable     bool    `json:"is_available"`
	TotalPatients   int     `json:"total_patients"`
}
