package models

import "time"

// DoctorSchedule is a recurring weekly slot definition. DayOfWeek uses Sunday
// as 0 through Saturday as 6. StartTime and EndTime are HH:MM wall-clock
// strings in the clinic's timezone.
type DoctorSchedule struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
