package models

import "time"

type Doctor struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	ConsultationFee float64   `json:"consultation_fee"`
	IsAvailable     bool      `json:"is_available"`
	TotalPatients   int       `json:"total_patients"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
