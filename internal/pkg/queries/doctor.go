package queries

const (
	GetDoctorByID = `
		SELECT id, user_id, name, specialization, consultation_fee, is_available, total_patients, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`

	GetDoctorByUserID = `
		SELECT id, user_id, name, specialization, consultation_fee, is_available, total_patients, created_at, updated_at
		FROM doctors
		WHERE user_id = $1
	`

	GetAllDoctors = `
		SELECT id, user_id, name, specialization, consultation_fee, is_available, total_patients, created_at, updated_at
		FROM doctors
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	CountDoctors = `
		SELECT COUNT(*) FROM doctors
	`

	IncrementDoctorTotalPatientsByBookingID = `
		UPDATE doctors
		SET total_patients = total_patients + 1, updated_at = NOW()
		WHERE id = (SELECT doctor_id FROM bookings WHERE id = $1)
	`
)
