package queries

const (
	GetScheduleByID = `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM doctor_schedules
		WHERE id = $1
	`

	GetSchedulesByDoctorID = `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM doctor_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time
	`

	GetActiveSchedulesByDoctorAndDay = `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM doctor_schedules
		WHERE doctor_id = $1 AND day_of_week = $2 AND is_active = TRUE
		ORDER BY start_time
	`

	InsertSchedule = `
		INSERT INTO doctor_schedules (id, doctor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`

	CountOverlappingSchedules = `
		SELECT COUNT(*)
		FROM doctor_schedules
		WHERE doctor_id = $1
		  AND day_of_week = $2
		  AND start_time < $4
		  AND end_time > $3
	`

	UpdateScheduleActive = `
		UPDATE doctor_schedules
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
	`
)
