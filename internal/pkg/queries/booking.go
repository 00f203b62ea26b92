package queries

const (
	GetBookingByID = `
		SELECT id, user_id, doctor_id, schedule_id, booking_date, type, consultation_fee, status, COALESCE(complaint, ''), COALESCE(cancellation_reason, ''), created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	GetBookingsByUserID = `
		SELECT id, user_id, doctor_id, schedule_id, booking_date, type, consultation_fee, status, COALESCE(complaint, ''), COALESCE(cancellation_reason, ''), created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountBookingsByUserID = `
		SELECT COUNT(*) FROM bookings WHERE user_id = $1
	`

	GetBookingsByDoctorID = `
		SELECT id, user_id, doctor_id, schedule_id, booking_date, type, consultation_fee, status, COALESCE(complaint, ''), COALESCE(cancellation_reason, ''), created_at, updated_at
		FROM bookings
		WHERE doctor_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`

	CountBookingsByDoctorID = `
		SELECT COUNT(*) FROM bookings WHERE doctor_id = $1
	`

	// GetAllBookings is the admin listing. Empty filter arguments match
	// every row.
	GetAllBookings = `
		SELECT id, user_id, doctor_id, schedule_id, booking_date, type, consultation_fee, status, COALESCE(complaint, ''), COALESCE(cancellation_reason, ''), created_at, updated_at
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR doctor_id::text = $2)
		  AND ($3 = '' OR booking_date = $3::date)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	CountAllBookings = `
		SELECT COUNT(*)
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR doctor_id::text = $2)
		  AND ($3 = '' OR booking_date = $3::date)
	`

	// GetBookedScheduleIDsByDate feeds the availability view: schedules that
	// already hold a live booking on the given date.
	GetBookedScheduleIDsByDate = `
		SELECT schedule_id
		FROM bookings
		WHERE doctor_id = $1
		  AND booking_date = $2
		  AND status <> 'CANCELLED'
	`

	// InsertBooking relies on the partial unique index over
	// (schedule_id, booking_date) WHERE status <> 'CANCELLED'; a violation
	// surfaces as SQLSTATE 23505 and means the slot is taken.
	InsertBooking = `
		INSERT INTO bookings (id, user_id, doctor_id, schedule_id, booking_date, type, consultation_fee, status, complaint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NOW(), NOW())
	`

	UpdateBookingStatus = `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	UpdateBookingCancellation = `
		UPDATE bookings
		SET status = 'CANCELLED', cancellation_reason = NULLIF($1, ''), updated_at = NOW()
		WHERE id = $2
	`

	GetBookingStatusForUpdate = `
		SELECT status FROM bookings WHERE id = $1 FOR UPDATE
	`
)
