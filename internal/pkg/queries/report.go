package queries

const (
	// GetIncomeReport aggregates income per day over a closed date window.
	// Only consultations that actually happened count: the booking must be
	// COMPLETED and its payment PAID. An empty doctor filter matches every
	// doctor.
	GetIncomeReport = `
		SELECT TO_CHAR(p.paid_at::date, 'YYYY-MM-DD') AS day,
		       COUNT(*) AS booking_count,
		       COALESCE(SUM(p.gross_amount), 0) AS gross_income,
		       COALESCE(SUM(p.admin_fee), 0) AS admin_fees,
		       COALESCE(SUM(p.amount), 0) AS net_income
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE p.status = 'PAID'
		  AND b.status = 'COMPLETED'
		  AND p.paid_at::date BETWEEN $1 AND $2
		  AND ($3 = '' OR b.doctor_id::text = $3)
		GROUP BY p.paid_at::date
		ORDER BY p.paid_at::date
	`

	GetOrderIncomeReport = `
		SELECT TO_CHAR(op.paid_at::date, 'YYYY-MM-DD') AS day,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(op.gross_amount), 0) AS order_income
		FROM order_payments op
		WHERE op.status = 'PAID'
		  AND op.paid_at::date BETWEEN $1 AND $2
		GROUP BY op.paid_at::date
		ORDER BY op.paid_at::date
	`

	// GetPatientReport counts consultations per doctor under the same rule as
	// the income report: COMPLETED bookings backed by a PAID payment.
	GetPatientReport = `
		SELECT d.id,
		       d.name,
		       COUNT(b.id) AS completed_bookings,
		       COUNT(DISTINCT b.user_id) AS unique_patients
		FROM doctors d
		LEFT JOIN bookings b
		  ON b.doctor_id = d.id
		 AND b.status = 'COMPLETED'
		 AND b.booking_date BETWEEN $1 AND $2
		 AND EXISTS (
		       SELECT 1 FROM payments p
		       WHERE p.booking_id = b.id AND p.status = 'PAID'
		 )
		WHERE ($3 = '' OR d.id::text = $3)
		GROUP BY d.id, d.name
		ORDER BY completed_bookings DESC, d.name
	`
)
