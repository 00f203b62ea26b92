package queries

const (
	GetPaymentByID = `
		SELECT id, booking_id, gateway_order_id, amount, admin_fee, gross_amount, status,
		       COALESCE(snap_token, ''), COALESCE(redirect_url, ''), COALESCE(payment_type, ''),
		       COALESCE(transaction_id, ''), COALESCE(transaction_status, ''), COALESCE(transaction_time, ''),
		       COALESCE(va_number, ''), COALESCE(bank, ''),
		       paid_at, expires_at, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	GetPaymentByGatewayOrderID = `
		SELECT id, booking_id, gateway_order_id, amount, admin_fee, gross_amount, status,
		       COALESCE(snap_token, ''), COALESCE(redirect_url, ''), COALESCE(payment_type, ''),
		       COALESCE(transaction_id, ''), COALESCE(transaction_status, ''), COALESCE(transaction_time, ''),
		       COALESCE(va_number, ''), COALESCE(bank, ''),
		       paid_at, expires_at, created_at, updated_at
		FROM payments
		WHERE gateway_order_id = $1
	`

	GetPendingPaymentByBookingID = `
		SELECT id, booking_id, gateway_order_id, amount, admin_fee, gross_amount, status,
		       COALESCE(snap_token, ''), COALESCE(redirect_url, ''), COALESCE(payment_type, ''),
		       COALESCE(transaction_id, ''), COALESCE(transaction_status, ''), COALESCE(transaction_time, ''),
		       COALESCE(va_number, ''), COALESCE(bank, ''),
		       paid_at, expires_at, created_at, updated_at
		FROM payments
		WHERE booking_id = $1 AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1
	`

	GetPaymentsByUserID = `
		SELECT p.id, p.booking_id, p.gateway_order_id, p.amount, p.admin_fee, p.gross_amount, p.status,
		       COALESCE(p.snap_token, ''), COALESCE(p.redirect_url, ''), COALESCE(p.payment_type, ''),
		       COALESCE(p.transaction_id, ''), COALESCE(p.transaction_status, ''), COALESCE(p.transaction_time, ''),
		       COALESCE(p.va_number, ''), COALESCE(p.bank, ''),
		       p.paid_at, p.expires_at, p.created_at, p.updated_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountPaymentsByUserID = `
		SELECT COUNT(*)
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
	`

	InsertPayment = `
		INSERT INTO payments (id, booking_id, gateway_order_id, amount, admin_fee, gross_amount, status,
		                      snap_token, redirect_url, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, NOW(), NOW())
	`

	// UpdatePaymentReconciliation stamps gateway facts alongside the new
	// status inside the reconciliation transaction. The raw notification body
	// lands in raw_response for audit; a write that carries no payload keeps
	// the previous one.
	UpdatePaymentReconciliation = `
		UPDATE payments
		SET status = $1,
		    payment_type = NULLIF($2, ''),
		    transaction_id = NULLIF($3, ''),
		    transaction_status = NULLIF($4, ''),
		    transaction_time = NULLIF($5, ''),
		    raw_response = COALESCE(NULLIF($6, '')::jsonb, raw_response),
		    va_number = NULLIF($7, ''),
		    bank = NULLIF($8, ''),
		    paid_at = $9,
		    updated_at = NOW()
		WHERE id = $10
	`

	// ReissuePayment swaps a fresh checkout into the single PENDING row a
	// booking may hold, instead of inserting a sibling. The status guard keeps
	// a concurrent settlement from being clobbered.
	ReissuePayment = `
		UPDATE payments
		SET gateway_order_id = $1,
		    amount = $2,
		    admin_fee = $3,
		    gross_amount = $4,
		    snap_token = NULLIF($5, ''),
		    redirect_url = NULLIF($6, ''),
		    expires_at = $7,
		    updated_at = NOW()
		WHERE id = $8 AND status = 'PENDING'
	`

	UpdatePaymentStatus = `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	GetPaymentStatusForUpdate = `
		SELECT status FROM payments WHERE id = $1 FOR UPDATE
	`

	// GetOverduePendingPayments feeds the expiry sweep.
	GetOverduePendingPayments = `
		SELECT id, booking_id, gateway_order_id
		FROM payments
		WHERE status = 'PENDING' AND expires_at < NOW()
		LIMIT $1
	`
)
