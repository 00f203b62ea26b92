package queries

const (
	GetOrderByID = `
		SELECT id, order_number, user_id, subtotal, admin_fee, shipping_cost, COALESCE(courier, ''), total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	GetOrdersByUserID = `
		SELECT id, order_number, user_id, subtotal, admin_fee, shipping_cost, COALESCE(courier, ''), total_amount, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountOrdersByUserID = `
		SELECT COUNT(*) FROM orders WHERE user_id = $1
	`

	GetOrderItemsByOrderID = `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`

	InsertOrder = `
		INSERT INTO orders (id, order_number, user_id, subtotal, admin_fee, shipping_cost, courier, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, NOW(), NOW())
	`

	InsertOrderItem = `
		INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	UpdateOrderStatus = `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	GetOrderStatusForUpdate = `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`

	InsertOrderPayment = `
		INSERT INTO order_payments (id, order_id, gateway_order_id, gross_amount, status,
		                            snap_token, redirect_url, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NOW(), NOW())
	`

	GetOrderPaymentByGatewayOrderID = `
		SELECT id, order_id, gateway_order_id, gross_amount, status,
		       COALESCE(snap_token, ''), COALESCE(redirect_url, ''), COALESCE(payment_type, ''),
		       COALESCE(transaction_id, ''), COALESCE(transaction_status, ''), COALESCE(transaction_time, ''),
		       paid_at, expires_at, created_at, updated_at
		FROM order_payments
		WHERE gateway_order_id = $1
	`

	GetPendingOrderPaymentByOrderID = `
		SELECT id, order_id, gateway_order_id, gross_amount, status,
		       COALESCE(snap_token, ''), COALESCE(redirect_url, ''), COALESCE(payment_type, ''),
		       COALESCE(transaction_id, ''), COALESCE(transaction_status, ''), COALESCE(transaction_time, ''),
		       paid_at, expires_at, created_at, updated_at
		FROM order_payments
		WHERE order_id = $1 AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1
	`

	GetOrderPaymentsByUserID = `
		SELECT op.id, op.order_id, op.gateway_order_id, op.gross_amount, op.status,
		       COALESCE(op.snap_token, ''), COALESCE(op.redirect_url, ''), COALESCE(op.payment_type, ''),
		       COALESCE(op.transaction_id, ''), COALESCE(op.transaction_status, ''), COALESCE(op.transaction_time, ''),
		       op.paid_at, op.expires_at, op.created_at, op.updated_at
		FROM order_payments op
		JOIN orders o ON o.id = op.order_id
		WHERE o.user_id = $1
		ORDER BY op.created_at DESC
		LIMIT $2 OFFSET $3
	`

	UpdateOrderPaymentReconciliation = `
		UPDATE order_payments
		SET status = $1,
		    payment_type = NULLIF($2, ''),
		    transaction_id = NULLIF($3, ''),
		    transaction_status = NULLIF($4, ''),
		    transaction_time = NULLIF($5, ''),
		    raw_response = COALESCE(NULLIF($6, '')::jsonb, raw_response),
		    paid_at = $7,
		    updated_at = NOW()
		WHERE id = $8
	`

	GetOrderPaymentStatusForUpdate = `
		SELECT status FROM order_payments WHERE id = $1 FOR UPDATE
	`

	GetOverduePendingOrderPayments = `
		SELECT id, order_id, gateway_order_id
		FROM order_payments
		WHERE status = 'PENDING' AND expires_at < NOW()
		LIMIT $1
	`
)
