package responses

import "time"

type PaymentResponse struct {
	ID             string     `json:"id"`
	BookingID      string     `json:"booking_id"`
	GatewayOrderID string     `json:"gateway_order_id"`
	Amount         float64    `json:"amount"`
	AdminFee       float64    `json:"admin_fee"`
	GrossAmount    float64    `json:"gross_amount"`
	Status         string     `json:"status"`
	SnapToken      string     `json:"snap_token,omitempty"`
	RedirectURL    string     `json:"redirect_url,omitempty"`
	PaymentType    string     `json:"payment_type,omitempty"`
	VANumber       string     `json:"va_number,omitempty"`
	Bank           string     `json:"bank,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	ExpiresAt      time.Time  `json:"expires_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// PaymentHistoryItem is one row of the merged booking + marketplace payment
// history.
type PaymentHistoryItem struct {
	ID             string     `json:"id"`
	Source         string     `json:"source"`
	ReferenceID    string     `json:"reference_id"`
	GatewayOrderID string     `json:"gateway_order_id"`
	GrossAmount    float64    `json:"gross_amount"`
	Status         string     `json:"status"`
	PaymentType    string     `json:"payment_type,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
