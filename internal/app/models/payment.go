package models

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentExpired  PaymentStatus = "EXPIRED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Payment rows carry the gateway-facing order id so webhook notifications can
// be matched back. Amount is the consultation fee, AdminFee the platform cut;
// GrossAmount is the sum the payer is charged. TransactionStatus,
// TransactionTime, and RawResponse mirror the gateway's last notification
// verbatim for audit.
type Payment struct {
	ID                string        `json:"id"`
	BookingID         string        `json:"booking_id"`
	GatewayOrderID    string        `json:"gateway_order_id"`
	Amount            float64       `json:"amount"`
	AdminFee          float64       `json:"admin_fee"`
	GrossAmount       float64       `json:"gross_amount"`
	Status            PaymentStatus `json:"status"`
	SnapToken         string        `json:"snap_token,omitempty"`
	RedirectURL       string        `json:"redirect_url,omitempty"`
	PaymentType       string        `json:"payment_type,omitempty"`
	TransactionID     string        `json:"transaction_id,omitempty"`
	TransactionStatus string        `json:"transaction_status,omitempty"`
	TransactionTime   string        `json:"transaction_time,omitempty"`
	RawResponse       string        `json:"-"`
	VANumber          string        `json:"va_number,omitempty"`
	Bank              string        `json:"bank,omitempty"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	ExpiresAt         time.Time     `json:"expires_at"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// IsFinal reports whether a payment can no longer change status except for a
// refund after settlement.
func (s PaymentStatus) IsFinal() bool {
	switch s {
	case PaymentFailed, PaymentExpired, PaymentRefunded:
		return true
	}
	return false
}
