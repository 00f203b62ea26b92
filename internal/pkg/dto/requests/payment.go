package requests

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// PaymentNotificationRequest is the webhook body the gateway posts. Field
// names follow the gateway's wire contract.
type PaymentNotificationRequest struct {
	OrderID           string     `json:"order_id" validate:"required"`
	StatusCode        string     `json:"status_code" validate:"required"`
	GrossAmount       string     `json:"gross_amount" validate:"required"`
	SignatureKey      string     `json:"signature_key" validate:"required"`
	TransactionStatus string     `json:"transaction_status" validate:"required"`
	FraudStatus       string     `json:"fraud_status"`
	PaymentType       string     `json:"payment_type"`
	TransactionID     string     `json:"transaction_id"`
	TransactionTime   string     `json:"transaction_time"`
	VANumbers         []VANumber `json:"va_numbers"`
}

type VANumber struct {
	Bank     string `json:"bank"`
	VANumber string `json:"va_number"`
}
