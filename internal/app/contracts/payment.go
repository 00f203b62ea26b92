package contracts

import (
	"context"
	"time"

	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
)

type PaymentRepository interface {
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error)
	FindPendingByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Payment, int, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	// ReissuePayment refreshes an existing PENDING row with a new checkout
	// (gateway order id, token, amounts, deadline) in place.
	ReissuePayment(ctx context.Context, payment *models.Payment) error
	// ApplyReconciliation moves the payment and its booking to the given
	// statuses in one transaction. It is the only writer the webhook path
	// uses.
	ApplyReconciliation(ctx context.Context, payment *models.Payment, result *models.ReconciliationResult) error
	UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error
	FindOverduePending(ctx context.Context, limit int) ([]models.Payment, error)
}

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, userID string, request *requests.CreatePaymentRequest) (*responses.PaymentResponse, error)
	GetPaymentsByUser(ctx context.Context, userID string, page, pageSize int) ([]responses.PaymentResponse, int, error)
	// GetPaymentStatus re-checks the transaction at the gateway and folds any
	// mapped outcome through the reconciliation path before answering.
	GetPaymentStatus(ctx context.Context, userID, gatewayOrderID string) (*responses.PaymentResponse, error)
	GetPaymentByBookingID(ctx context.Context, userID, bookingID string) (*responses.PaymentResponse, error)
	// GetPaymentHistory merges booking and marketplace payments, newest
	// first. Source is "booking", "order", or empty for both.
	GetPaymentHistory(ctx context.Context, userID, source, status string, page, pageSize int) ([]responses.PaymentHistoryItem, int, error)
	CancelPayment(ctx context.Context, userID, gatewayOrderID string) error
	HandleNotification(ctx context.Context, request *requests.PaymentNotificationRequest) error
	// ExpireOverduePayments sweeps PENDING payments past their deadline and
	// expires their bookings. Returns how many were expired.
	ExpireOverduePayments(ctx context.Context, batchSize int) (int, error)
}

// GatewayTransactionInput is what the gateway needs to open a checkout.
type GatewayTransactionInput struct {
	OrderID       string
	GrossAmount   float64
	CustomerName  string
	CustomerEmail string
	ItemName      string
	ExpiryAt      time.Time
}

// GatewayTransactionOutput carries the checkout handle back to the caller.
type GatewayTransactionOutput struct {
	Token       string
	RedirectURL string
}

type PaymentGatewayService interface {
	CreateTransaction(ctx context.Context, input *GatewayTransactionInput) (*GatewayTransactionOutput, error)
	GetTransactionStatus(ctx context.Context, orderID string) (*requests.PaymentNotificationRequest, error)
	CancelTransaction(ctx context.Context, orderID string) error
	ExpireTransaction(ctx context.Context, orderID string) error
	// VerifySignature checks the SHA-512 notification signature over
	// order_id + status_code + gross_amount + server key.
	VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool
}
