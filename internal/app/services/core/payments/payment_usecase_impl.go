package payments

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/app/services/shared/events"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type paymentUsecase struct {
	PaymentRepository contracts.PaymentRepository
	BookingRepository contracts.BookingRepository
	DoctorRepository  contracts.DoctorRepository
	OrderRepository   contracts.OrderRepository
	UserRepository    contracts.UserRepository
	PaymentGateway    contracts.PaymentGatewayService
	LockerService     contracts.LockerService
	EventPublisher    contracts.EventPublisher
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	bookingRepository contracts.BookingRepository,
	doctorRepository contracts.DoctorRepository,
	orderRepository contracts.OrderRepository,
	userRepository contracts.UserRepository,
	paymentGateway contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			PaymentRepository: paymentRepository,
			BookingRepository: bookingRepository,
			DoctorRepository:  doctorRepository,
			OrderRepository:   orderRepository,
			UserRepository:    userRepository,
			PaymentGateway:    paymentGateway,
			LockerService:     lockerService,
			EventPublisher:    eventPublisher,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

// CreatePayment opens a checkout for a booking. A redis lock keyed by the
// booking serializes double-submits, and an existing PENDING payment is
// returned as-is instead of opening a second gateway transaction.
func (uc *paymentUsecase) CreatePayment(ctx context.Context, userID string, request *requests.CreatePaymentRequest) (*responses.PaymentResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.CreatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingBookingIDKey, request.BookingID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	lockKey := fmt.Sprintf("payment:create:%s", request.BookingID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, 30*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrRedisLockNotAcquired(fmt.Errorf("payment creation already in progress for booking %s", request.BookingID))
	}
	defer uc.LockerService.Unlock(ctx, lockKey, lockValue)

	booking, err := uc.BookingRepository.FindByID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}
	if booking.UserID != userID {
		return nil, exceptions.ErrNotAuthorized(nil)
	}
	if booking.Status != models.BookingPendingPayment {
		return nil, exceptions.ErrBookingInvalidState(fmt.Errorf("booking is %s", booking.Status))
	}

	existing, err := uc.PaymentRepository.FindPendingByBookingID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ExpiresAt.After(time.Now()) {
		uc.Log.Info("paymentUsecase.CreatePayment returning existing pending payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, existing.GatewayOrderID),
		)
		return buildPaymentResponse(existing), nil
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, booking.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	user, err := uc.UserRepository.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, err
	}

	// The fee was snapshotted at booking time; a fee change on the doctor
	// profile since then does not reprice the checkout.
	amount := booking.ConsultationFee
	adminFee := amount * uc.InternalConfig.Payment.AdminFeeRate
	grossAmount := amount + adminFee
	expiresAt := time.Now().Add(time.Duration(uc.InternalConfig.Payment.ExpiryHours) * time.Hour)

	payment := &models.Payment{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		Amount:      amount,
		AdminFee:    adminFee,
		GrossAmount: grossAmount,
		Status:      models.PaymentPending,
		ExpiresAt:   expiresAt,
	}
	if existing != nil {
		// The stored checkout lapsed: keep the single PENDING row and swap a
		// fresh checkout into it rather than inserting a sibling.
		payment.ID = existing.ID
		payment.CreatedAt = existing.CreatedAt
	}
	payment.GatewayOrderID = utils.GenerateGatewayOrderID(uc.InternalConfig.Payment.OrderIDPrefix, payment.ID)

	input := &contracts.GatewayTransactionInput{
		OrderID:     payment.GatewayOrderID,
		GrossAmount: grossAmount,
		ItemName:    fmt.Sprintf("Consultation with %s", doctor.Name),
		ExpiryAt:    expiresAt,
	}
	if user != nil {
		input.CustomerName = user.Name
		input.CustomerEmail = user.Email
	}

	checkout, err := uc.PaymentGateway.CreateTransaction(ctx, input)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePayment gateway rejected checkout",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
			zap.Error(err),
		)
		return nil, err
	}
	payment.SnapToken = checkout.Token
	payment.RedirectURL = checkout.RedirectURL

	if existing != nil {
		if err := uc.PaymentGateway.ExpireTransaction(ctx, existing.GatewayOrderID); err != nil {
			uc.Log.Warn("paymentUsecase.CreatePayment failed to void stale checkout",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOrderIDKey, existing.GatewayOrderID),
				zap.Error(err),
			)
		}
		if err := uc.PaymentRepository.ReissuePayment(ctx, payment); err != nil {
			return nil, err
		}
	} else if err := uc.PaymentRepository.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return buildPaymentResponse(payment), nil
}

func (uc *paymentUsecase) GetPaymentsByUser(ctx context.Context, userID string, page, pageSize int) ([]responses.PaymentResponse, int, error) {
	offset := (page - 1) * pageSize
	payments, total, err := uc.PaymentRepository.FindByUserID(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, *buildPaymentResponse(&payments[i]))
	}
	return result, total, nil
}

// GetPaymentStatus re-checks the transaction at the gateway and, when the
// gateway reports a mapped outcome, folds it through the same reconciliation
// path the webhook uses before answering with the stored row.
func (uc *paymentUsecase) GetPaymentStatus(ctx context.Context, userID, gatewayOrderID string) (*responses.PaymentResponse, error) {
	payment, err := uc.fetchOwnedPayment(ctx, userID, gatewayOrderID)
	if err != nil {
		return nil, err
	}

	if !payment.Status.IsFinal() {
		status, err := uc.PaymentGateway.GetTransactionStatus(ctx, gatewayOrderID)
		if err != nil {
			uc.Log.Warn("paymentUsecase.GetPaymentStatus gateway status check failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingOrderIDKey, gatewayOrderID),
				zap.Error(err),
			)
		} else if result := MapBookingNotification(status.TransactionStatus, status.FraudStatus); result != nil {
			payment.PaymentType = status.PaymentType
			payment.TransactionID = status.TransactionID
			payment.TransactionStatus = status.TransactionStatus
			payment.TransactionTime = status.TransactionTime
			payment.RawResponse = notificationPayload(status)
			if len(status.VANumbers) > 0 {
				payment.VANumber = status.VANumbers[0].VANumber
				payment.Bank = status.VANumbers[0].Bank
			}
			if err := uc.PaymentRepository.ApplyReconciliation(ctx, payment, result); err != nil {
				return nil, err
			}
			payment, err = uc.PaymentRepository.FindByGatewayOrderID(ctx, gatewayOrderID)
			if err != nil {
				return nil, err
			}
		}
	}

	return buildPaymentResponse(payment), nil
}

func (uc *paymentUsecase) GetPaymentByBookingID(ctx context.Context, userID, bookingID string) (*responses.PaymentResponse, error) {
	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}
	if booking.UserID != userID {
		return nil, exceptions.ErrNotAuthorized(nil)
	}

	payment, err := uc.PaymentRepository.FindPendingByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil)
	}
	return buildPaymentResponse(payment), nil
}

// GetPaymentHistory merges booking and marketplace payments into one list,
// newest first. Source narrows to "booking" or "order"; status filters on the
// payment status. Pagination happens after the merge.
func (uc *paymentUsecase) GetPaymentHistory(ctx context.Context, userID, source, status string, page, pageSize int) ([]responses.PaymentHistoryItem, int, error) {
	fetch := page * pageSize

	var items []responses.PaymentHistoryItem
	if source == "" || source == "booking" {
		payments, _, err := uc.PaymentRepository.FindByUserID(ctx, userID, fetch, 0)
		if err != nil {
			return nil, 0, err
		}
		for i := range payments {
			p := &payments[i]
			items = append(items, responses.PaymentHistoryItem{
				ID:             p.ID,
				Source:         "booking",
				ReferenceID:    p.BookingID,
				GatewayOrderID: p.GatewayOrderID,
				GrossAmount:    p.GrossAmount,
				Status:         string(p.Status),
				PaymentType:    p.PaymentType,
				PaidAt:         p.PaidAt,
				CreatedAt:      p.CreatedAt,
			})
		}
	}
	if source == "" || source == "order" {
		orderPayments, err := uc.OrderRepository.FindPaymentsByUserID(ctx, userID, fetch, 0)
		if err != nil {
			return nil, 0, err
		}
		for i := range orderPayments {
			p := &orderPayments[i]
			items = append(items, responses.PaymentHistoryItem{
				ID:             p.ID,
				Source:         "order",
				ReferenceID:    p.OrderID,
				GatewayOrderID: p.GatewayOrderID,
				GrossAmount:    p.GrossAmount,
				Status:         string(p.Status),
				PaymentType:    p.PaymentType,
				PaidAt:         p.PaidAt,
				CreatedAt:      p.CreatedAt,
			})
		}
	}

	if status != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.Status == status {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := len(items)
	start := (page - 1) * pageSize
	if start >= total {
		return []responses.PaymentHistoryItem{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], total, nil
}

// CancelPayment voids a pending checkout at the gateway, marks the payment
// FAILED, and cancels the booking, all through the reconciliation path.
func (uc *paymentUsecase) CancelPayment(ctx context.Context, userID, gatewayOrderID string) error {
	payment, err := uc.fetchOwnedPayment(ctx, userID, gatewayOrderID)
	if err != nil {
		return err
	}

	if payment.Status != models.PaymentPending {
		return exceptions.ErrPaymentInvalidState(fmt.Errorf("payment is %s", payment.Status))
	}

	if err := uc.PaymentGateway.CancelTransaction(ctx, payment.GatewayOrderID); err != nil {
		return err
	}

	return uc.PaymentRepository.ApplyReconciliation(ctx, payment, &models.ReconciliationResult{
		PaymentStatus: models.PaymentFailed,
		BookingStatus: models.BookingCancelled,
	})
}

func (uc *paymentUsecase) fetchOwnedPayment(ctx context.Context, userID, gatewayOrderID string) (*models.Payment, error) {
	payment, err := uc.PaymentRepository.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil)
	}

	booking, err := uc.BookingRepository.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.UserID != userID {
		return nil, exceptions.ErrNotAuthorized(nil)
	}
	return payment, nil
}

// HandleNotification is the booking-payment webhook path. The signature is
// verified before anything is read from the body, then the gateway status is
// mapped and applied atomically. Replays are safe: the repository skips
// downgrades and finished payments.
func (uc *paymentUsecase) HandleNotification(ctx context.Context, request *requests.PaymentNotificationRequest) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.HandleNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String("transaction_status", request.TransactionStatus),
	)

	if !uc.PaymentGateway.VerifySignature(request.OrderID, request.StatusCode, request.GrossAmount, request.SignatureKey) {
		uc.Log.Warn("paymentUsecase.HandleNotification rejected invalid signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		)
		return exceptions.ErrWebhookSignatureInvalid(nil)
	}

	payment, err := uc.PaymentRepository.FindByGatewayOrderID(ctx, request.OrderID)
	if err != nil {
		return err
	}
	if payment == nil {
		return exceptions.ErrPaymentNotFound(nil)
	}

	result := MapBookingNotification(request.TransactionStatus, request.FraudStatus)
	if result == nil {
		uc.Log.Info("paymentUsecase.HandleNotification ignoring unmapped status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("transaction_status", request.TransactionStatus),
		)
		return nil
	}

	payment.PaymentType = request.PaymentType
	payment.TransactionID = request.TransactionID
	payment.TransactionStatus = request.TransactionStatus
	payment.TransactionTime = request.TransactionTime
	payment.RawResponse = notificationPayload(request)
	if len(request.VANumbers) > 0 {
		payment.VANumber = request.VANumbers[0].VANumber
		payment.Bank = request.VANumbers[0].Bank
	}

	if err := uc.PaymentRepository.ApplyReconciliation(ctx, payment, result); err != nil {
		return err
	}

	switch result.PaymentStatus {
	case models.PaymentPaid:
		uc.publishEvent(ctx, events.EventPaymentSettled, payment)
	case models.PaymentFailed, models.PaymentExpired:
		uc.publishEvent(ctx, events.EventPaymentFailed, payment)
	}

	return nil
}

// ExpireOverduePayments sweeps PENDING payments whose deadline passed,
// expiring each at the gateway and moving payment + booking to EXPIRED.
func (uc *paymentUsecase) ExpireOverduePayments(ctx context.Context, batchSize int) (int, error) {
	overdue, err := uc.PaymentRepository.FindOverduePending(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	result := &models.ReconciliationResult{
		PaymentStatus: models.PaymentExpired,
		BookingStatus: models.BookingExpired,
	}
	for i := range overdue {
		payment := &overdue[i]

		if err := uc.PaymentGateway.ExpireTransaction(ctx, payment.GatewayOrderID); err != nil {
			uc.Log.Warn("paymentUsecase.ExpireOverduePayments gateway expire failed",
				zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
				zap.Error(err),
			)
		}

		if err := uc.PaymentRepository.ApplyReconciliation(ctx, payment, result); err != nil {
			uc.Log.Error("paymentUsecase.ExpireOverduePayments reconciliation failed",
				zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
				zap.Error(err),
			)
			continue
		}
		expired++

		uc.publishEvent(ctx, events.EventBookingExpired, payment)
	}
	return expired, nil
}

// notificationPayload serializes the webhook body so reconciliation can keep
// the gateway's exact words on the payment row.
func notificationPayload(request *requests.PaymentNotificationRequest) string {
	raw, err := json.Marshal(request)
	if err != nil {
		return ""
	}
	return string(raw)
}

func buildPaymentResponse(payment *models.Payment) *responses.PaymentResponse {
	return &responses.PaymentResponse{
		ID:             payment.ID,
		BookingID:      payment.BookingID,
		GatewayOrderID: payment.GatewayOrderID,
		Amount:         payment.Amount,
		AdminFee:       payment.AdminFee,
		GrossAmount:    payment.GrossAmount,
		Status:         string(payment.Status),
		SnapToken:      payment.SnapToken,
		RedirectURL:    payment.RedirectURL,
		PaymentType:    payment.PaymentType,
		VANumber:       payment.VANumber,
		Bank:           payment.Bank,
		PaidAt:         payment.PaidAt,
		ExpiresAt:      payment.ExpiresAt,
		CreatedAt:      payment.CreatedAt,
	}
}

func (uc *paymentUsecase) publishEvent(ctx context.Context, event string, payment *models.Payment) {
	if err := uc.EventPublisher.Publish(ctx, event, payment); err != nil {
		uc.Log.Warn("paymentUsecase event publish failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event),
			zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
			zap.Error(err),
		)
	}
}
