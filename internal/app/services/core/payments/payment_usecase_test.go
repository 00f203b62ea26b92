package payments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePaymentRepository struct {
	payments     map[string]*models.Payment
	bookings     map[string]*models.Booking
	createCalls  int
	reissueCalls int
}

func newFakePaymentRepository(bookings map[string]*models.Booking) *fakePaymentRepository {
	return &fakePaymentRepository{
		payments: make(map[string]*models.Payment),
		bookings: bookings,
	}
}

func (r *fakePaymentRepository) FindByID(_ context.Context, paymentID string) (*models.Payment, error) {
	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, nil
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentRepository) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.Payment, error) {
	for _, payment := range r.payments {
		if payment.GatewayOrderID == gatewayOrderID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepository) FindPendingByBookingID(_ context.Context, bookingID string) (*models.Payment, error) {
	for _, payment := range r.payments {
		if payment.BookingID == bookingID && payment.Status == models.PaymentPending {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepository) FindByUserID(_ context.Context, _ string, _, _ int) ([]models.Payment, int, error) {
	return nil, 0, nil
}

func (r *fakePaymentRepository) CreatePayment(_ context.Context, payment *models.Payment) error {
	r.createCalls++
	for _, stored := range r.payments {
		if stored.BookingID == payment.BookingID && stored.Status == models.PaymentPending {
			// Mirrors the partial unique index on pending rows.
			return exceptions.ErrPostgresDBInsertData(fmt.Errorf("duplicate pending payment for booking %s", payment.BookingID))
		}
	}
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepository) ReissuePayment(_ context.Context, payment *models.Payment) error {
	r.reissueCalls++
	stored, ok := r.payments[payment.ID]
	if !ok || stored.Status != models.PaymentPending {
		return exceptions.ErrPaymentInvalidState(fmt.Errorf("payment %s is no longer pending", payment.ID))
	}
	stored.GatewayOrderID = payment.GatewayOrderID
	stored.Amount = payment.Amount
	stored.AdminFee = payment.AdminFee
	stored.GrossAmount = payment.GrossAmount
	stored.SnapToken = payment.SnapToken
	stored.RedirectURL = payment.RedirectURL
	stored.ExpiresAt = payment.ExpiresAt
	return nil
}

func (r *fakePaymentRepository) ApplyReconciliation(_ context.Context, payment *models.Payment, result *models.ReconciliationResult) error {
	stored, ok := r.payments[payment.ID]
	if !ok {
		return exceptions.ErrPaymentNotFound(nil)
	}
	if SkipStatusOverwrite(stored.Status, result.PaymentStatus) {
		return nil
	}
	stored.Status = result.PaymentStatus
	stored.PaymentType = payment.PaymentType
	stored.TransactionID = payment.TransactionID
	stored.TransactionStatus = payment.TransactionStatus
	stored.TransactionTime = payment.TransactionTime
	stored.RawResponse = payment.RawResponse
	if result.Settled && stored.PaidAt == nil {
		now := time.Now()
		stored.PaidAt = &now
	}
	if result.BookingStatus != "" {
		if booking, ok := r.bookings[stored.BookingID]; ok && ShouldAdvanceBooking(booking.Status, result.BookingStatus) {
			booking.Status = result.BookingStatus
		}
	}
	return nil
}

func (r *fakePaymentRepository) UpdateStatus(_ context.Context, paymentID string, status models.PaymentStatus) error {
	r.payments[paymentID].Status = status
	return nil
}

func (r *fakePaymentRepository) FindOverduePending(_ context.Context, limit int) ([]models.Payment, error) {
	var result []models.Payment
	for _, payment := range r.payments {
		if payment.Status == models.PaymentPending && payment.ExpiresAt.Before(time.Now()) {
			result = append(result, *payment)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *fakePaymentRepository) pendingCount(bookingID string) int {
	count := 0
	for _, payment := range r.payments {
		if payment.BookingID == bookingID && payment.Status == models.PaymentPending {
			count++
		}
	}
	return count
}

type fakeBookingStore struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingStore) FindByID(_ context.Context, bookingID string) (*models.Booking, error) {
	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingStore) FindByUserID(_ context.Context, _ string, _, _ int) ([]models.Booking, int, error) {
	return nil, 0, nil
}

func (r *fakeBookingStore) FindByDoctorID(_ context.Context, _ string, _, _ int) ([]models.Booking, int, error) {
	return nil, 0, nil
}

func (r *fakeBookingStore) FindAll(_ context.Context, _ *requests.BookingListFilter, _, _ int) ([]models.Booking, int, error) {
	return nil, 0, nil
}

func (r *fakeBookingStore) FindBookedScheduleIDs(_ context.Context, _ string, _ time.Time) ([]string, error) {
	return nil, nil
}

func (r *fakeBookingStore) CreateBooking(_ context.Context, booking *models.Booking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingStore) UpdateStatus(_ context.Context, bookingID string, status models.BookingStatus) error {
	r.bookings[bookingID].Status = status
	return nil
}

func (r *fakeBookingStore) CancelWithReason(_ context.Context, bookingID, reason string) error {
	r.bookings[bookingID].Status = models.BookingCancelled
	r.bookings[bookingID].CancellationReason = reason
	return nil
}

func (r *fakeBookingStore) CompleteAndCountPatient(_ context.Context, bookingID string) error {
	r.bookings[bookingID].Status = models.BookingCompleted
	return nil
}

type fakeDoctorStore struct {
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorStore) FindByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	copied := *doctor
	return &copied, nil
}

func (r *fakeDoctorStore) FindByUserID(_ context.Context, userID string) (*models.Doctor, error) {
	for _, doctor := range r.doctors {
		if doctor.UserID == userID {
			copied := *doctor
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorStore) FindAll(_ context.Context, _, _ int) ([]models.Doctor, int, error) {
	return nil, 0, nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (r *fakeUserStore) FindByID(_ context.Context, userID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type fakeOrderStore struct{}

func (r *fakeOrderStore) FindByID(_ context.Context, _ string) (*models.Order, error) {
	return nil, nil
}

func (r *fakeOrderStore) FindByUserID(_ context.Context, _ string, _, _ int) ([]models.Order, int, error) {
	return nil, 0, nil
}

func (r *fakeOrderStore) FindItemsByOrderID(_ context.Context, _ string) ([]models.OrderItem, error) {
	return nil, nil
}

func (r *fakeOrderStore) CreateWithItems(_ context.Context, _ *models.Order, _ *models.OrderPayment) error {
	return nil
}

func (r *fakeOrderStore) FindPaymentByGatewayOrderID(_ context.Context, _ string) (*models.OrderPayment, error) {
	return nil, nil
}

func (r *fakeOrderStore) FindPaymentsByUserID(_ context.Context, _ string, _, _ int) ([]models.OrderPayment, error) {
	return nil, nil
}

func (r *fakeOrderStore) FindPendingPaymentByOrderID(_ context.Context, _ string) (*models.OrderPayment, error) {
	return nil, nil
}

func (r *fakeOrderStore) ApplyReconciliation(_ context.Context, _ *models.OrderPayment, _ *models.ReconciliationResult) error {
	return nil
}

func (r *fakeOrderStore) CancelWithRestock(_ context.Context, _ string) error {
	return nil
}

func (r *fakeOrderStore) FindOverduePendingPayments(_ context.Context, _ int) ([]models.OrderPayment, error) {
	return nil, nil
}

type fakeGateway struct {
	createCalls     int
	lastInput       *contracts.GatewayTransactionInput
	expiredOrders   []string
	cancelledOrders []string
	rejectSignature bool
}

func (g *fakeGateway) CreateTransaction(_ context.Context, input *contracts.GatewayTransactionInput) (*contracts.GatewayTransactionOutput, error) {
	g.createCalls++
	g.lastInput = input
	return &contracts.GatewayTransactionOutput{
		Token:       fmt.Sprintf("snap-token-%d", g.createCalls),
		RedirectURL: fmt.Sprintf("https://checkout.example/%d", g.createCalls),
	}, nil
}

func (g *fakeGateway) GetTransactionStatus(_ context.Context, orderID string) (*requests.PaymentNotificationRequest, error) {
	return &requests.PaymentNotificationRequest{OrderID: orderID, TransactionStatus: "pending"}, nil
}

func (g *fakeGateway) CancelTransaction(_ context.Context, orderID string) error {
	g.cancelledOrders = append(g.cancelledOrders, orderID)
	return nil
}

func (g *fakeGateway) ExpireTransaction(_ context.Context, orderID string) error {
	g.expiredOrders = append(g.expiredOrders, orderID)
	return nil
}

func (g *fakeGateway) VerifySignature(_, _, _, _ string) bool {
	return !g.rejectSignature
}

type fakeLocker struct {
	held bool
}

func (l *fakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	if l.held {
		return false, "", nil
	}
	return true, "lock-token", nil
}

func (l *fakeLocker) Unlock(_ context.Context, _, _ string) error { return nil }

func (l *fakeLocker) Refresh(_ context.Context, _, _ string, _ time.Duration) error { return nil }

type fakeEventPublisher struct {
	published []string
}

func (p *fakeEventPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.published = append(p.published, routingKey)
	return nil
}

func (p *fakeEventPublisher) Close() error { return nil }

type paymentFixture struct {
	usecase   *paymentUsecase
	payments  *fakePaymentRepository
	gateway   *fakeGateway
	locker    *fakeLocker
	publisher *fakeEventPublisher
	bookingID string
	userID    string
	doctorID  string
}

func newPaymentFixture() *paymentFixture {
	userID := uuid.NewString()
	doctorID := uuid.NewString()
	bookingID := uuid.NewString()

	bookings := map[string]*models.Booking{
		bookingID: {
			ID:              bookingID,
			UserID:          userID,
			DoctorID:        doctorID,
			ScheduleID:      uuid.NewString(),
			BookingDate:     time.Now().AddDate(0, 0, 7),
			Type:            models.ConsultationOnline,
			ConsultationFee: 150000,
			Status:          models.BookingPendingPayment,
		},
	}

	paymentRepo := newFakePaymentRepository(bookings)
	gateway := &fakeGateway{}
	locker := &fakeLocker{}
	publisher := &fakeEventPublisher{}

	internalConfig := &config.InternalConfig{}
	internalConfig.Payment.OrderIDPrefix = "MEDIKA"
	internalConfig.Payment.AdminFeeRate = 0.05
	internalConfig.Payment.ExpiryHours = 24

	usecase := &paymentUsecase{
		PaymentRepository: paymentRepo,
		BookingRepository: &fakeBookingStore{bookings: bookings},
		DoctorRepository: &fakeDoctorStore{doctors: map[string]*models.Doctor{
			doctorID: {
				ID:              doctorID,
				UserID:          uuid.NewString(),
				Name:            "dr. Example",
				ConsultationFee: 999999,
				IsAvailable:     true,
			},
		}},
		OrderRepository: &fakeOrderStore{},
		UserRepository: &fakeUserStore{users: map[string]*models.User{
			userID: {
				ID:    userID,
				Name:  "Rina Wijaya",
				Email: "rina@example.com",
			},
		}},
		PaymentGateway: gateway,
		LockerService:  locker,
		EventPublisher: publisher,
		InternalConfig: internalConfig,
		Log:            zap.NewNop(),
	}

	return &paymentFixture{
		usecase:   usecase,
		payments:  paymentRepo,
		gateway:   gateway,
		locker:    locker,
		publisher: publisher,
		bookingID: bookingID,
		userID:    userID,
		doctorID:  doctorID,
	}
}

func (f *paymentFixture) seedPendingPayment(expiresAt time.Time) *models.Payment {
	payment := &models.Payment{
		ID:             uuid.NewString(),
		BookingID:      f.bookingID,
		GatewayOrderID: "MEDIKA-stale-checkout",
		Amount:         150000,
		AdminFee:       7500,
		GrossAmount:    157500,
		Status:         models.PaymentPending,
		SnapToken:      "snap-token-stale",
		ExpiresAt:      expiresAt,
		CreatedAt:      time.Now().Add(-time.Hour),
	}
	f.payments.payments[payment.ID] = payment
	return payment
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens A Checkout Priced From The Booking Fee", func(t *testing.T) {
		fixture := newPaymentFixture()

		response, err := fixture.usecase.CreatePayment(ctx, fixture.userID, &requests.CreatePaymentRequest{BookingID: fixture.bookingID})

		assert.NoError(t, err)
		assert.Equal(t, float64(150000), response.Amount, "the fee snapshotted on the booking prices the checkout, not the doctor's current fee")
		assert.Equal(t, float64(7500), response.AdminFee)
		assert.Equal(t, float64(157500), response.GrossAmount)
		assert.Equal(t, "snap-token-1", response.SnapToken)
		assert.Equal(t, 1, fixture.payments.createCalls)
	})

	t.Run("Hands Customer Details To The Gateway", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.CreatePayment(ctx, fixture.userID, &requests.CreatePaymentRequest{BookingID: fixture.bookingID})

		assert.NoError(t, err)
		assert.Equal(t, "Rina Wijaya", fixture.gateway.lastInput.CustomerName)
		assert.Equal(t, "rina@example.com", fixture.gateway.lastInput.CustomerEmail)
	})

	t.Run("Second Submit Returns The Same Token", func(t *testing.T) {
		fixture := newPaymentFixture()
		request := &requests.CreatePaymentRequest{BookingID: fixture.bookingID}

		first, err := fixture.usecase.CreatePayment(ctx, fixture.userID, request)
		assert.NoError(t, err)
		second, err := fixture.usecase.CreatePayment(ctx, fixture.userID, request)
		assert.NoError(t, err)

		assert.Equal(t, first.SnapToken, second.SnapToken)
		assert.Equal(t, first.GatewayOrderID, second.GatewayOrderID)
		assert.Equal(t, 1, fixture.gateway.createCalls, "a live checkout must be reused, not reopened")
		assert.Equal(t, 1, fixture.payments.pendingCount(fixture.bookingID))
	})

	t.Run("Lapsed Checkout Is Reissued In Place", func(t *testing.T) {
		fixture := newPaymentFixture()
		stale := fixture.seedPendingPayment(time.Now().Add(-time.Hour))

		response, err := fixture.usecase.CreatePayment(ctx, fixture.userID, &requests.CreatePaymentRequest{BookingID: fixture.bookingID})

		assert.NoError(t, err)
		assert.Equal(t, stale.ID, response.ID, "the single pending row is refreshed, never duplicated")
		assert.NotEqual(t, "snap-token-stale", response.SnapToken)
		assert.NotEqual(t, "MEDIKA-stale-checkout", response.GatewayOrderID)
		assert.Equal(t, 1, fixture.payments.reissueCalls)
		assert.Equal(t, 0, fixture.payments.createCalls)
		assert.Equal(t, 1, fixture.payments.pendingCount(fixture.bookingID))
		assert.Contains(t, fixture.gateway.expiredOrders, "MEDIKA-stale-checkout", "the stale gateway transaction should be voided")
	})

	t.Run("Someone Else's Booking", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.CreatePayment(ctx, uuid.NewString(), &requests.CreatePaymentRequest{BookingID: fixture.bookingID})

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 401, customErr.StatusCode)
	})

	t.Run("Booking Already Paid", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.payments.bookings[fixture.bookingID].Status = models.BookingPending

		_, err := fixture.usecase.CreatePayment(ctx, fixture.userID, &requests.CreatePaymentRequest{BookingID: fixture.bookingID})

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 422, customErr.StatusCode)
	})

	t.Run("Creation Lock Held Elsewhere", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.locker.held = true

		_, err := fixture.usecase.CreatePayment(ctx, fixture.userID, &requests.CreatePaymentRequest{BookingID: fixture.bookingID})

		assert.Error(t, err)
	})
}

func TestHandleNotification(t *testing.T) {
	ctx := context.Background()

	settlement := func(orderID string) *requests.PaymentNotificationRequest {
		return &requests.PaymentNotificationRequest{
			OrderID:           orderID,
			StatusCode:        "200",
			GrossAmount:       "157500.00",
			SignatureKey:      "sig",
			TransactionStatus: "settlement",
			TransactionID:     "mt-txn-1",
			TransactionTime:   "2026-08-30 10:00:00",
			PaymentType:       "bank_transfer",
			VANumbers:         []requests.VANumber{{Bank: "bca", VANumber: "1234567890"}},
		}
	}

	t.Run("Settlement Settles Payment And Booking", func(t *testing.T) {
		fixture := newPaymentFixture()
		payment := fixture.seedPendingPayment(time.Now().Add(time.Hour))

		err := fixture.usecase.HandleNotification(ctx, settlement(payment.GatewayOrderID))

		assert.NoError(t, err)
		stored := fixture.payments.payments[payment.ID]
		assert.Equal(t, models.PaymentPaid, stored.Status)
		assert.NotNil(t, stored.PaidAt)
		assert.Equal(t, "settlement", stored.TransactionStatus)
		assert.Equal(t, "2026-08-30 10:00:00", stored.TransactionTime)
		assert.NotEmpty(t, stored.RawResponse, "the webhook body should be kept for audit")
		assert.Equal(t, models.BookingPending, fixture.payments.bookings[fixture.bookingID].Status)
		assert.Contains(t, fixture.publisher.published, "payment.settled")
	})

	t.Run("Replayed Settlement Is A No Op", func(t *testing.T) {
		fixture := newPaymentFixture()
		payment := fixture.seedPendingPayment(time.Now().Add(time.Hour))
		request := settlement(payment.GatewayOrderID)

		assert.NoError(t, fixture.usecase.HandleNotification(ctx, request))
		firstPaidAt := fixture.payments.payments[payment.ID].PaidAt

		assert.NoError(t, fixture.usecase.HandleNotification(ctx, request))

		stored := fixture.payments.payments[payment.ID]
		assert.Equal(t, models.PaymentPaid, stored.Status)
		assert.Equal(t, firstPaidAt, stored.PaidAt, "a replay must not restamp paid_at")
		assert.Equal(t, models.BookingPending, fixture.payments.bookings[fixture.bookingID].Status)
	})

	t.Run("Late Pending After Settlement Is Ignored", func(t *testing.T) {
		fixture := newPaymentFixture()
		payment := fixture.seedPendingPayment(time.Now().Add(time.Hour))
		assert.NoError(t, fixture.usecase.HandleNotification(ctx, settlement(payment.GatewayOrderID)))

		late := settlement(payment.GatewayOrderID)
		late.TransactionStatus = "pending"
		assert.NoError(t, fixture.usecase.HandleNotification(ctx, late))

		stored := fixture.payments.payments[payment.ID]
		assert.Equal(t, models.PaymentPaid, stored.Status, "an out-of-order pending must not downgrade a settled payment")
		assert.Equal(t, "settlement", stored.TransactionStatus)
	})

	t.Run("Invalid Signature Rejected", func(t *testing.T) {
		fixture := newPaymentFixture()
		payment := fixture.seedPendingPayment(time.Now().Add(time.Hour))
		fixture.gateway.rejectSignature = true

		err := fixture.usecase.HandleNotification(ctx, settlement(payment.GatewayOrderID))

		assert.Error(t, err)
		assert.Equal(t, models.PaymentPending, fixture.payments.payments[payment.ID].Status)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		fixture := newPaymentFixture()

		err := fixture.usecase.HandleNotification(ctx, settlement("MEDIKA-nobody"))

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestExpireOverduePayments(t *testing.T) {
	ctx := context.Background()

	t.Run("Expires Payment Booking And Gateway Transaction", func(t *testing.T) {
		fixture := newPaymentFixture()
		payment := fixture.seedPendingPayment(time.Now().Add(-time.Hour))

		expired, err := fixture.usecase.ExpireOverduePayments(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, 1, expired)
		assert.Equal(t, models.PaymentExpired, fixture.payments.payments[payment.ID].Status)
		assert.Equal(t, models.BookingExpired, fixture.payments.bookings[fixture.bookingID].Status)
		assert.Contains(t, fixture.gateway.expiredOrders, payment.GatewayOrderID)
		assert.Contains(t, fixture.publisher.published, "booking.expired")
	})

	t.Run("Nothing Overdue", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPendingPayment(time.Now().Add(time.Hour))

		expired, err := fixture.usecase.ExpireOverduePayments(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, 0, expired)
	})
}

var _ contracts.PaymentRepository = (*fakePaymentRepository)(nil)
var _ contracts.BookingRepository = (*fakeBookingStore)(nil)
var _ contracts.DoctorRepository = (*fakeDoctorStore)(nil)
var _ contracts.OrderRepository = (*fakeOrderStore)(nil)
var _ contracts.UserRepository = (*fakeUserStore)(nil)
var _ contracts.PaymentGatewayService = (*fakeGateway)(nil)
var _ contracts.LockerService = (*fakeLocker)(nil)
var _ contracts.EventPublisher = (*fakeEventPublisher)(nil)
