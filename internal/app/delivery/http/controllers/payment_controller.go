package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"medika-service/internal/app/contracts"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	OrderUsecase   contracts.OrderUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(
	logger *zap.Logger,
	paymentUsecase contracts.PaymentUsecase,
	orderUsecase contracts.OrderUsecase,
) *PaymentController {
	oncePaymentController.Do(func() {
		instance := &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
			OrderUsecase:   orderUsecase,
		}
		paymentControllerInstance = instance
	})
	return paymentControllerInstance
}

func (ctrl *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	request := &requests.CreatePaymentRequest{
		BookingID: chi.URLParam(r, "bookingId"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	payment, err := ctrl.PaymentUsecase.CreatePayment(ctx, userID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentCreatedMessage, payment)
}

// HandleNotification is the gateway webhook endpoint. It is unauthenticated;
// the SHA-512 signature inside the body is the credential. Marketplace order
// ids carry a marker that routes them to the order reconciler.
func (ctrl *PaymentController) HandleNotification(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.PaymentNotificationRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse payment notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var err error
	if utils.IsMarketplaceOrderID(request.OrderID) {
		err = ctrl.OrderUsecase.HandleNotification(ctx, request)
	} else {
		err = ctrl.PaymentUsecase.HandleNotification(ctx, request)
	}
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationHandledMessage, nil)
}

func (ctrl *PaymentController) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	payment, err := ctrl.PaymentUsecase.GetPaymentStatus(ctx, userID, orderID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, payment)
}

func (ctrl *PaymentController) GetPaymentByBooking(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	bookingID := chi.URLParam(r, "bookingId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	payment, err := ctrl.PaymentUsecase.GetPaymentByBookingID(ctx, userID, bookingID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, payment)
}

func (ctrl *PaymentController) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	page, pageSize := parsePagination(r)
	source := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	history, total, err := ctrl.PaymentUsecase.GetPaymentHistory(ctx, userID, source, status, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, history)
}

func (ctrl *PaymentController) CancelPayment(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if err := ctrl.PaymentUsecase.CancelPayment(ctx, userID, orderID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentCancelledMessage, nil)
}

// PaymentRedirect serves the landing pages the hosted checkout sends the
// payer back to. The authoritative state change always arrives through the
// webhook; this only echoes what the gateway appended to the redirect URL.
func (ctrl *PaymentController) PaymentRedirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, map[string]string{
		"order_id":           query.Get("order_id"),
		"status_code":        query.Get("status_code"),
		"transaction_status": query.Get("transaction_status"),
	})
}
