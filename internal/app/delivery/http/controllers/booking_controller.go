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

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
}

var (
	bookingControllerInstance *BookingController
	onceBookingController     sync.Once
)

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase) *BookingController {
	onceBookingController.Do(func() {
		instance := &BookingController{
			Log:            logger,
			BookingUsecase: bookingUsecase,
		}
		bookingControllerInstance = instance
	})
	return bookingControllerInstance
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	userID := utils.GetUserID(r.Context())

	request := new(requests.CreateBookingRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse create booking request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	booking, err := ctrl.BookingUsecase.CreateBooking(ctx, userID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookingCreatedMessage, booking)
}

func (ctrl *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	filter := &requests.BookingListFilter{
		Status:      r.URL.Query().Get("status"),
		DoctorID:    r.URL.Query().Get("doctor_id"),
		BookingDate: r.URL.Query().Get("date"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	bookings, total, err := ctrl.BookingUsecase.ListBookings(ctx, filter, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, bookings)
}

func (ctrl *BookingController) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	page, pageSize := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	bookings, total, err := ctrl.BookingUsecase.GetBookingsByUser(ctx, userID, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, bookings)
}

// GetDoctorBookings lists the bookings for the doctor profile behind the
// authenticated user.
func (ctrl *BookingController) GetDoctorBookings(w http.ResponseWriter, r *http.Request) {
	doctorUserID := utils.GetUserID(r.Context())
	page, pageSize := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	bookings, total, err := ctrl.BookingUsecase.GetBookingsByDoctor(ctx, doctorUserID, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, bookings)
}

func (ctrl *BookingController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorId")
	date := r.URL.Query().Get("date")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	slots, err := ctrl.BookingUsecase.GetAvailableSlots(ctx, doctorID, date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, slots)
}

func (ctrl *BookingController) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	bookingID := chi.URLParam(r, "bookingId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	booking, err := ctrl.BookingUsecase.GetBookingByID(ctx, userID, bookingID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, booking)
}

func (ctrl *BookingController) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	doctorUserID := utils.GetUserID(r.Context())
	bookingID := chi.URLParam(r, "bookingId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	booking, err := ctrl.BookingUsecase.ConfirmBooking(ctx, doctorUserID, bookingID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingConfirmedMessage, booking)
}

func (ctrl *BookingController) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	doctorUserID := utils.GetUserID(r.Context())
	bookingID := chi.URLParam(r, "bookingId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	booking, err := ctrl.BookingUsecase.CompleteBooking(ctx, doctorUserID, bookingID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingCompletedMessage, booking)
}

func (ctrl *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	bookingID := chi.URLParam(r, "bookingId")

	// The cancellation reason is optional; an empty body is fine.
	request := new(requests.CancelBookingRequest)
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	booking, err := ctrl.BookingUsecase.CancelBooking(ctx, userID, bookingID, request.Reason)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingCancelledMessage, booking)
}
