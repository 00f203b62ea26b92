package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/app/services/shared/events"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingUsecase struct {
	BookingRepository  contracts.BookingRepository
	ScheduleRepository contracts.ScheduleRepository
	DoctorRepository   contracts.DoctorRepository
	EventPublisher     contracts.EventPublisher
	Log                *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	scheduleRepository contracts.ScheduleRepository,
	doctorRepository contracts.DoctorRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		instance := &bookingUsecase{
			BookingRepository:  bookingRepository,
			ScheduleRepository: scheduleRepository,
			DoctorRepository:   doctorRepository,
			EventPublisher:     eventPublisher,
			Log:                logger,
		}
		bookingUsecaseInstance = instance
	})
	return bookingUsecaseInstance
}

// CreateBooking validates the doctor, the schedule, and the requested date
// before inserting. Slot exclusivity itself is enforced by the database, so
// two concurrent requests for the same (schedule, date) cannot both succeed.
func (uc *bookingUsecase) CreateBooking(ctx context.Context, userID string, request *requests.CreateBookingRequest) (*responses.BookingResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	bookingDate, err := utils.ParseDate(request.BookingDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	today := time.Now().Truncate(24 * time.Hour)
	if bookingDate.Before(today) {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("booking_date %s is in the past", request.BookingDate))
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}
	if !doctor.IsAvailable {
		return nil, exceptions.ErrDoctorUnavailable(nil)
	}

	schedule, err := uc.ScheduleRepository.FindByID(ctx, request.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, exceptions.ErrScheduleNotFound(nil)
	}
	if schedule.DoctorID != request.DoctorID {
		return nil, exceptions.ErrScheduleMismatch(nil)
	}
	if !schedule.IsActive {
		return nil, exceptions.ErrScheduleInactive(nil)
	}
	if utils.DayOfWeek(bookingDate) != schedule.DayOfWeek {
		return nil, exceptions.ErrDateDayMismatch(nil)
	}

	booking := &models.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		DoctorID:        request.DoctorID,
		ScheduleID:      request.ScheduleID,
		BookingDate:     bookingDate,
		Type:            models.ConsultationType(request.Type),
		ConsultationFee: request.ConsultationFee,
		Status:          models.BookingPendingPayment,
		Complaint:       request.Complaint,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := uc.BookingRepository.CreateBooking(ctx, booking); err != nil {
		uc.Log.Error("bookingUsecase.CreateBooking error inserting booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, events.EventBookingCreated, booking)

	response := uc.buildBookingResponse(booking, doctor, schedule)
	return response, nil
}

func (uc *bookingUsecase) GetBookingByID(ctx context.Context, userID, bookingID string) (*responses.BookingResponse, error) {
	booking, err := uc.fetchOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, booking)
}

func (uc *bookingUsecase) GetBookingsByUser(ctx context.Context, userID string, page, pageSize int) ([]responses.BookingResponse, int, error) {
	offset := (page - 1) * pageSize
	bookings, total, err := uc.BookingRepository.FindByUserID(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.BookingResponse, 0, len(bookings))
	for i := range bookings {
		response, err := uc.enrich(ctx, &bookings[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *response)
	}
	return result, total, nil
}

func (uc *bookingUsecase) GetBookingsByDoctor(ctx context.Context, doctorUserID string, page, pageSize int) ([]responses.BookingResponse, int, error) {
	doctor, err := uc.DoctorRepository.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, 0, err
	}
	if doctor == nil {
		return nil, 0, exceptions.ErrNotAuthorized(nil)
	}

	offset := (page - 1) * pageSize
	bookings, total, err := uc.BookingRepository.FindByDoctorID(ctx, doctor.ID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.BookingResponse, 0, len(bookings))
	for i := range bookings {
		response, err := uc.enrich(ctx, &bookings[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *response)
	}
	return result, total, nil
}

func (uc *bookingUsecase) ListBookings(ctx context.Context, filter *requests.BookingListFilter, page, pageSize int) ([]responses.BookingResponse, int, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, 0, exceptions.ErrInputValidation(err)
	}

	offset := (page - 1) * pageSize
	bookings, total, err := uc.BookingRepository.FindAll(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.BookingResponse, 0, len(bookings))
	for i := range bookings {
		response, err := uc.enrich(ctx, &bookings[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *response)
	}
	return result, total, nil
}

// GetAvailableSlots lists a doctor's active slots for the weekday of the given
// date, marking the ones a live booking already holds.
func (uc *bookingUsecase) GetAvailableSlots(ctx context.Context, doctorID, date string) ([]responses.AvailableSlotResponse, error) {
	bookingDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	schedules, err := uc.ScheduleRepository.FindActiveByDoctorAndDay(ctx, doctorID, utils.DayOfWeek(bookingDate))
	if err != nil {
		return nil, err
	}

	bookedIDs, err := uc.BookingRepository.FindBookedScheduleIDs(ctx, doctorID, bookingDate)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	slots := make([]responses.AvailableSlotResponse, 0, len(schedules))
	for i := range schedules {
		schedule := &schedules[i]
		slots = append(slots, responses.AvailableSlotResponse{
			ScheduleID: schedule.ID,
			StartTime:  schedule.StartTime,
			EndTime:    schedule.EndTime,
			IsBooked:   booked[schedule.ID],
		})
	}
	return slots, nil
}

func (uc *bookingUsecase) ConfirmBooking(ctx context.Context, doctorUserID, bookingID string) (*responses.BookingResponse, error) {
	return uc.doctorTransition(ctx, doctorUserID, bookingID, models.BookingConfirmed, events.EventBookingConfirmed)
}

func (uc *bookingUsecase) CompleteBooking(ctx context.Context, doctorUserID, bookingID string) (*responses.BookingResponse, error) {
	return uc.doctorTransition(ctx, doctorUserID, bookingID, models.BookingCompleted, events.EventBookingCompleted)
}

func (uc *bookingUsecase) doctorTransition(ctx context.Context, doctorUserID, bookingID string, target models.BookingStatus, event string) (*responses.BookingResponse, error) {
	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, booking.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.UserID != doctorUserID {
		return nil, exceptions.ErrNotAuthorized(nil)
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, exceptions.ErrBookingInvalidState(fmt.Errorf("cannot move %s to %s", booking.Status, target))
	}

	// Completion also counts the patient, so it goes through the combined
	// repository write instead of a bare status update.
	if target == models.BookingCompleted {
		err = uc.BookingRepository.CompleteAndCountPatient(ctx, bookingID)
	} else {
		err = uc.BookingRepository.UpdateStatus(ctx, bookingID, target)
	}
	if err != nil {
		return nil, err
	}
	booking.Status = target

	uc.publishEvent(ctx, event, booking)
	return uc.enrich(ctx, booking)
}

func (uc *bookingUsecase) CancelBooking(ctx context.Context, userID, bookingID, reason string) (*responses.BookingResponse, error) {
	booking, err := uc.fetchOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingCancelled) {
		return nil, exceptions.ErrBookingInvalidState(fmt.Errorf("cannot cancel a %s booking", booking.Status))
	}

	if err := uc.BookingRepository.CancelWithReason(ctx, bookingID, reason); err != nil {
		return nil, err
	}
	booking.Status = models.BookingCancelled
	booking.CancellationReason = reason

	uc.publishEvent(ctx, events.EventBookingCancelled, booking)
	return uc.enrich(ctx, booking)
}

func (uc *bookingUsecase) fetchOwnedBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
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
	return booking, nil
}

func (uc *bookingUsecase) enrich(ctx context.Context, booking *models.Booking) (*responses.BookingResponse, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, booking.DoctorID)
	if err != nil {
		return nil, err
	}
	schedule, err := uc.ScheduleRepository.FindByID(ctx, booking.ScheduleID)
	if err != nil {
		return nil, err
	}
	return uc.buildBookingResponse(booking, doctor, schedule), nil
}

func (uc *bookingUsecase) buildBookingResponse(booking *models.Booking, doctor *models.Doctor, schedule *models.DoctorSchedule) *responses.BookingResponse {
	response := &responses.BookingResponse{
		ID:                 booking.ID,
		DoctorID:           booking.DoctorID,
		ScheduleID:         booking.ScheduleID,
		BookingDate:        booking.BookingDate.Format(constvars.AppDateLayout),
		Type:               string(booking.Type),
		ConsultationFee:    booking.ConsultationFee,
		Status:             string(booking.Status),
		Complaint:          booking.Complaint,
		CancellationReason: booking.CancellationReason,
		CreatedAt:          booking.CreatedAt,
	}
	if doctor != nil {
		response.DoctorName = doctor.Name
	}
	if schedule != nil {
		response.DayName = utils.DayName(schedule.DayOfWeek)
		response.StartTime = schedule.StartTime
		response.EndTime = schedule.EndTime
	}
	return response
}

func (uc *bookingUsecase) publishEvent(ctx context.Context, event string, booking *models.Booking) {
	if err := uc.EventPublisher.Publish(ctx, event, booking); err != nil {
		uc.Log.Warn("bookingUsecase event publish failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event),
			zap.String(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(err),
		)
	}
}
