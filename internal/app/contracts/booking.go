package contracts

import (
	"context"
	"time"

	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
)

type BookingRepository interface {
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Booking, int, error)
	FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Booking, int, error)
	FindAll(ctx context.Context, filter *requests.BookingListFilter, limit, offset int) ([]models.Booking, int, error)
	FindBookedScheduleIDs(ctx context.Context, doctorID string, bookingDate time.Time) ([]string, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	CancelWithReason(ctx context.Context, bookingID, reason string) error
	// CompleteAndCountPatient flips a CONFIRMED booking to COMPLETED and
	// increments the doctor's total_patients counter atomically.
	CompleteAndCountPatient(ctx context.Context, bookingID string) error
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, userID string, request *requests.CreateBookingRequest) (*responses.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID, bookingID string) (*responses.BookingResponse, error)
	GetBookingsByUser(ctx context.Context, userID string, page, pageSize int) ([]responses.BookingResponse, int, error)
	GetBookingsByDoctor(ctx context.Context, doctorUserID string, page, pageSize int) ([]responses.BookingResponse, int, error)
	ListBookings(ctx context.Context, filter *requests.BookingListFilter, page, pageSize int) ([]responses.BookingResponse, int, error)
	GetAvailableSlots(ctx context.Context, doctorID, date string) ([]responses.AvailableSlotResponse, error)
	ConfirmBooking(ctx context.Context, doctorUserID, bookingID string) (*responses.BookingResponse, error)
	CompleteBooking(ctx context.Context, doctorUserID, bookingID string) (*responses.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID, reason string) (*responses.BookingResponse, error)
}
