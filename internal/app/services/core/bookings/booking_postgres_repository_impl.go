package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE raised by the partial unique index
// on (schedule_id, booking_date).
const uniqueViolation = "23505"

type bookingPostgresRepository struct {
	DB *sql.DB
}

func NewBookingPostgresRepository(db *sql.DB) contracts.BookingRepository {
	return &bookingPostgresRepository{
		DB: db,
	}
}

func (repo *bookingPostgresRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	query := queries.GetBookingByID
	var booking models.Booking
	err := repo.DB.QueryRowContext(ctx, query, bookingID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.DoctorID,
		&booking.ScheduleID,
		&booking.BookingDate,
		&booking.Type,
		&booking.ConsultationFee,
		&booking.Status,
		&booking.Complaint,
		&booking.CancellationReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &booking, nil
}

func (repo *bookingPostgresRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Booking, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountBookingsByUserID, userID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	bookings, err := repo.scanBookings(ctx, queries.GetBookingsByUserID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (repo *bookingPostgresRepository) FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Booking, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountBookingsByDoctorID, doctorID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	bookings, err := repo.scanBookings(ctx, queries.GetBookingsByDoctorID, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (repo *bookingPostgresRepository) scanBookings(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := repo.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var model models.Booking
		if err := rows.Scan(
			&model.ID,
			&model.UserID,
			&model.DoctorID,
			&model.ScheduleID,
			&model.BookingDate,
			&model.Type,
			&model.ConsultationFee,
			&model.Status,
			&model.Complaint,
			&model.CancellationReason,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		bookings = append(bookings, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return bookings, nil
}

func (repo *bookingPostgresRepository) FindAll(ctx context.Context, filter *requests.BookingListFilter, limit, offset int) ([]models.Booking, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountAllBookings,
		filter.Status, filter.DoctorID, filter.BookingDate,
	).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	bookings, err := repo.scanBookings(ctx, queries.GetAllBookings,
		filter.Status, filter.DoctorID, filter.BookingDate, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (repo *bookingPostgresRepository) FindBookedScheduleIDs(ctx context.Context, doctorID string, bookingDate time.Time) ([]string, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetBookedScheduleIDsByDate, doctorID, bookingDate)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var scheduleIDs []string
	for rows.Next() {
		var scheduleID string
		if err := rows.Scan(&scheduleID); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		scheduleIDs = append(scheduleIDs, scheduleID)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return scheduleIDs, nil
}

func (repo *bookingPostgresRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertBooking,
		booking.ID,
		booking.UserID,
		booking.DoctorID,
		booking.ScheduleID,
		booking.BookingDate,
		booking.Type,
		booking.ConsultationFee,
		booking.Status,
		booking.Complaint,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return exceptions.ErrSlotAlreadyBooked(err)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *bookingPostgresRepository) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateBookingStatus, status, bookingID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *bookingPostgresRepository) CancelWithReason(ctx context.Context, bookingID, reason string) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateBookingCancellation, reason, bookingID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// CompleteAndCountPatient moves a booking into COMPLETED and increments the
// doctor's total_patients counter in the same transaction. The status row is
// locked first so a concurrent webhook or a doubled complete request cannot
// count the same consultation twice.
func (repo *bookingPostgresRepository) CompleteAndCountPatient(ctx context.Context, bookingID string) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	var status models.BookingStatus
	err = tx.QueryRowContext(ctx, queries.GetBookingStatusForUpdate, bookingID).Scan(&status)
	if err == sql.ErrNoRows {
		return exceptions.ErrBookingNotFound(err)
	} else if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}

	if !status.CanTransitionTo(models.BookingCompleted) {
		return exceptions.ErrBookingInvalidState(fmt.Errorf("cannot move %s to %s", status, models.BookingCompleted))
	}

	if _, err := tx.ExecContext(ctx, queries.UpdateBookingStatus, models.BookingCompleted, bookingID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if _, err := tx.ExecContext(ctx, queries.IncrementDoctorTotalPatientsByBookingID, bookingID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	return nil
}
