package payments

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type paymentPostgresRepository struct {
	DB *sql.DB
}

func NewPaymentPostgresRepository(db *sql.DB) contracts.PaymentRepository {
	return &paymentPostgresRepository{
		DB: db,
	}
}

func scanPayment(row *sql.Row) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.GatewayOrderID,
		&payment.Amount,
		&payment.AdminFee,
		&payment.GrossAmount,
		&payment.Status,
		&payment.SnapToken,
		&payment.RedirectURL,
		&payment.PaymentType,
		&payment.TransactionID,
		&payment.TransactionStatus,
		&payment.TransactionTime,
		&payment.VANumber,
		&payment.Bank,
		&payment.PaidAt,
		&payment.ExpiresAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *paymentPostgresRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return scanPayment(repo.DB.QueryRowContext(ctx, queries.GetPaymentByID, paymentID))
}

func (repo *paymentPostgresRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error) {
	return scanPayment(repo.DB.QueryRowContext(ctx, queries.GetPaymentByGatewayOrderID, gatewayOrderID))
}

func (repo *paymentPostgresRepository) FindPendingByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	return scanPayment(repo.DB.QueryRowContext(ctx, queries.GetPendingPaymentByBookingID, bookingID))
}

func (repo *paymentPostgresRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Payment, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountPaymentsByUserID, userID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetPaymentsByUserID, userID, limit, offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var model models.Payment
		if err := rows.Scan(
			&model.ID,
			&model.BookingID,
			&model.GatewayOrderID,
			&model.Amount,
			&model.AdminFee,
			&model.GrossAmount,
			&model.Status,
			&model.SnapToken,
			&model.RedirectURL,
			&model.PaymentType,
			&model.TransactionID,
			&model.TransactionStatus,
			&model.TransactionTime,
			&model.VANumber,
			&model.Bank,
			&model.PaidAt,
			&model.ExpiresAt,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, model)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	return payments, total, nil
}

func (repo *paymentPostgresRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertPayment,
		payment.ID,
		payment.BookingID,
		payment.GatewayOrderID,
		payment.Amount,
		payment.AdminFee,
		payment.GrossAmount,
		payment.Status,
		payment.SnapToken,
		payment.RedirectURL,
		payment.ExpiresAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

// ApplyReconciliation moves a payment and its booking in one transaction.
// Both rows are locked first so concurrent webhook replays serialize; a
// replay that arrives after the payment reached PAID or a final status is a
// no-op, and the booking only moves along legal lifecycle edges so late
// PENDING notifications can never downgrade a PAID booking.
func (repo *paymentPostgresRepository) ApplyReconciliation(ctx context.Context, payment *models.Payment, result *models.ReconciliationResult) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	var currentStatus models.PaymentStatus
	err = tx.QueryRowContext(ctx, queries.GetPaymentStatusForUpdate, payment.ID).Scan(&currentStatus)
	if err == sql.ErrNoRows {
		return exceptions.ErrPaymentNotFound(err)
	} else if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}

	if SkipStatusOverwrite(currentStatus, result.PaymentStatus) {
		return tx.Commit()
	}

	var paidAt *time.Time
	if result.Settled {
		now := time.Now()
		paidAt = &now
	} else if payment.PaidAt != nil {
		paidAt = payment.PaidAt
	}

	_, err = tx.ExecContext(ctx, queries.UpdatePaymentReconciliation,
		result.PaymentStatus,
		payment.PaymentType,
		payment.TransactionID,
		payment.TransactionStatus,
		payment.TransactionTime,
		payment.RawResponse,
		payment.VANumber,
		payment.Bank,
		paidAt,
		payment.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if result.BookingStatus != "" {
		var bookingStatus models.BookingStatus
		err = tx.QueryRowContext(ctx, queries.GetBookingStatusForUpdate, payment.BookingID).Scan(&bookingStatus)
		if err == sql.ErrNoRows {
			return exceptions.ErrBookingNotFound(err)
		} else if err != nil {
			return exceptions.ErrPostgresDBFindData(err)
		}

		if ShouldAdvanceBooking(bookingStatus, result.BookingStatus) {
			_, err = tx.ExecContext(ctx, queries.UpdateBookingStatus, result.BookingStatus, payment.BookingID)
			if err != nil {
				return exceptions.ErrPostgresDBUpdateData(err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	return nil
}

// ReissuePayment refreshes the booking's single PENDING row with a new
// checkout instead of inserting a sibling. A zero-row update means the
// payment left PENDING in the meantime, which the caller must treat as a
// state conflict.
func (repo *paymentPostgresRepository) ReissuePayment(ctx context.Context, payment *models.Payment) error {
	res, err := repo.DB.ExecContext(ctx, queries.ReissuePayment,
		payment.GatewayOrderID,
		payment.Amount,
		payment.AdminFee,
		payment.GrossAmount,
		payment.SnapToken,
		payment.RedirectURL,
		payment.ExpiresAt,
		payment.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if affected == 0 {
		return exceptions.ErrPaymentInvalidState(fmt.Errorf("payment %s is no longer pending", payment.ID))
	}
	return nil
}

func (repo *paymentPostgresRepository) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdatePaymentStatus, status, paymentID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *paymentPostgresRepository) FindOverduePending(ctx context.Context, limit int) ([]models.Payment, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetOverduePendingPayments, limit)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var model models.Payment
		if err := rows.Scan(&model.ID, &model.BookingID, &model.GatewayOrderID); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return payments, nil
}
