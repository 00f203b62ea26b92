package reports

import (
	"context"
	"database/sql"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type reportPostgresRepository struct {
	DB *sql.DB
}

func NewReportPostgresRepository(db *sql.DB) contracts.ReportRepository {
	return &reportPostgresRepository{
		DB: db,
	}
}

func (repo *reportPostgresRepository) GetIncomeReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.IncomeReportRow, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetIncomeReport, startDate, endDate, doctorID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var report []models.IncomeReportRow
	for rows.Next() {
		var row models.IncomeReportRow
		if err := rows.Scan(
			&row.Date,
			&row.BookingCount,
			&row.GrossIncome,
			&row.AdminFees,
			&row.NetIncome,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return report, nil
}

func (repo *reportPostgresRepository) GetOrderIncomeReport(ctx context.Context, startDate, endDate string) ([]models.IncomeReportRow, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetOrderIncomeReport, startDate, endDate)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var report []models.IncomeReportRow
	for rows.Next() {
		var row models.IncomeReportRow
		if err := rows.Scan(
			&row.Date,
			&row.OrderCount,
			&row.OrderIncome,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return report, nil
}

func (repo *reportPostgresRepository) GetPatientReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.PatientReportRow, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetPatientReport, startDate, endDate, doctorID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var report []models.PatientReportRow
	for rows.Next() {
		var row models.PatientReportRow
		if err := rows.Scan(
			&row.DoctorID,
			&row.DoctorName,
			&row.CompletedBookings,
			&row.UniquePatients,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return report, nil
}
