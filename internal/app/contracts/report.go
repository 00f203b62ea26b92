package contracts

import (
	"context"

	"medika-service/internal/app/models"
)

type ReportRepository interface {
	GetIncomeReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.IncomeReportRow, error)
	GetOrderIncomeReport(ctx context.Context, startDate, endDate string) ([]models.IncomeReportRow, error)
	GetPatientReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.PatientReportRow, error)
}

type ReportUsecase interface {
	GetIncomeReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.IncomeReportRow, error)
	GetPatientReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.PatientReportRow, error)
}
