package reports

import (
	"context"
	"fmt"
	"sync"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type reportUsecase struct {
	ReportRepository contracts.ReportRepository
	Log              *zap.Logger
}

var (
	reportUsecaseInstance contracts.ReportUsecase
	onceReportUsecase     sync.Once
)

func NewReportUsecase(
	reportRepository contracts.ReportRepository,
	logger *zap.Logger,
) contracts.ReportUsecase {
	onceReportUsecase.Do(func() {
		instance := &reportUsecase{
			ReportRepository: reportRepository,
			Log:              logger,
		}
		reportUsecaseInstance = instance
	})
	return reportUsecaseInstance
}

// GetIncomeReport merges daily booking income with marketplace order income
// over a closed date window. When a doctor filter is set, order income has no
// doctor dimension and is left out.
func (uc *reportUsecase) GetIncomeReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.IncomeReportRow, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}

	bookingRows, err := uc.ReportRepository.GetIncomeReport(ctx, doctorID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	var orderRows []models.IncomeReportRow
	if doctorID == "" {
		orderRows, err = uc.ReportRepository.GetOrderIncomeReport(ctx, startDate, endDate)
		if err != nil {
			return nil, err
		}
	}

	byDate := make(map[string]*models.IncomeReportRow, len(bookingRows))
	order := make([]string, 0, len(bookingRows))
	for i := range bookingRows {
		row := bookingRows[i]
		byDate[row.Date] = &row
		order = append(order, row.Date)
	}
	for _, orderRow := range orderRows {
		row, ok := byDate[orderRow.Date]
		if !ok {
			merged := orderRow
			byDate[orderRow.Date] = &merged
			order = append(order, orderRow.Date)
			continue
		}
		row.OrderCount = orderRow.OrderCount
		row.OrderIncome = orderRow.OrderIncome
	}

	result := make([]models.IncomeReportRow, 0, len(order))
	for _, date := range order {
		row := byDate[date]
		row.TotalIncome = row.GrossIncome + row.OrderIncome
		row.TotalPayments = row.BookingCount + row.OrderCount
		result = append(result, *row)
	}
	return result, nil
}

func (uc *reportUsecase) GetPatientReport(ctx context.Context, doctorID, startDate, endDate string) ([]models.PatientReportRow, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return uc.ReportRepository.GetPatientReport(ctx, doctorID, startDate, endDate)
}

func validateRange(startDate, endDate string) error {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return exceptions.ErrCannotParseDate(err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return exceptions.ErrCannotParseDate(err)
	}
	if end.Before(start) {
		return exceptions.ErrInputValidation(fmt.Errorf("end_date %s is before start_date %s", endDate, startDate))
	}
	return nil
}
