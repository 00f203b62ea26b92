package controllers

import (
	"context"
	"net/http"
	"sync"

	"medika-service/internal/app/contracts"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
}

var (
	reportControllerInstance *ReportController
	onceReportController     sync.Once
)

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase) *ReportController {
	onceReportController.Do(func() {
		instance := &ReportController{
			Log:           logger,
			ReportUsecase: reportUsecase,
		}
		reportControllerInstance = instance
	})
	return reportControllerInstance
}

func (ctrl *ReportController) GetIncomeReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	report, err := ctrl.ReportUsecase.GetIncomeReport(ctx, query.Get("doctor_id"), query.Get("from"), query.Get("to"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, report)
}

func (ctrl *ReportController) GetPatientReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	report, err := ctrl.ReportUsecase.GetPatientReport(ctx, query.Get("doctor_id"), query.Get("from"), query.Get("to"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, report)
}
