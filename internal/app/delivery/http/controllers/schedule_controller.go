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

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
	DoctorUsecase   contracts.DoctorUsecase
}

var (
	scheduleControllerInstance *ScheduleController
	onceScheduleController     sync.Once
)

func NewScheduleController(
	logger *zap.Logger,
	scheduleUsecase contracts.ScheduleUsecase,
	doctorUsecase contracts.DoctorUsecase,
) *ScheduleController {
	onceScheduleController.Do(func() {
		instance := &ScheduleController{
			Log:             logger,
			ScheduleUsecase: scheduleUsecase,
			DoctorUsecase:   doctorUsecase,
		}
		scheduleControllerInstance = instance
	})
	return scheduleControllerInstance
}

func (ctrl *ScheduleController) GetDoctors(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	doctors, total, err := ctrl.DoctorUsecase.GetDoctors(ctx, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, doctors)
}

func (ctrl *ScheduleController) GetDoctorByID(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	doctor, err := ctrl.DoctorUsecase.GetDoctorByID(ctx, doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, doctor)
}

func (ctrl *ScheduleController) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := chi.URLParam(r, "doctorId")

	request := new(requests.CreateScheduleRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse create schedule request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	schedule, err := ctrl.ScheduleUsecase.CreateSchedule(ctx, utils.GetUserID(ctx), utils.GetUserRole(ctx), doctorID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ScheduleCreatedMessage, schedule)
}

func (ctrl *ScheduleController) GetSchedules(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	schedules, err := ctrl.ScheduleUsecase.GetSchedulesByDoctor(ctx, doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, schedules)
}

func (ctrl *ScheduleController) UpdateScheduleStatus(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorId")
	scheduleID := chi.URLParam(r, "scheduleId")

	request := new(requests.UpdateScheduleStatusRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if err := ctrl.ScheduleUsecase.SetScheduleActive(ctx, utils.GetUserID(ctx), utils.GetUserRole(ctx), doctorID, scheduleID, *request.IsActive); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, nil)
}
