package schedules

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	DoctorRepository   contracts.DoctorRepository
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	doctorRepository contracts.DoctorRepository,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		instance := &scheduleUsecase{
			ScheduleRepository: scheduleRepository,
			DoctorRepository:   doctorRepository,
			Log:                logger,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) CreateSchedule(ctx context.Context, actorUserID, actorRole, doctorID string, request *requests.CreateScheduleRequest) (*responses.ScheduleResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.CreateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if err := uc.authorizeScheduleActor(ctx, actorUserID, actorRole, doctorID); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	if !utils.IsValidTimeRange(request.StartTime, request.EndTime) {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("start_time %s is not before end_time %s", request.StartTime, request.EndTime))
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	overlapping, err := uc.ScheduleRepository.CountOverlapping(ctx, doctorID, *request.DayOfWeek, request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, exceptions.ErrScheduleDuplicate(nil)
	}

	schedule := &models.DoctorSchedule{
		ID:        uuid.NewString(),
		DoctorID:  doctorID,
		DayOfWeek: *request.DayOfWeek,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.ScheduleRepository.CreateSchedule(ctx, schedule); err != nil {
		uc.Log.Error("scheduleUsecase.CreateSchedule error inserting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := buildScheduleResponse(schedule)
	return &response, nil
}

func (uc *scheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID string) ([]responses.ScheduleResponse, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	schedules, err := uc.ScheduleRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, buildScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// SetScheduleActive toggles a slot definition. Deactivating keeps existing
// bookings; it only stops new ones from being created against the slot.
func (uc *scheduleUsecase) SetScheduleActive(ctx context.Context, actorUserID, actorRole, doctorID, scheduleID string, active bool) error {
	if err := uc.authorizeScheduleActor(ctx, actorUserID, actorRole, doctorID); err != nil {
		return err
	}

	schedule, err := uc.ScheduleRepository.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if schedule == nil {
		return exceptions.ErrScheduleNotFound(nil)
	}
	if schedule.DoctorID != doctorID {
		return exceptions.ErrScheduleMismatch(nil)
	}

	return uc.ScheduleRepository.SetActive(ctx, scheduleID, active)
}

// authorizeScheduleActor lets admins through and pins doctors to their own
// profile, so one doctor cannot manage another's slots via the path id.
func (uc *scheduleUsecase) authorizeScheduleActor(ctx context.Context, actorUserID, actorRole, doctorID string) error {
	if actorRole == constvars.RoleAdmin {
		return nil
	}
	doctor, err := uc.DoctorRepository.FindByUserID(ctx, actorUserID)
	if err != nil {
		return err
	}
	if doctor == nil || doctor.ID != doctorID {
		return exceptions.ErrForbidden(fmt.Errorf("doctor %s is not managed by this account", doctorID))
	}
	return nil
}

func buildScheduleResponse(schedule *models.DoctorSchedule) responses.ScheduleResponse {
	return responses.ScheduleResponse{
		ID:        schedule.ID,
		DoctorID:  schedule.DoctorID,
		DayOfWeek: schedule.DayOfWeek,
		DayName:   utils.DayName(schedule.DayOfWeek),
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		IsActive:  schedule.IsActive,
	}
}
