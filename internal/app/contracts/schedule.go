package contracts

import (
	"context"

	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
)

type ScheduleRepository interface {
	FindByID(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
	FindActiveByDoctorAndDay(ctx context.Context, doctorID string, dayOfWeek int) ([]models.DoctorSchedule, error)
	CreateSchedule(ctx context.Context, schedule *models.DoctorSchedule) error
	CountOverlapping(ctx context.Context, doctorID string, dayOfWeek int, startTime, endTime string) (int, error)
	SetActive(ctx context.Context, scheduleID string, active bool) error
}

// ScheduleUsecase takes the acting user and role on mutating operations: a
// doctor may only manage their own schedules, an admin may manage any.
type ScheduleUsecase interface {
	CreateSchedule(ctx context.Context, actorUserID, actorRole, doctorID string, request *requests.CreateScheduleRequest) (*responses.ScheduleResponse, error)
	GetSchedulesByDoctor(ctx context.Context, doctorID string) ([]responses.ScheduleResponse, error)
	SetScheduleActive(ctx context.Context, actorUserID, actorRole, doctorID, scheduleID string, active bool) error
}
