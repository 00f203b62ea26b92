package schedules

import (
	"context"
	"database/sql"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type schedulePostgresRepository struct {
	DB *sql.DB
}

func NewSchedulePostgresRepository(db *sql.DB) contracts.ScheduleRepository {
	return &schedulePostgresRepository{
		DB: db,
	}
}

func (repo *schedulePostgresRepository) FindByID(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error) {
	query := queries.GetScheduleByID
	var schedule models.DoctorSchedule
	err := repo.DB.QueryRowContext(ctx, query, scheduleID).Scan(
		&schedule.ID,
		&schedule.DoctorID,
		&schedule.DayOfWeek,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.IsActive,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &schedule, nil
}

func (repo *schedulePostgresRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	return repo.scanSchedules(ctx, queries.GetSchedulesByDoctorID, doctorID)
}

func (repo *schedulePostgresRepository) FindActiveByDoctorAndDay(ctx context.Context, doctorID string, dayOfWeek int) ([]models.DoctorSchedule, error) {
	return repo.scanSchedules(ctx, queries.GetActiveSchedulesByDoctorAndDay, doctorID, dayOfWeek)
}

func (repo *schedulePostgresRepository) scanSchedules(ctx context.Context, query string, args ...interface{}) ([]models.DoctorSchedule, error) {
	rows, err := repo.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var schedules []models.DoctorSchedule
	for rows.Next() {
		var model models.DoctorSchedule
		if err := rows.Scan(
			&model.ID,
			&model.DoctorID,
			&model.DayOfWeek,
			&model.StartTime,
			&model.EndTime,
			&model.IsActive,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		schedules = append(schedules, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return schedules, nil
}

func (repo *schedulePostgresRepository) CreateSchedule(ctx context.Context, schedule *models.DoctorSchedule) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertSchedule,
		schedule.ID,
		schedule.DoctorID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.IsActive,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *schedulePostgresRepository) CountOverlapping(ctx context.Context, doctorID string, dayOfWeek int, startTime, endTime string) (int, error) {
	var count int
	err := repo.DB.QueryRowContext(ctx, queries.CountOverlappingSchedules, doctorID, dayOfWeek, startTime, endTime).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *schedulePostgresRepository) SetActive(ctx context.Context, scheduleID string, active bool) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateScheduleActive, active, scheduleID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
