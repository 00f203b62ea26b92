package doctors

import (
	"context"
	"database/sql"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type doctorPostgresRepository struct {
	DB *sql.DB
}

func NewDoctorPostgresRepository(db *sql.DB) contracts.DoctorRepository {
	return &doctorPostgresRepository{
		DB: db,
	}
}

func (repo *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	query := queries.GetDoctorByID
	var doctor models.Doctor
	err := repo.DB.QueryRowContext(ctx, query, doctorID).Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.ConsultationFee,
		&doctor.IsAvailable,
		&doctor.TotalPatients,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &doctor, nil
}

func (repo *doctorPostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	query := queries.GetDoctorByUserID
	var doctor models.Doctor
	err := repo.DB.QueryRowContext(ctx, query, userID).Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.ConsultationFee,
		&doctor.IsAvailable,
		&doctor.TotalPatients,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &doctor, nil
}

func (repo *doctorPostgresRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Doctor, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountDoctors).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllDoctors, limit, offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var doctors []models.Doctor
	for rows.Next() {
		var model models.Doctor
		if err := rows.Scan(
			&model.ID,
			&model.UserID,
			&model.Name,
			&model.Specialization,
			&model.ConsultationFee,
			&model.IsAvailable,
			&model.TotalPatients,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		doctors = append(doctors, model)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	return doctors, total, nil
}
