package contracts

import (
	"context"

	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/responses"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	FindAll(ctx context.Context, limit, offset int) ([]models.Doctor, int, error)
}

type DoctorUsecase interface {
	GetDoctors(ctx context.Context, page, pageSize int) ([]responses.DoctorResponse, int, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*responses.DoctorResponse, error)
}
