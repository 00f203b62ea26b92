package doctors

import (
	"context"
	"sync"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/responses"
	"medika-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Log              *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository: doctorRepository,
			Log:              logger,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) GetDoctors(ctx context.Context, page, pageSize int) ([]responses.DoctorResponse, int, error) {
	offset := (page - 1) * pageSize
	doctors, total, err := uc.DoctorRepository.FindAll(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		result = append(result, buildDoctorResponse(&doctors[i]))
	}
	return result, total, nil
}

func (uc *doctorUsecase) GetDoctorByID(ctx context.Context, doctorID string) (*responses.DoctorResponse, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	response := buildDoctorResponse(doctor)
	return &response, nil
}

func buildDoctorResponse(doctor *models.Doctor) responses.DoctorResponse {
	return responses.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Specialization:  doctor.Specialization,
		ConsultationFee: doctor.ConsultationFee,
		IsAvailable:     doctor.IsAvailable,
		TotalPatients:   doctor.TotalPatients,
	}
}
