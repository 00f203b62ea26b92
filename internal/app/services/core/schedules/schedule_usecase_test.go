package schedules

import (
	"context"
	"testing"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeScheduleStore struct {
	schedules map[string]*models.DoctorSchedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: make(map[string]*models.DoctorSchedule)}
}

func (r *fakeScheduleStore) FindByID(_ context.Context, scheduleID string) (*models.DoctorSchedule, error) {
	schedule, ok := r.schedules[scheduleID]
	if !ok {
		return nil, nil
	}
	copied := *schedule
	return &copied, nil
}

func (r *fakeScheduleStore) FindByDoctorID(_ context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	var result []models.DoctorSchedule
	for _, schedule := range r.schedules {
		if schedule.DoctorID == doctorID {
			result = append(result, *schedule)
		}
	}
	return result, nil
}

func (r *fakeScheduleStore) FindActiveByDoctorAndDay(_ context.Context, doctorID string, dayOfWeek int) ([]models.DoctorSchedule, error) {
	var result []models.DoctorSchedule
	for _, schedule := range r.schedules {
		if schedule.DoctorID == doctorID && schedule.DayOfWeek == dayOfWeek && schedule.IsActive {
			result = append(result, *schedule)
		}
	}
	return result, nil
}

func (r *fakeScheduleStore) CreateSchedule(_ context.Context, schedule *models.DoctorSchedule) error {
	copied := *schedule
	r.schedules[schedule.ID] = &copied
	return nil
}

func (r *fakeScheduleStore) CountOverlapping(_ context.Context, _ string, _ int, _, _ string) (int, error) {
	return 0, nil
}

func (r *fakeScheduleStore) SetActive(_ context.Context, scheduleID string, active bool) error {
	r.schedules[scheduleID].IsActive = active
	return nil
}

type fakeDoctorStore struct {
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorStore) FindByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	copied := *doctor
	return &copied, nil
}

func (r *fakeDoctorStore) FindByUserID(_ context.Context, userID string) (*models.Doctor, error) {
	for _, doctor := range r.doctors {
		if doctor.UserID == userID {
			copied := *doctor
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorStore) FindAll(_ context.Context, _, _ int) ([]models.Doctor, int, error) {
	return nil, 0, nil
}

type scheduleFixture struct {
	usecase      *scheduleUsecase
	schedules    *fakeScheduleStore
	doctorID     string
	doctorUserID string
	otherDoctor  string
	otherUserID  string
}

func newScheduleFixture() *scheduleFixture {
	scheduleRepo := newFakeScheduleStore()
	doctorID := uuid.NewString()
	doctorUserID := uuid.NewString()
	otherDoctor := uuid.NewString()
	otherUserID := uuid.NewString()

	doctorRepo := &fakeDoctorStore{doctors: map[string]*models.Doctor{
		doctorID: {
			ID:          doctorID,
			UserID:      doctorUserID,
			Name:        "dr. Example",
			IsAvailable: true,
		},
		otherDoctor: {
			ID:          otherDoctor,
			UserID:      otherUserID,
			Name:        "dr. Someone Else",
			IsAvailable: true,
		},
	}}

	return &scheduleFixture{
		usecase: &scheduleUsecase{
			ScheduleRepository: scheduleRepo,
			DoctorRepository:   doctorRepo,
			Log:                zap.NewNop(),
		},
		schedules:    scheduleRepo,
		doctorID:     doctorID,
		doctorUserID: doctorUserID,
		otherDoctor:  otherDoctor,
		otherUserID:  otherUserID,
	}
}

func createRequest() *requests.CreateScheduleRequest {
	day := 1
	return &requests.CreateScheduleRequest{
		DayOfWeek: &day,
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}

func assertStatusCode(t *testing.T, err error, expected int) {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok, "expected a CustomError, got %T", err)
	assert.Equal(t, expected, customErr.StatusCode)
}

func TestCreateSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Doctor Manages Own Schedules", func(t *testing.T) {
		fixture := newScheduleFixture()

		response, err := fixture.usecase.CreateSchedule(ctx, fixture.doctorUserID, constvars.RoleDoctor, fixture.doctorID, createRequest())

		assert.NoError(t, err)
		assert.Equal(t, fixture.doctorID, response.DoctorID)
		assert.True(t, response.IsActive)
	})

	t.Run("Doctor Cannot Manage Another Doctor's Schedules", func(t *testing.T) {
		fixture := newScheduleFixture()

		_, err := fixture.usecase.CreateSchedule(ctx, fixture.otherUserID, constvars.RoleDoctor, fixture.doctorID, createRequest())

		assert.Error(t, err)
		assertStatusCode(t, err, 403)
		assert.Empty(t, fixture.schedules.schedules, "no schedule may be created across profiles")
	})

	t.Run("Admin Manages Any Doctor", func(t *testing.T) {
		fixture := newScheduleFixture()

		response, err := fixture.usecase.CreateSchedule(ctx, uuid.NewString(), constvars.RoleAdmin, fixture.doctorID, createRequest())

		assert.NoError(t, err)
		assert.Equal(t, fixture.doctorID, response.DoctorID)
	})

	t.Run("Invalid Time Range", func(t *testing.T) {
		fixture := newScheduleFixture()
		request := createRequest()
		request.StartTime = "10:00"
		request.EndTime = "09:00"

		_, err := fixture.usecase.CreateSchedule(ctx, fixture.doctorUserID, constvars.RoleDoctor, fixture.doctorID, request)

		assertStatusCode(t, err, 400)
	})
}

func TestSetScheduleActive(t *testing.T) {
	ctx := context.Background()

	seedSchedule := func(fixture *scheduleFixture, doctorID string) string {
		scheduleID := uuid.NewString()
		fixture.schedules.schedules[scheduleID] = &models.DoctorSchedule{
			ID:        scheduleID,
			DoctorID:  doctorID,
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "10:00",
			IsActive:  true,
		}
		return scheduleID
	}

	t.Run("Doctor Deactivates Own Slot", func(t *testing.T) {
		fixture := newScheduleFixture()
		scheduleID := seedSchedule(fixture, fixture.doctorID)

		err := fixture.usecase.SetScheduleActive(ctx, fixture.doctorUserID, constvars.RoleDoctor, fixture.doctorID, scheduleID, false)

		assert.NoError(t, err)
		assert.False(t, fixture.schedules.schedules[scheduleID].IsActive)
	})

	t.Run("Another Doctor Is Rejected", func(t *testing.T) {
		fixture := newScheduleFixture()
		scheduleID := seedSchedule(fixture, fixture.doctorID)

		err := fixture.usecase.SetScheduleActive(ctx, fixture.otherUserID, constvars.RoleDoctor, fixture.doctorID, scheduleID, false)

		assertStatusCode(t, err, 403)
		assert.True(t, fixture.schedules.schedules[scheduleID].IsActive)
	})

	t.Run("Admin Deactivates Any Slot", func(t *testing.T) {
		fixture := newScheduleFixture()
		scheduleID := seedSchedule(fixture, fixture.doctorID)

		err := fixture.usecase.SetScheduleActive(ctx, uuid.NewString(), constvars.RoleAdmin, fixture.doctorID, scheduleID, false)

		assert.NoError(t, err)
		assert.False(t, fixture.schedules.schedules[scheduleID].IsActive)
	})

	t.Run("Schedule Of A Different Doctor In The Path", func(t *testing.T) {
		fixture := newScheduleFixture()
		scheduleID := seedSchedule(fixture, fixture.otherDoctor)

		err := fixture.usecase.SetScheduleActive(ctx, fixture.doctorUserID, constvars.RoleDoctor, fixture.doctorID, scheduleID, false)

		assertStatusCode(t, err, 422)
	})

	t.Run("Unknown Schedule", func(t *testing.T) {
		fixture := newScheduleFixture()

		err := fixture.usecase.SetScheduleActive(ctx, fixture.doctorUserID, constvars.RoleDoctor, fixture.doctorID, uuid.NewString(), false)

		assertStatusCode(t, err, 404)
	})
}

var _ contracts.ScheduleRepository = (*fakeScheduleStore)(nil)
var _ contracts.DoctorRepository = (*fakeDoctorStore)(nil)
