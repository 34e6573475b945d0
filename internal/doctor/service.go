package doctor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinic-booking/internal/apierrors"
	"clinic-booking/internal/auth"
	"clinic-booking/internal/configs"
	"clinic-booking/internal/database"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

// Service determines the methods used to manage doctor profiles.
type Service interface {

	// ListDoctors lists all doctors with their weekly schedules.
	ListDoctors(ctx context.Context) ([]*Doctor, error)

	// GetDoctor returns the doctor with the given UUID and its weekly schedule.
	GetDoctor(ctx context.Context, doctorUUID uuid.UUID) (*Doctor, error)

	// GetBookedSlots lists the occupied slots of the given doctor's calendar.
	GetBookedSlots(ctx context.Context, doctorUUID uuid.UUID) ([]*BookedSlot, error)

	// GetStats aggregates the authenticated doctor's appointment history.
	GetStats(ctx context.Context, user auth.User) (*StatsSnapshot, error)

	// UpdateAvailability replaces the authenticated doctor's weekly
	// availability, normalizing and validating the declared slots first.
	UpdateAvailability(ctx context.Context, user auth.User, update AvailabilityUpdate) (*Doctor, error)
}

type defaultService struct {
	repository Repository
	config     configs.Config
	now        func() time.Time
}

// NewService creates a new doctor service.
func NewService(config configs.Config, dbConn database.Connection) Service {
	return &defaultService{
		config:     config,
		repository: newRepository(dbConn),
		now:        time.Now,
	}
}

func (d defaultService) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	doctors, err := d.repository.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	for _, doctor := range doctors {
		week, err := d.repository.GetWeekSchedule(ctx, doctor.ID)
		if err != nil {
			return nil, fmt.Errorf("an unexpected error occurred: %w", err)
		}
		doctor.SetSchedule(week)
	}
	return doctors, nil
}

func (d defaultService) GetDoctor(ctx context.Context, doctorUUID uuid.UUID) (*Doctor, error) {
	doctor, err := d.repository.FindDoctorByUUID(ctx, doctorUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	week, err := d.repository.GetWeekSchedule(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	doctor.SetSchedule(week)
	return doctor, nil
}

func (d defaultService) GetBookedSlots(ctx context.Context, doctorUUID uuid.UUID) ([]*BookedSlot, error) {
	doctor, err := d.repository.FindDoctorByUUID(ctx, doctorUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	slots, err := d.repository.ListBookedSlots(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return slots, nil
}

func (d defaultService) GetStats(ctx context.Context, user auth.User) (*StatsSnapshot, error) {
	doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	records, err := d.repository.ListAppointmentRecords(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	snapshot := ComputeStats(records, d.now())
	return &snapshot, nil
}

func (d defaultService) UpdateAvailability(ctx context.Context, user auth.User, update AvailabilityUpdate) (*Doctor, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotADoctor), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	week, err := schedule.Normalize(update.AvailableDays, update.TimeSlots)
	if err != nil {
		return nil, err
	}
	if err = d.repository.ReplaceAvailability(ctx, doctor.ID, week, update.Fee); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if update.Fee != nil {
		doctor.Fee = *update.Fee
	}
	doctor.SetSchedule(week)
	return doctor, nil
}
