package booking

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinic-booking/internal/apierrors"
	"clinic-booking/internal/auth"
	"clinic-booking/internal/configs"
	"clinic-booking/internal/database"
	"clinic-booking/internal/metrics"

	"github.com/google/uuid"
)

// Booker determines the methods available to create appointments.
type Booker interface {

	// Book books a new appointment for the authenticated patient.
	Book(ctx context.Context, user auth.User, request BookingRequest) (*Appointment, error)
}

// Lifecycle determines the status transitions available on an appointment.
type Lifecycle interface {

	// Complete marks the appointment as completed. The write is unconditional:
	// there is no guard against already terminal statuses.
	Complete(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) (*Appointment, error)

	// Cancel marks the appointment as canceled. Calling it again is a no-op
	// that succeeds.
	Cancel(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) (*Appointment, error)

	// Reschedule moves the appointment to a new date and slot, re-checking the
	// doctor's calendar and incrementing the reschedule counter.
	Reschedule(ctx context.Context, user auth.User, appointmentUUID uuid.UUID, request RescheduleRequest) (*Appointment, error)
}

// Reader determines the methods available to read appointments.
type Reader interface {

	// GetAppointment returns the appointment with the given UUID.
	GetAppointment(ctx context.Context, appointmentUUID uuid.UUID) (*Appointment, error)

	// ListPatientAppointments lists the authenticated patient's appointments.
	ListPatientAppointments(ctx context.Context, user auth.User) ([]*Appointment, error)

	// ListDoctorAppointments lists the authenticated doctor's appointments.
	ListDoctorAppointments(ctx context.Context, user auth.User) ([]*Appointment, error)

	// CountActiveOn counts the non-canceled appointments on the given date.
	CountActiveOn(ctx context.Context, date time.Time) (int, error)
}

// Service determines the methods used to manage appointments.
type Service interface {
	Booker
	Lifecycle
	Reader
}

type defaultService struct {
	repository Repository
	config     configs.Config
}

// NewService creates a new booking service.
func NewService(config configs.Config, dbConn database.Connection) Service {
	return &defaultService{
		config:     config,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) Book(ctx context.Context, user auth.User, request BookingRequest) (*Appointment, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	date, err := request.ParseDate()
	if err != nil {
		return nil, err
	}
	patient, err := d.repository.FindPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if patient == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyPatientCanBook), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	doctor, err := d.repository.FindDoctorByUUID(ctx, request.DoctorUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	appointment := &Appointment{
		UUID:            uuid.New(),
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		Date:            date,
		Slot:            request.Slot,
		SlotStart:       request.Slot.Start,
		SlotEnd:         request.Slot.End,
		Status:          StatusBooked,
		RescheduleCount: 0,
	}
	err = d.repository.CreateAppointment(ctx, appointment, func(existing []*Appointment) error {
		if conflict := FindPatientConflict(existing, date, request.Slot.Start); conflict != nil {
			return &AlreadyBookedError{ExistingUUID: conflict.UUID}
		}
		return nil
	})
	if err != nil {
		if alreadyBooked, isConflict := err.(*AlreadyBookedError); isConflict {
			metrics.IncBookingConflicted("book")
			return nil, alreadyBooked
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	metrics.IncBookingAccepted("book")
	return appointment, nil
}

func (d defaultService) Reschedule(ctx context.Context, user auth.User, appointmentUUID uuid.UUID, request RescheduleRequest) (*Appointment, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	newDate, err := request.ParseDate()
	if err != nil {
		return nil, err
	}
	patient, err := d.repository.FindPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, &NotFoundError{}
	}
	if patient == nil || appointment.PatientID != patient.ID {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentOwner), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	err = d.repository.RescheduleAppointment(ctx, appointment, newDate, request.Slot, StatusRescheduled, func(existing []*Appointment) error {
		if conflict := FindDoctorConflict(existing, newDate, request.Slot, appointment.ID); conflict != nil {
			return &SlotConflictError{ExistingUUID: conflict.UUID}
		}
		return nil
	})
	if err != nil {
		if slotConflict, isConflict := err.(*SlotConflictError); isConflict {
			metrics.IncBookingConflicted("reschedule")
			return nil, slotConflict
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	metrics.IncBookingAccepted("reschedule")
	return appointment, nil
}

func (d defaultService) Complete(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) (*Appointment, error) {
	doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyDoctorCanComplete), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, &NotFoundError{}
	}
	if appointment.DoctorID != doctor.ID {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentOwner), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	if err = d.repository.UpdateStatus(ctx, appointment.ID, StatusCompleted); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	appointment.Status = StatusCompleted
	return appointment, nil
}

func (d defaultService) Cancel(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) (*Appointment, error) {
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, &NotFoundError{}
	}
	isOwner, err := d.isOwner(ctx, user, appointment)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if !isOwner {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentOwner), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	if err = d.repository.UpdateStatus(ctx, appointment.ID, StatusCanceled); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	appointment.Status = StatusCanceled
	return appointment, nil
}

// isOwner checks if the user is the patient or the doctor of the appointment.
func (d defaultService) isOwner(ctx context.Context, user auth.User, appointment *Appointment) (bool, error) {
	switch user.Role {
	case auth.PatientRole:
		patient, err := d.repository.FindPatientByUserID(ctx, user.ID)
		if err != nil {
			return false, err
		}
		return patient != nil && patient.ID == appointment.PatientID, nil
	case auth.DoctorRole:
		doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
		if err != nil {
			return false, err
		}
		return doctor != nil && doctor.ID == appointment.DoctorID, nil
	}
	return false, nil
}

func (d defaultService) GetAppointment(ctx context.Context, appointmentUUID uuid.UUID) (*Appointment, error) {
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, &NotFoundError{}
	}
	return appointment, nil
}

func (d defaultService) ListPatientAppointments(ctx context.Context, user auth.User) ([]*Appointment, error) {
	patient, err := d.repository.FindPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if patient == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyPatientCanBook), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	return d.repository.ListByPatient(ctx, patient.ID)
}

func (d defaultService) ListDoctorAppointments(ctx context.Context, user auth.User) ([]*Appointment, error) {
	doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyDoctorCanComplete), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	return d.repository.ListByDoctor(ctx, doctor.ID)
}

func (d defaultService) CountActiveOn(ctx context.Context, date time.Time) (int, error) {
	return d.repository.CountActiveOn(ctx, date)
}
