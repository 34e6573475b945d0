// Package booking contains handlers, services and structures used to manage
// appointments: booking, rescheduling and their status lifecycle.
package booking

import (
	"time"

	"clinic-booking/internal/apierrors"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an appointment.
type Status string

const (
	// StatusScheduled is declared for compatibility with stored data but is
	// never assigned by the current flows.
	StatusScheduled   Status = "scheduled"
	StatusBooked      Status = "booked"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCanceled    Status = "canceled"
)

type Patient struct {
	ID     int64     `json:"-" dbfield:"id"`
	UserID int64     `json:"-" dbfield:"user_id"`
	UUID   uuid.UUID `json:"uuid" dbfield:"uuid"`
	Name   string    `json:"name" dbfield:"name"`
	Phone  string    `json:"phone" dbfield:"phone"`
}

type Doctor struct {
	ID             int64     `json:"-" dbfield:"id"`
	UserID         int64     `json:"-" dbfield:"user_id"`
	UUID           uuid.UUID `json:"uuid" dbfield:"uuid"`
	Name           string    `json:"name" dbfield:"name"`
	Specialization string    `json:"specialization" dbfield:"specialization"`
	Experience     int32     `json:"experience" dbfield:"experience"`
	Fee            float64   `json:"fee" dbfield:"fee"`
}

// Appointment holds a booked slot. Date carries only the calendar day, its
// time of day is always midnight. Appointments are never deleted: canceling
// and completing are status writes.
type Appointment struct {
	ID              int64         `json:"-" dbfield:"id"`
	UUID            uuid.UUID     `json:"uuid" dbfield:"uuid"`
	DoctorID        int64         `json:"-" dbfield:"doctor_id"`
	PatientID       int64         `json:"-" dbfield:"patient_id"`
	Date            time.Time     `json:"date" dbfield:"date"`
	SlotStart       string        `json:"-" dbfield:"slot_start"`
	SlotEnd         string        `json:"-" dbfield:"slot_end"`
	Slot            schedule.Slot `json:"slotTime"`
	Status          Status        `json:"status" dbfield:"status"`
	RescheduleCount int32         `json:"rescheduleCount" dbfield:"reschedule_count"`
}

// DateOnly truncates the given time to its calendar day, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BookingRequest is the payload to book a new appointment.
type BookingRequest struct {
	DoctorUUID uuid.UUID     `json:"doctor_uuid"`
	Date       string        `json:"date"`
	Slot       schedule.Slot `json:"slotTime"`
	Day        string        `json:"day,omitempty"`
}

// Validate checks if the given request is valid.
func (b BookingRequest) Validate() error {
	if b.DoctorUUID == (uuid.UUID{}) {
		return apierrors.NewValidationError("doctor_uuid", "required")
	}
	if b.Date == "" {
		return apierrors.NewValidationError("date", "required")
	}
	if err := b.Slot.Validate(); err != nil {
		return apierrors.NewValidationError("slotTime", err.Error())
	}
	return nil
}

// ParseDate parses the request date into a calendar day.
func (b BookingRequest) ParseDate() (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", b.Date, time.Local)
	if err != nil {
		return time.Time{}, apierrors.NewValidationError("date", "invalid, expected YYYY-MM-DD")
	}
	return DateOnly(date), nil
}

// RescheduleRequest is the payload to move an appointment to a new slot.
type RescheduleRequest struct {
	Date string        `json:"date"`
	Slot schedule.Slot `json:"slotTime"`
}

// Validate checks if the given request is valid.
func (r RescheduleRequest) Validate() error {
	if r.Date == "" {
		return apierrors.NewValidationError("date", "required")
	}
	if err := r.Slot.Validate(); err != nil {
		return apierrors.NewValidationError("slotTime", err.Error())
	}
	return nil
}

// ParseDate parses the request date into a calendar day.
func (r RescheduleRequest) ParseDate() (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, time.Local)
	if err != nil {
		return time.Time{}, apierrors.NewValidationError("date", "invalid, expected YYYY-MM-DD")
	}
	return DateOnly(date), nil
}
