// Package doctor contains handlers, services and structures used to expose the
// doctor directory, weekly availability and per-doctor statistics.
package doctor

import (
	"time"

	"clinic-booking/internal/apierrors"
	"clinic-booking/internal/booking"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

type Doctor struct {
	ID             int64     `json:"-" dbfield:"id"`
	UserID         int64     `json:"-" dbfield:"user_id"`
	UUID           uuid.UUID `json:"uuid" dbfield:"uuid"`
	Name           string    `json:"name" dbfield:"name"`
	Specialization string    `json:"specialization" dbfield:"specialization"`
	Experience     int32     `json:"experience" dbfield:"experience"`
	Fee            float64   `json:"fee" dbfield:"fee"`

	AvailableDays []string                   `json:"availableDays"`
	TimeSlots     map[string][]schedule.Slot `json:"timeSlots"`
}

// SetSchedule fills the doctor's available days and time slots from the
// canonical weekly table.
func (d *Doctor) SetSchedule(week schedule.Week) {
	d.AvailableDays = make([]string, 0, schedule.DaysPerWeek)
	d.TimeSlots = make(map[string][]schedule.Slot)
	for _, day := range week.Days() {
		d.AvailableDays = append(d.AvailableDays, day.String())
		d.TimeSlots[day.String()] = week.SlotsOn(day)
	}
}

// availabilityRow is a stored weekly slot of a doctor.
type availabilityRow struct {
	Weekday   int    `dbfield:"weekday"`
	SlotStart string `dbfield:"slot_start"`
	SlotEnd   string `dbfield:"slot_end"`
}

// BookedSlot is an occupied slot on a doctor's calendar, used by clients to
// filter out taken slots when booking.
type BookedSlot struct {
	Date      time.Time     `json:"date" dbfield:"date"`
	SlotStart string        `json:"-" dbfield:"slot_start"`
	SlotEnd   string        `json:"-" dbfield:"slot_end"`
	Slot      schedule.Slot `json:"slotTime"`
}

// AppointmentRecord is the projection of an appointment used by the
// statistics aggregation.
type AppointmentRecord struct {
	ID     int64          `dbfield:"id"`
	Date   time.Time      `dbfield:"date"`
	Status booking.Status `dbfield:"status"`
}

// AvailabilityUpdate is the payload to replace a doctor's weekly availability.
// A nil Fee keeps the current consultation fee.
type AvailabilityUpdate struct {
	Fee           *float64                   `json:"fee,omitempty"`
	AvailableDays []string                   `json:"availableDays"`
	TimeSlots     map[string][]schedule.Slot `json:"timeSlots"`
}

// Validate checks if the given update is valid.
func (a AvailabilityUpdate) Validate() error {
	if a.Fee != nil && *a.Fee < 0 {
		return apierrors.NewValidationError("fee", "must not be negative")
	}
	return nil
}
