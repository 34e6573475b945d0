package booking

import (
	"time"

	"clinic-booking/internal/schedule"
)

// FindPatientConflict returns the appointment that blocks the candidate booking
// for the patient, or nil if the booking may proceed.
//
// A non-canceled appointment of the patient on the same calendar date whose
// slot starts at the same time collides, whichever doctor it belongs to. The
// slot end is not compared.
func FindPatientConflict(existing []*Appointment, date time.Time, slotStart string) *Appointment {
	day := DateOnly(date)
	for _, appointment := range existing {
		if appointment.Status == StatusCanceled {
			continue
		}
		if !DateOnly(appointment.Date).Equal(day) {
			continue
		}
		if appointment.Slot.Start == slotStart {
			return appointment
		}
	}
	return nil
}

// FindDoctorConflict returns the appointment that occupies the candidate slot
// on the doctor's calendar, or nil if the slot is free.
//
// A non-canceled appointment of the doctor on the same calendar date with the
// same slot start and end collides. The appointment identified by excludeID,
// the one being moved, is ignored.
func FindDoctorConflict(existing []*Appointment, date time.Time, slot schedule.Slot, excludeID int64) *Appointment {
	day := DateOnly(date)
	for _, appointment := range existing {
		if appointment.ID == excludeID {
			continue
		}
		if appointment.Status == StatusCanceled {
			continue
		}
		if !DateOnly(appointment.Date).Equal(day) {
			continue
		}
		if appointment.Slot.Start == slot.Start && appointment.Slot.End == slot.End {
			return appointment
		}
	}
	return nil
}
