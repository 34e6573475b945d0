package booking

import "github.com/google/uuid"

const (
	ErrDoctorNotFound          = "doctor not found"
	ErrAppointmentNotFound     = "appointment not found"
	ErrInvalidIdentifier       = "invalid identifier"
	ErrOnlyPatientCanBook      = "only a patient can book an appointment"
	ErrOnlyDoctorCanComplete   = "only a doctor can complete an appointment"
	ErrNotAppointmentOwner     = "appointment does not belong to the requester"
	ErrAlreadyBookedDetail     = "you already have an appointment at this time"
	ErrSlotAlreadyBookedDetail = "slot already booked"
)

// AlreadyBookedError is returned when the patient already holds an appointment
// starting at the requested time on the requested date.
type AlreadyBookedError struct {
	ExistingUUID uuid.UUID `json:"existing_appointment"`
}

func (e *AlreadyBookedError) Error() string {
	return ErrAlreadyBookedDetail
}

// SlotConflictError is returned when the doctor already has a non-canceled
// appointment occupying the requested slot.
type SlotConflictError struct {
	ExistingUUID uuid.UUID `json:"existing_appointment"`
}

func (e *SlotConflictError) Error() string {
	return ErrSlotAlreadyBookedDetail
}

// NotFoundError is returned when the referenced appointment does not exist.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return ErrAppointmentNotFound
}
