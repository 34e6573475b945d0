package auth

import (
	"clinic-booking/internal/apierrors"
	"clinic-booking/internal/schedule"

	"github.com/google/uuid"
)

type Role string

const (
	PatientRole Role = "PATIENT"
	DoctorRole  Role = "DOCTOR"
)

type Credentials struct {
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// Validate validates if the credentials given are valid.
func (c Credentials) Validate() error {
	if c.Phone == "" {
		return apierrors.NewValidationError("phone", "required")
	}
	if c.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	return nil
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type,omitempty"`
}

// Validate validates if the tokens given are valid.
func (c Tokens) Validate() error {
	if c.AccessToken == "" {
		return apierrors.NewValidationError("access_token", "required")
	}
	if c.RefreshToken == "" {
		return apierrors.NewValidationError("refresh_token", "required")
	}
	if c.GrantType == "" {
		return apierrors.NewValidationError("grant_type", "required")
	}
	if c.GrantType != "refresh_token" {
		return apierrors.NewValidationError("grant_type", "invalid")
	}
	return nil
}

type User struct {
	ID       int64     `json:"-" dbfield:"id"`
	UUID     uuid.UUID `json:"uuid" dbfield:"uuid"`
	Phone    string    `json:"phone" dbfield:"phone"`
	Password string    `json:"password,omitempty" dbfield:"password"`
	Role     Role      `json:"role" dbfield:"role"`
}

// PatientRegistration is the payload to register a new patient account.
type PatientRegistration struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate validates if the registration given is valid.
func (r PatientRegistration) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name", "required")
	}
	if r.Phone == "" {
		return apierrors.NewValidationError("phone", "required")
	}
	if r.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	return nil
}

// DoctorRegistration is the payload to register a new doctor account, optionally
// carrying an initial weekly availability.
type DoctorRegistration struct {
	Name           string                     `json:"name"`
	Phone          string                     `json:"phone"`
	Password       string                     `json:"password"`
	Experience     int32                      `json:"experience"`
	Specialization string                     `json:"specialization"`
	Fee            float64                    `json:"fee"`
	AvailableDays  []string                   `json:"availableDays"`
	TimeSlots      map[string][]schedule.Slot `json:"availableTimeSlots"`
}

// Validate validates if the registration given is valid.
func (r DoctorRegistration) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name", "required")
	}
	if r.Phone == "" {
		return apierrors.NewValidationError("phone", "required")
	}
	if r.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	if r.Specialization == "" {
		return apierrors.NewValidationError("specialization", "required")
	}
	if r.Experience < 0 {
		return apierrors.NewValidationError("experience", "invalid")
	}
	if r.Fee < 0 {
		return apierrors.NewValidationError("fee", "invalid")
	}
	return nil
}
