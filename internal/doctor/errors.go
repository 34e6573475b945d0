package doctor

const (
	ErrDoctorNotFound    = "doctor not found"
	ErrInvalidIdentifier = "invalid identifier"
	ErrNotADoctor        = "only a doctor can update its availability"
	ErrInvalidDate       = "invalid date reference"
)
