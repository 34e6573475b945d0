package auth

// UnauthorizedError represents the errors returned if the user is not authorized.
type UnauthorizedError struct{}

func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{}
}

func (v UnauthorizedError) Error() string {
	return "not authorized"
}

// PhoneAlreadyRegisteredError is returned when a registration reuses a phone number.
type PhoneAlreadyRegisteredError struct{}

func NewPhoneAlreadyRegisteredError() *PhoneAlreadyRegisteredError {
	return &PhoneAlreadyRegisteredError{}
}

func (v PhoneAlreadyRegisteredError) Error() string {
	return "phone number already registered"
}
