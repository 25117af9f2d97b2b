package entity

import "errors"

var (
	ErrMissingField      = errors.New("missing required field")
	ErrEmailMismatch     = errors.New("email does not match the signed-in account")
	ErrInvalidTicketType = errors.New("invalid ticket type")
	ErrInvalidAmount     = errors.New("invalid quantity or total price")
	ErrInvalidGuestCount = errors.New("guest count must be a positive integer")
	ErrPasswordTooLong   = errors.New("password is longer than 72 bytes")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateCode      = errors.New("ticket code already issued")
)

var validationErrors = []error{
	ErrMissingField,
	ErrEmailMismatch,
	ErrInvalidTicketType,
	ErrInvalidAmount,
	ErrInvalidGuestCount,
	ErrPasswordTooLong,
}

// IsValidation reports whether err is a malformed-input error that should
// be answered with 400.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
