package password

import "errors"

var (
	// ErrInvalidFormData is returned when the form can't be parsed or a field
	// is missing or out of bounds.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrPasswordMismatch is returned when the confirmation differs from the
	// new password.
	ErrPasswordMismatch = errors.New("the new passwords do not match")

	// ErrWrongPassword is returned when the current password is not correct.
	ErrWrongPassword = errors.New("current password is not correct")

	// ErrInternalServerError is returned for unexpected failures.
	ErrInternalServerError = errors.New("internal server error")
)
