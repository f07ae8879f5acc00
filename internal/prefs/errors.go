package prefs

import "errors"

var (
	// ErrMalformed is returned when settings data is not a JSON object.
	ErrMalformed = errors.New("malformed settings data")

	// ErrUnknownField is returned when a field name is not part of the record.
	ErrUnknownField = errors.New("unknown settings field")
)
