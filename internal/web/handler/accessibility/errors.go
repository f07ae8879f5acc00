package accessibility

import "errors"

var (
	// ErrMalformedBody is returned for submissions that carry no settings object.
	ErrMalformedBody = errors.New("malformed settings data")

	// ErrPersist is returned when the tier could not store the record.
	ErrPersist = errors.New("can't persist settings")
)
