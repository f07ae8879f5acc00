package prefstore

import "errors"

// ErrRejected is returned when the persistence endpoint refuses a submission.
var ErrRejected = errors.New("settings submission rejected")
