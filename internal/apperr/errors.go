package apperr

import "errors"

var (
	// ErrNotFound signals a lookup miss (item, path, or navigation
	// target). Callers treat it as a normal outcome, not a failure.
	ErrNotFound = errors.New("not found")
)
