package session

import "errors"

var (
	ErrMissingFields    = errors.New("please fill in all fields")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	ErrConnection      = errors.New("connection error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrBusy            = errors.New("request already in progress")
)

// ValidationError is a form rejected locally. Field names the first offending
// input using its API name.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + " (" + e.Field + ")"
}

func (e *ValidationError) Unwrap() error { return e.Err }
