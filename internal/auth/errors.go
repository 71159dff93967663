package auth

import "errors"

var (
	// ErrUsernameTaken means the requested username is already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers every login failure: wrong password,
	// unknown username, or an anomalous number of matching account rows.
	ErrInvalidCredentials = errors.New("invalid username and/or password")
)

// ValidationError reports the first registration rule that was not met.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
