package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrJobNotFound  = errors.New("job not found")
	ErrBusy         = errors.New("operation already running")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// ValidationError carries per-field problems back to the caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
