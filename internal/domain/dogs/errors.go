package dogs

import (
	"errors"

	"barkbuddy/internal/platform/validate"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dog not found")
)

// ValidationError describe el primer campo inválido. errors.Is(err, ErrInvalidInput) == true.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func fromValidator(err error) error {
	return &ValidationError{Field: validate.Field(err), Msg: validate.Message(err)}
}
