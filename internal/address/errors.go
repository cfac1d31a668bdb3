package address

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against conversion failures.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidFormat = errors.New("invalid format")
)

// MissingFieldError reports a semantically required field that was empty or absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidFormatError reports text that failed to match an expected grammar.
type InvalidFormatError struct {
	Message string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("Invalid format: %s", e.Message)
}

func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// MissingField builds a MissingFieldError for field.
func MissingField(field string) error {
	return &MissingFieldError{Field: field}
}

// InvalidFormat builds an InvalidFormatError with a formatted message.
func InvalidFormat(format string, args ...interface{}) error {
	return &InvalidFormatError{Message: fmt.Sprintf(format, args...)}
}
