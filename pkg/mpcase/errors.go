package mpcase

import (
	"errors"
	"fmt"
)

// ValidationError marks a client-fault input problem: missing fields, bad
// shapes, unknown references. The API layer maps it to HTTP 400, everything
// else stays a 500.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Invalidf builds a ValidationError with a formatted message.
func Invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
