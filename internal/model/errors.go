package model

import (
	"errors"
	"fmt"
)

// InputError rejects a whole engine call: malformed date range, unknown
// timezone, negative budget. No partial computation happens after one.
// Sparse or empty data is deliberately NOT an input error.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewInputError builds an InputError for the given field.
func NewInputError(field, format string, args ...any) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
