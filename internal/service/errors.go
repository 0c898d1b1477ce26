package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials indicates a login attempt with a wrong password
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports a malformed or unacceptable field value,
// including category references outside the caller's ownership scope.
// Controllers render it as a 400 with a per-field message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
