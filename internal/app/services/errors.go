package services

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed or missing caller input. Controllers map it
// to 400 and it is never retried.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

var (
	ErrStorageDisabled    = errors.New("object storage is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminRequired      = errors.New("access denied, admin privileges required")
)
