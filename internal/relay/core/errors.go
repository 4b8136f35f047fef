package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Domain specific errors
var (
	// Caller errors
	ErrInvalidBody           = errors.New("invalid body")
	ErrRequiredFieldsMissing = errors.New("both receiver and message are required")

	// Deployment errors
	ErrServerNotConfigured = errors.New("server not configured (missing token or chat id)")
)

type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error classified under err
func NewValidationError(field, message string, err error) ValidationError {
	return ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// UpstreamError is returned when Telegram answered but refused the message
type UpstreamError struct {
	StatusCode  int
	Description string
	Payload     json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("telegram api error: status %d: %s", e.StatusCode, e.Description)
}
