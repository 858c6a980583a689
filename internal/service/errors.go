package service

import (
	"errors"
	"strings"
)

// ErrInvalidFieldType is returned when a requested form table type is not
// one of the six supported discriminators.
var ErrInvalidFieldType = errors.New("unsupported form table type")

// ValidationError carries the user-facing reasons a create or update was
// rejected. It is a reported outcome, not a server fault.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
