package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrConstraintViolation  = errors.New("constraint violation")
)

// FieldError is one unmet form constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// unknownEventField is reported when event_id names no event.
var unknownEventField = FieldError{Field: "event_id", Message: "event_id does not match any event"}

// UnknownEventError is the validation failure for an event id that names no event,
// including one removed after the form was validated.
func UnknownEventError() *ValidationError {
	return &ValidationError{Fields: []FieldError{unknownEventField}}
}

// ValidationError lists every unmet constraint of a form, in check order.
// It is user-fixable and is returned before any I/O happens.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is lets callers match validation failures with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Messages returns the field messages in check order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// HasField reports whether field is among the failed constraints.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// UploadError means the receipt could not be stored. Nothing was written to the record store.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload receipt %q: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError means the registration row could not be written. No message was composed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist registration (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ResolutionError means a requested event id does not exist. Retrying will not help;
// hosts redirect to the event list instead of showing the form.
type ResolutionError struct {
	EventID string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("event %q not found", e.EventID)
}

func (e *ResolutionError) Unwrap() error { return ErrNotFound }
