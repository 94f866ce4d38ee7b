package entities

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every failing field of a document input, not just the first one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge appends the failures of other, prefixing each field name.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		name := f.Field
		if prefix != "" {
			name = prefix + "." + name
		}
		e.Add(name, f.Message)
	}
}

// Err returns nil when no field failed, so callers can `return v.Err()`.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// HasField reports whether field is among the failures.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// IllegalStateError is returned when an operation is not allowed in the document's current state.
type IllegalStateError struct {
	Op     string
	Status string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s not allowed while document is %s", e.Op, e.Status)
}

// InvalidTransitionError is returned for lifecycle moves the state machine does not list.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// PreconditionError is returned when a legal transition is missing a prerequisite.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s precondition failed: %s", e.Op, e.Reason)
}

// RenderError wraps a PDF rendering collaborator failure. Always retryable.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string   { return fmt.Sprintf("pdf render failed: %v", e.Err) }
func (e *RenderError) Unwrap() error   { return e.Err }
func (e *RenderError) Retryable() bool { return true }

// DeliveryError wraps a delivery collaborator failure. Always retryable.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string   { return fmt.Sprintf("delivery failed: %v", e.Err) }
func (e *DeliveryError) Unwrap() error   { return e.Err }
func (e *DeliveryError) Retryable() bool { return true }

// NotFoundError is returned when a document does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConflictError is returned when a compare-and-set write loses against a concurrent writer.
type ConflictError struct {
	Kind string
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Kind, e.ID)
}

// ForbiddenError is returned when the acting user lacks the role an operation needs.
type ForbiddenError struct {
	Op      string
	ActorID string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("actor %q may not %s", e.ActorID, e.Op)
}

// ErrVersionConflict is returned by repositories when the expected version does not match.
var ErrVersionConflict = errors.New("version conflict")

// IsRetryable reports whether err is a collaborator failure the operator may retry.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}
