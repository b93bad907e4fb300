package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrTransport marks failures of the backing store (unreachable, dropped connection, timeout).
	// Callers may retry.
	ErrTransport          = errors.New("store unavailable")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Precondition failures. Each wraps ErrPreconditionFailed so callers that only care about the
// taxonomy can match on that.
var (
	ErrForbidden          = fmt.Errorf("%w: caller is not an admin", ErrPreconditionFailed)
	ErrProfileIncomplete  = fmt.Errorf("%w: profile is not completed", ErrPreconditionFailed)
	ErrRegistrationClosed = fmt.Errorf("%w: registration is closed for this event", ErrPreconditionFailed)
	ErrInvalidTransition  = fmt.Errorf("%w: transition not allowed from current status", ErrPreconditionFailed)
	ErrNotOwner           = fmt.Errorf("%w: registration belongs to another profile", ErrPreconditionFailed)
)

// ValidationError carries per-field messages. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether no field messages were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
