package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrCaseNotFound is returned when an operation targets an unknown case id
	ErrCaseNotFound = errors.New("case not found")
	// ErrInvalidCredentials is returned for any failed login or session check
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries user-correctable problems keyed by field name
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.fieldNames() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message joins the field messages into one readable sentence list
func (e *ValidationError) Message() string {
	messages := make([]string, 0, len(e.Fields))
	for _, k := range e.fieldNames() {
		messages = append(messages, e.Fields[k])
	}
	return strings.Join(messages, "; ")
}

func (e *ValidationError) fieldNames() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// add records a message for a field, keeping the first one reported
func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// errOrNil returns nil when no field failed
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
