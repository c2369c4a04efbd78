package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when an event id does not resolve to a record.
var ErrNotFound = errors.New("event not found")

// ValidationError reports the fields that made a write unacceptable.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		parts = append(parts, field)
	}
	sort.Strings(parts)
	for i, field := range parts {
		parts[i] = field + " " + e.Fields[field]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(verrs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "oneof":
			fields[fe.Field()] = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}

// StorageError wraps a failure of the backing store so the API layer can
// distinguish it from validation and lookup errors.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
