// Package apperr defines the error types shared across the service and
// storage layers. Callers distinguish failure scenarios with errors.As:
// a ValidationError means the input itself is bad and carries every field
// problem at once, NotFoundError / DuplicateKeyError / ReferentialConflictError
// map to storage outcomes, InvalidStateError signals an illegal vehicle
// status transition, and StorageFault wraps an infrastructure failure that
// already caused a full rollback.
package apperr

import (
	"fmt"
	"strings"
)

// ValidationError accumulates every field problem of one operation in
// input order, so the presentation layer can show the complete list in
// a single pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validation builds a ValidationError from the non-empty messages given.
func Validation(messages ...string) *ValidationError {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		if m != "" {
			out = append(out, m)
		}
	}
	return &ValidationError{Messages: out}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// DuplicateKeyError reports a uniqueness violation on create.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Field, e.Value)
}

// InvalidStateError reports an illegal status transition. Current always
// names the state the vehicle actually is in.
type InvalidStateError struct {
	Plate   string
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("vehicle %s cannot change state (current status: %s)", e.Plate, e.Current)
}

// ReferentialConflictError reports a delete blocked by rental history.
type ReferentialConflictError struct {
	Entity string
	Key    string
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("%s %q has rental history and cannot be removed", e.Entity, e.Key)
}

// StorageFault wraps an underlying store failure. The originating
// transaction has been rolled back by the time it is returned.
type StorageFault struct {
	Err error
}

func (e *StorageFault) Error() string {
	return fmt.Sprintf("storage fault: %v", e.Err)
}

func (e *StorageFault) Unwrap() error { return e.Err }
