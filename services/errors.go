package services

import (
	"errors"
	"fmt"

	"github.com/atelier-studio/atelier-api/models"
)

// ValidationError means the input for a single operation was malformed or out
// of range. The caller should correct the request and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferentialError means a referenced entity does not exist or fails an
// ownership check (e.g. a measurement belonging to a different client).
type ReferentialError struct {
	Entity   string
	ID       string
	NotFound bool // true: missing entity; false: ownership mismatch
	Message  string
}

func (e *ReferentialError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.NotFound {
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s %s failed ownership check", e.Entity, e.ID)
}

// InvalidTransitionError means an attempted status change violates the
// forward-only lifecycle policy. It is never silently coerced.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ConflictError means a concurrent mutation won the race. The caller should
// reload fresh state before retrying, not resubmit the same request.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ErrInvalidCredentials is returned by login when the email or password is wrong
var ErrInvalidCredentials = errors.New("invalid email or password")

func notFound(entity, id string) error {
	return &ReferentialError{Entity: entity, ID: id, NotFound: true}
}
