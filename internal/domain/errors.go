// Package domain holds the quote model and the errors the rest of the
// service speaks in. Nothing here knows about HTTP or any store; adapters map
// these errors onto their own status codes.
package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every typed error below unwraps to exactly one.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrInvalidID   = errors.New("invalid identifier")
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError reports a missing quote, or an empty result where one was
// required (a random pick over no quotes).
type NotFoundError struct {
	Entity string
	ID     string

	// Message, when set, replaces the generated text and is shown to callers.
	Message string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ID != "":
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	default:
		return e.Entity + " not found"
	}
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError reports that entity id does not exist.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewNotFoundErrorWithMessage is NewNotFoundError with a caller-facing message.
func NewNotFoundErrorWithMessage(entity, id, message string) error {
	return &NotFoundError{Entity: entity, ID: id, Message: message}
}

// ConflictError reports a write that collides with stored state, such as a
// duplicate identifier.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}

	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError reports a rejected input. Message is complete on its own
// ("Quote text must be at least 10 characters long") and safe to show.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// InvalidIDError reports an identifier the store could never have issued.
// It is raised before any lookup.
type InvalidIDError struct {
	Entity string
	ID     string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id %q", e.Entity, e.ID)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

func NewInvalidIDError(entity, id string) error {
	return &InvalidIDError{Entity: entity, ID: id}
}

// UnavailableError reports that a dependency (the store, or the remote API
// for clients) could not be reached.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("service %q unavailable", e.Service)
	}

	return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool    { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsInvalidID(err error) bool   { return errors.Is(err, ErrInvalidID) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
