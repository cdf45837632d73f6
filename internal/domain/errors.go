package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidReference indicates that a payload references a row that does
	// not exist (a foreign-key violation reported by the store). It is kept
	// separate from ErrNotFound so the HTTP layer can render the "Invalid
	// input" message the API contract requires for referential violations.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrAlreadyExists indicates that an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrStoreInconsistent indicates the store violated an invariant this
	// layer relies on, such as a deleted row still being present on re-read.
	// Always a 500-class fault, never a normal response.
	ErrStoreInconsistent = errors.New("store inconsistent")
)

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError provides details about a not found entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ReferenceError provides details about a referential violation: the payload
// named a related row (author, topic, article) that does not exist.
type ReferenceError struct {
	Entity string
	Detail string
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference: %s", e.Entity, e.Detail)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// AlreadyExistsError provides details about a duplicate entity.
type AlreadyExistsError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewReferenceError creates a new ReferenceError.
func NewReferenceError(entity, detail string) *ReferenceError {
	return &ReferenceError{Entity: entity, Detail: detail}
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(entity, id string) *AlreadyExistsError {
	return &AlreadyExistsError{Entity: entity, ID: id}
}
