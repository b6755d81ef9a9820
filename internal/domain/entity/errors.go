package entity

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition indicates a toggle that asks for the state the
	// relationship is already in.
	ErrInvalidTransition = errors.New("invalid relationship transition")

	// ErrSelfReference indicates an actor targeting itself on a relation
	// that forbids it.
	ErrSelfReference = errors.New("self reference rejected")

	// ErrConcurrentModification indicates that an entity changed between
	// read and write.
	ErrConcurrentModification = errors.New("entity was modified concurrently")
)

// Kind names an entity type in lookups and error reports.
type Kind string

const (
	KindUser     Kind = "user"
	KindArticle  Kind = "article"
	KindCategory Kind = "category"
)

// NotFoundError reports which entity could not be resolved.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity Kind
	Key    string
}

// NewNotFound builds a NotFoundError keyed by a numeric identifier.
func NewNotFound(kind Kind, id int64) *NotFoundError {
	return &NotFoundError{Entity: kind, Key: strconv.FormatInt(id, 10)}
}

// NewNotFoundByName builds a NotFoundError keyed by a name.
func NewNotFoundByName(kind Kind, name string) *NotFoundError {
	return &NotFoundError{Entity: kind, Key: name}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TransitionError reports a rejected no-op toggle.
// It matches ErrInvalidTransition with errors.Is.
type TransitionError struct {
	Relation RelationKind
	Present  bool
}

func (e *TransitionError) Error() string {
	if e.Present {
		return fmt.Sprintf("invalid transition: %s already exists", e.Relation)
	}
	return fmt.Sprintf("invalid transition: %s not found to remove", e.Relation)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
