package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// NotFoundError reports a missing record, or one the caller does not own.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

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

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a write that collided with a uniqueness constraint.
type ConflictError struct {
	Resource   string
	Constraint string
}

func (e *ConflictError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("%s already exists", e.Resource)
	}
	return fmt.Sprintf("%s already exists (%s)", e.Resource, e.Constraint)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewConflict(resource, constraint string) error {
	return &ConflictError{Resource: resource, Constraint: constraint}
}
