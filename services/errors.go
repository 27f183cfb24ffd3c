package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ValidationError means a precondition for the requested action is unmet.
// The message is user-displayable and names the specific failed condition.
// Validation happens before any write; a ValidationError guarantees
// nothing was persisted.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given code and message
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// ConflictError means a scheduling overlap or uniqueness violation. When
// raised inside a side effect it is surfaced as a warning and does not
// undo the primary write.
type ConflictError struct {
	Code           string
	Message        string
	ConflictingID  string
	ConflictingAt  time.Time
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StoreError wraps a failure from the underlying database. No retry or
// backoff happens at this layer; the caller decides whether it is fatal.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// wrapStoreErr converts a gorm error into a StoreError, keeping
// record-not-found distinguishable through errors.Is.
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsNotFound reports whether err is a record-not-found store error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
