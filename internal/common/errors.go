// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Scan errors.
	ErrNoScanDirs = errors.New("no scan directories resolvable")
	ErrNotFound   = errors.New("not found")

	// Categorization errors.
	ErrNoFiles             = errors.New("no files to categorize")
	ErrBackendUnavailable  = errors.New("model backend unavailable")
	ErrResponseMismatch    = errors.New("model response does not match batch")
	ErrCategorizationError = errors.New("categorization failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
