package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures so callers can branch without
// matching on message text.
type ErrorKind string

const (
	ErrIO            ErrorKind = "io"
	ErrNetwork       ErrorKind = "network"
	ErrParse         ErrorKind = "parse"
	ErrAlreadyExists ErrorKind = "already_exists"
	ErrNotFound      ErrorKind = "not_found"
	ErrInvalidState  ErrorKind = "invalid_state"
)

// Error is the error type returned at engine boundaries
type Error struct {
	Kind    ErrorKind // Failure class
	Message string    // Human-readable description
	Err     error     // Underlying error, if any
}

// NewError creates a tagged error
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// NetworkError describes a failed remote request
type NetworkError struct {
	URL        string // Requested URL
	StatusCode int    // HTTP status code, 0 for transport failures
	Err        error  // Underlying error, if any
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("request %s failed: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
