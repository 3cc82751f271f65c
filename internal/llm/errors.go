package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies adapter failures.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAPI        ErrorKind = "api"
	KindParse      ErrorKind = "parse"
	KindNetwork    ErrorKind = "network"
)

// Error is returned by the Client and by every Transport.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // upstream HTTP status for KindAPI, 0 otherwise
	Err        error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrAPI        = &Error{Kind: KindAPI}
	ErrParse      = &Error{Kind: KindParse}
	ErrNetwork    = &Error{Kind: KindNetwork}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm %s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("llm %s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind when target is a bare sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" && t.Err == nil && t.StatusCode == 0 {
		return e.Kind == t.Kind
	}
	return e == t
}

// NewError builds an *Error.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewAPIError builds a KindAPI error for an upstream status. An empty
// message falls back to "API request failed with status N".
func NewAPIError(status int, message string, err error) *Error {
	if message == "" {
		message = fmt.Sprintf("API request failed with status %d", status)
	}
	return &Error{Kind: KindAPI, Message: message, StatusCode: status, Err: err}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRetryable reports whether err is a transport-level failure.
func IsRetryable(err error) bool {
	return KindOf(err) == KindNetwork
}
