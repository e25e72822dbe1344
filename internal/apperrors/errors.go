// Package apperrors holds the transport-agnostic error taxonomy.
// Handlers return these; the response layer maps them to HTTP.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindDuplicateKey       Kind = "DuplicateKeyError"
	KindInvalidIdentifier  Kind = "InvalidIdentifier"
	KindNotFound           Kind = "NotFound"
	KindMissingFields      Kind = "MissingFields"
	KindInsufficientCopies Kind = "InsufficientCopies"
	KindStorage            Kind = "StorageConnectionError"
	KindInternal           Kind = "InternalError"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field validation messages, keyed by field name.
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindDuplicateKey, KindInvalidIdentifier,
		KindMissingFields, KindInsufficientCopies:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// BadPayload covers undecodable request bodies.
func BadPayload() *Error {
	return &Error{Kind: KindValidation, Message: "Invalid JSON payload"}
}

func DuplicateKey(message string) *Error {
	return &Error{Kind: KindDuplicateKey, Message: message}
}

func InvalidIdentifier() *Error {
	return &Error{Kind: KindInvalidIdentifier, Message: "Invalid book ID format"}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func MissingFields(message string) *Error {
	return &Error{Kind: KindMissingFields, Message: message}
}

func InsufficientCopies(available, requested int) *Error {
	return &Error{
		Kind:    KindInsufficientCopies,
		Message: fmt.Sprintf("Only %d copies available, but %d requested", available, requested),
	}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "Database connection failed: " + err.Error()}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// From classifies an arbitrary error, preserving typed errors as-is.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
