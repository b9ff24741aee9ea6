// Package apperr defines the operational error taxonomy shared by every
// service. An Error carries the HTTP status and envelope kind it must be
// rendered with, so the transport layer never guesses.
package apperr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Kind    string
	Message string
	// Fields holds per-field validation messages, rendered as the
	// optional "errors" object of the response envelope.
	Fields map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Validation(message string, fields map[string][]string) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Kind:    "Validation error",
		Message: message,
		Fields:  fields,
	}
}

func BadRequest(message string) *Error {
	if message == "" {
		message = "Invalid request data"
	}
	return &Error{Status: http.StatusBadRequest, Kind: "Bad Request", Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required or invalid token"
	}
	return &Error{Status: http.StatusUnauthorized, Kind: "Unauthorized", Message: message}
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Insufficient permissions"
	}
	return &Error{Status: http.StatusForbidden, Kind: "Forbidden", Message: message}
}

// NotFound names the missing resource; with a non-zero id the message
// points at it, matching the wire contract of targeted lookups.
func NotFound(resource string, id uint) *Error {
	msg := fmt.Sprintf("%s not found", resource)
	if id != 0 {
		msg = fmt.Sprintf("%s with ID %d does not exist", resource, id)
	}
	return &Error{
		Status:  http.StatusNotFound,
		Kind:    fmt.Sprintf("%s not found", resource),
		Message: msg,
	}
}

func Internal(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{Status: http.StatusInternalServerError, Kind: "Internal Server Error", Message: message}
}
