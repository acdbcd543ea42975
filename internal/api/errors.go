// Package api is the single HTTP egress point of the web client.  Every
// request to the GoTicket backend goes through Client, which injects the
// caller's bearer token and converts failures into *Error values that
// higher layers can translate into user-visible state.  The package is
// organized like a repository layer, one file per backend resource.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error describes a failed backend call.  Status is the HTTP status code,
// or zero when the request never produced a response (transport failure).
// Message carries the backend-supplied message when one was present so the
// UI can surface it verbatim.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unreachable: %v", e.cause)
	}
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage returns the backend message when one exists, otherwise the
// given fallback.  Backend messages win so that texts like "Account not
// approved" reach the user unchanged.
func UserMessage(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is a backend 401 or 403.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsTransport reports whether err is a transport-level failure that never
// reached the backend.
func IsTransport(err error) bool { return hasStatus(err, 0) }

func hasStatus(err error, code int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == code
}
