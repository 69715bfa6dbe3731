package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when a 401 could not be recovered by
// refreshing the token. Callers must clear local state and send the
// user back to login.
var ErrSessionExpired = errors.New("session expired")

// Error is the single error shape surfaced for every failed remote
// call. Callers never see raw transport errors.
type Error struct {
	Status  int
	Message string
	Details []string

	cause error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// IsConnection reports a transport-level failure: no response was
// received at all.
func (e *Error) IsConnection() bool { return e.Status == 0 }

// IsRetryable reports whether a manual retry of the same action makes
// sense to offer.
func (e *Error) IsRetryable() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Fixed user-facing messages per failure class.
const (
	msgValidation  = "The request was rejected. Please review the entered data."
	msgAuth        = "Your session has expired. Please log in again."
	msgForbidden   = "Access denied. You do not have permission for this action."
	msgNotFound    = "The requested record was not found."
	msgRateLimited = "Too many requests. Please wait a moment and try again."
	msgServer      = "The server encountered an error. Please try again later."
	msgConnection  = "Connection issue. Check your network and try again."
)

func messageForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return msgValidation
	case status == http.StatusUnauthorized:
		return msgAuth
	case status == http.StatusForbidden:
		return msgForbidden
	case status == http.StatusNotFound:
		return msgNotFound
	case status == http.StatusTooManyRequests:
		return msgRateLimited
	case status >= 500:
		return msgServer
	default:
		return msgServer
	}
}

func connectionError(cause error) *Error {
	return &Error{
		Status:  0,
		Message: msgConnection,
		Details: []string{cause.Error()},
		cause:   cause,
	}
}
