package remote

import (
	"fmt"
	"net"
	"strings"
)

type ErrorType string

const (
	ErrConnection   ErrorType = "connection"
	ErrTimeout      ErrorType = "timeout"
	ErrNotFound     ErrorType = "not_found"
	ErrBadData      ErrorType = "bad_data"
	ErrSubscription ErrorType = "subscription"
)

// Error is the typed failure every collection backend surfaces. The UI never
// sees backend-specific errors directly; it renders UserMessage.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

func NewConnectionError(message string, cause error) *Error {
	return NewError(ErrConnection, message, cause)
}

func NewNotFoundError(id string) *Error {
	return NewError(ErrNotFound, fmt.Sprintf("contact not found: %s", id), nil)
}

func NewTimeoutError(operation string) *Error {
	return NewError(ErrTimeout, fmt.Sprintf("operation %s timed out", operation), nil)
}

func NewBadDataError(id string, cause error) *Error {
	return NewError(ErrBadData, fmt.Sprintf("malformed document: %s", id), cause)
}

func NewSubscriptionError(message string, cause error) *Error {
	return NewError(ErrSubscription, message, cause)
}

// ClassifyError maps an arbitrary backend error onto the taxonomy.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	if remoteErr, ok := err.(*Error); ok {
		return remoteErr
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewTimeoutError("remote request")
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "connection reset"):
		return NewConnectionError("connection failed", err)
	case strings.Contains(errStr, "not found") || strings.Contains(errStr, "no such document"):
		return NewError(ErrNotFound, "document not found", err)
	default:
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return NewTimeoutError("remote request")
		}
		return NewConnectionError("remote operation failed", err)
	}
}

func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrConnection, ErrTimeout:
		return true
	default:
		return false
	}
}

// UserMessage is what the error list shows for a failed remote operation.
func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrConnection:
		return "Could not reach the contact store. Please check your connection."
	case ErrTimeout:
		return "The contact store took too long to respond. Please try again."
	case ErrNotFound:
		return "That contact no longer exists."
	case ErrBadData:
		return "A contact record could not be read."
	case ErrSubscription:
		return "Live updates are unavailable."
	default:
		return "An unexpected error occurred."
	}
}
