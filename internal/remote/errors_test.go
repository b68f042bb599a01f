package remote

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewConnectionError("connection failed", cause)

	if err.Error() != "connection failed: dial tcp: connection refused" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	bare := NewNotFoundError("c1")
	if bare.Error() != "contact not found: c1" {
		t.Errorf("Unexpected error string: %s", bare.Error())
	}
}

func TestClassifyErrorNil(t *testing.T) {
	if ClassifyError(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestClassifyErrorPassesThroughTypedErrors(t *testing.T) {
	typed := NewNotFoundError("c1")

	classified := ClassifyError(typed)
	if classified != typed {
		t.Error("Expected typed error to pass through unchanged")
	}
}

func TestClassifyErrorByMessage(t *testing.T) {
	cases := []struct {
		err      error
		expected ErrorType
	}{
		{errors.New("context deadline exceeded"), ErrTimeout},
		{errors.New("read timeout"), ErrTimeout},
		{errors.New("dial tcp: connection refused"), ErrConnection},
		{errors.New("lookup redis: no such host"), ErrConnection},
		{errors.New("document not found"), ErrNotFound},
		{errors.New("something odd"), ErrConnection},
	}

	for _, tc := range cases {
		classified := ClassifyError(tc.err)
		if classified.Type != tc.expected {
			t.Errorf("Expected %s for %q, got %s", tc.expected, tc.err, classified.Type)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	if !NewConnectionError("down", nil).IsRetryable() {
		t.Error("Connection errors should be retryable")
	}
	if !NewTimeoutError("create").IsRetryable() {
		t.Error("Timeouts should be retryable")
	}
	if NewNotFoundError("c1").IsRetryable() {
		t.Error("Not-found should not be retryable")
	}
	if NewBadDataError("c1", fmt.Errorf("bad json")).IsRetryable() {
		t.Error("Bad data should not be retryable")
	}
}

func TestUserMessageCoversEveryType(t *testing.T) {
	types := []ErrorType{ErrConnection, ErrTimeout, ErrNotFound, ErrBadData, ErrSubscription, ErrorType("unknown")}

	for _, errType := range types {
		err := NewError(errType, "internal detail", nil)
		message := err.UserMessage()
		if message == "" {
			t.Errorf("Empty user message for %s", errType)
		}
		if message == err.Message {
			t.Errorf("User message for %s should not leak internals", errType)
		}
	}
}
