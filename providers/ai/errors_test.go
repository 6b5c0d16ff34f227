package ai

import (
	"errors"
	"strings"
	"testing"
)

// ---- TransportError tests ----------------------------------------------------

// TestTransportError_Error verifies that a status-carrying error includes
// both the status code and the provider message.
func TestTransportError_Error_WithStatus_IncludesCodeAndMessage(t *testing.T) {
	err := &TransportError{StatusCode: 401, Message: "invalid api key"}

	text := err.Error()
	if !strings.Contains(text, "401") {
		t.Errorf("expected status code in %q", text)
	}
	if !strings.Contains(text, "invalid api key") {
		t.Errorf("expected provider message in %q", text)
	}
}

// TestTransportError_Error_NoStatus verifies that a request that never
// completed falls back to the underlying cause.
func TestTransportError_Error_NoStatus_UsesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Err: cause}

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}
}

// TestTransportError_As verifies that a wrapped TransportError is still
// matchable with errors.As.
func TestTransportError_As_MatchesThroughWrapping(t *testing.T) {
	var target *TransportError
	wrapped := errors.Join(errors.New("outer"), &TransportError{StatusCode: 429, Message: "rate limited"})

	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to find TransportError")
	}
	if target.StatusCode != 429 {
		t.Errorf("expected status 429, got %d", target.StatusCode)
	}
}

// ---- DecodeError tests -------------------------------------------------------

// TestDecodeError_Error verifies that the message and cause both appear.
func TestDecodeError_Error_IncludesMessageAndCause(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DecodeError{Message: "parse streamed response", Err: cause}

	text := err.Error()
	if !strings.Contains(text, "parse streamed response") {
		t.Errorf("expected message in %q", text)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}
}

// ---- UnsupportedProviderError tests -------------------------------------------

// TestUnsupportedProviderError_Error verifies the offending identifier is
// reported verbatim.
func TestUnsupportedProviderError_Error_NamesProvider(t *testing.T) {
	err := &UnsupportedProviderError{Provider: "grok"}
	if !strings.Contains(err.Error(), `"grok"`) {
		t.Errorf("expected provider name in %q", err.Error())
	}
}
