package ai

import "fmt"

// TransportError reports a failed HTTP exchange with a provider: a non-2xx
// status, or a request that never completed. Message holds the
// provider-supplied error text when the response body carried one, otherwise
// the HTTP status text or the cause.
type TransportError struct {
	// StatusCode is the HTTP status of the response, 0 when the request
	// never reached the point of producing one.
	StatusCode int
	// Message is the human-readable description of the failure.
	Message string
	// Err is the underlying cause, when any.
	Err error
}

func (e *TransportError) Error() string {
	message := e.Message
	if message == "" && e.Err != nil {
		message = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai: provider returned status %d: %s", e.StatusCode, message)
	}
	return "ai: request failed: " + message
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response payload that could not be interpreted:
// a synchronous body with an unexpected shape, or a buffered stream whose
// JSON could not be parsed. Malformed individual lines inside an SSE stream
// are skipped by the decoders and never surface as a DecodeError.
type DecodeError struct {
	// Message describes what was being decoded.
	Message string
	// Err is the underlying parse error, when any.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai: %s: %v", e.Message, e.Err)
	}
	return "ai: " + e.Message
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnsupportedProviderError reports a provider identifier the factory does
// not recognize.
type UnsupportedProviderError struct {
	// Provider is the identifier as given by the caller.
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("ai: unsupported provider %q", e.Provider)
}
