package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/observability"
)

// HeaderOption is a single HTTP header to set on an outgoing request.
// Options are applied after the defaults, so they can override the
// Content-Type, Accept and Authorization headers when a provider needs a
// different scheme.
type HeaderOption struct {
	Key   string
	Value string
}

// CloseWithLog closes closer and logs close failures instead of returning
// them. Meant for defer statements where a close error must not override the
// function's primary error.
func CloseWithLog(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}

// errorEnvelope matches the {"error": {"message": ...}} shape that the
// OpenAI, Anthropic and Google error bodies all share.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// providerErrorMessage extracts the human-readable message from a provider
// error body. When the body does not carry the common envelope the HTTP
// status text is used, and as a last resort a truncated body preview.
func providerErrorMessage(statusCode int, body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return TruncateString(string(body), 200)
}

// DoPostSync performs a synchronous HTTP POST request with a JSON body and
// parses the JSON response into OutputStruct.
//
// Error handling strategy:
//   - requests that never complete return an *ai.TransportError wrapping the cause
//   - non-2xx responses return an *ai.TransportError carrying the status code
//     and the provider-supplied message when the body has one
//   - 2xx bodies that fail to parse return an *ai.DecodeError with a body preview
//
// The response body is always closed before returning; close errors are
// logged and never override the primary error.
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	return doSync[OutputStruct](ctx, client, http.MethodPost, url, apiKey, body, headers...)
}

// DoGet performs a synchronous HTTP GET request and parses the JSON response
// into OutputStruct. It mirrors [DoPostSync] for endpoints that take no
// request body, such as the provider model listings.
func DoGet[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	return doSync[OutputStruct](ctx, client, http.MethodGet, url, apiKey, nil, headers...)
}

func doSync[OutputStruct any](ctx context.Context, client *http.Client, method string, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	observer := observability.ObserverFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var bodyReader io.Reader
	var bodySize int
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("error marshaling body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		bodySize = len(jsonBody)
	}

	if observer != nil {
		observer.Debug(ctx, "http.request.prepared",
			observability.String(observability.AttrHTTPMethod, method),
			observability.String(observability.AttrHTTPURL, RedactURL(url)),
			observability.Int(observability.AttrHTTPRequestBodySize, bodySize),
		)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	// Apply custom headers (can override the defaults when needed)
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if observer != nil {
			observer.Warn(ctx, "http.request.error",
				observability.Error(err),
				observability.Duration(observability.AttrDuration, requestDuration),
			)
		}
		return res, nil, &ai.TransportError{Err: err}
	}
	defer CloseWithLog(res.Body)

	// Cap body reads to MaxResponseBodySize to prevent unbounded memory
	// allocation from rogue responses.
	respBody, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseBodySize))
	if err != nil {
		return res, nil, &ai.TransportError{Err: fmt.Errorf("error reading response body: %w", err)}
	}

	if observer != nil {
		observer.Debug(ctx, "http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrDuration, requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &ai.TransportError{
			StatusCode: res.StatusCode,
			Message:    providerErrorMessage(res.StatusCode, respBody),
		}
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, &ai.DecodeError{
			Message: fmt.Sprintf("unmarshal response body: %s", TruncateString(string(respBody), DefaultMaxStringLength)),
			Err:     err,
		}
	}

	return res, &resStruct, nil
}
