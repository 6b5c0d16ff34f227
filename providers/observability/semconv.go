package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "openai", "anthropic")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g., "gpt-4o-mini", "claude-3-5-sonnet")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMStreaming indicates whether the request used streaming delivery
	AttrLLMStreaming = "llm.streaming"
)

// --- Request/Response Attributes ---

const (
	// AttrRequestMessagesCount is the number of messages in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrResponseLength is the length in bytes of the final response text
	AttrResponseLength = "response.length"

	// AttrResponseDeltas is the number of deltas emitted for a streaming response
	AttrResponseDeltas = "response.deltas"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- History Attributes ---

const (
	// AttrHistoryMessageRole is the role of the message being stored
	AttrHistoryMessageRole = "history.message.role"

	// AttrHistoryMessageLength is the length of the message content
	AttrHistoryMessageLength = "history.message.length"

	// AttrHistoryTotalMessages is the total number of messages in the store
	AttrHistoryTotalMessages = "history.total_messages"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"
)
