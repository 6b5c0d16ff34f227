package anthropic

// messagesRequest is the Messages API request body. MaxTokens is mandatory,
// everything else optional; pointer fields are omitted when unset so the
// provider applies its own defaults.
type messagesRequest struct {
	Model       string            `json:"model"`
	MaxTokens   int               `json:"max_tokens"`
	Messages    []messagesMessage `json:"messages"`
	Stream      bool              `json:"stream,omitempty"`
	Temperature *float64          `json:"temperature,omitempty"`
	TopP        *float64          `json:"top_p,omitempty"`
}

// messagesMessage is one conversation turn on the wire. Roles are "user" and
// "assistant", matching the generic roles directly.
type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the synchronous response body. The reply text lives in
// the first content block.
type messagesResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *messagesUsage `json:"usage,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// streamEvent is one SSE payload of a streaming response. Type discriminates
// the lifecycle: message_start, content_block_start, content_block_delta,
// content_block_stop, message_delta, message_stop, ping, error. Text travels
// in content_block_delta events, or in a message-shaped payload whose
// content blocks mirror the synchronous response.
type streamEvent struct {
	Type    string         `json:"type"`
	Delta   *streamDelta   `json:"delta,omitempty"`
	Content []contentBlock `json:"content,omitempty"`
	Error   *streamError   `json:"error,omitempty"`
}

type streamDelta struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type streamError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// modelsResponse is the GET /models listing body.
type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
