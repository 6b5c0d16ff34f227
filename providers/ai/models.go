package ai

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	// RoleUser marks a message written by the human side of the conversation.
	RoleUser MessageRole = "user"
	// RoleAssistant marks a message produced by the model.
	RoleAssistant MessageRole = "assistant"
)

// Message is a single turn in a conversation. Transports receive the full
// ordered history on every call and map each message onto the provider's own
// wire format.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// UserMessage returns a Message authored by the user.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns a Message authored by the model.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// GenerationOptions carries the sampling parameters for a single request.
// Every field is a pointer: nil means "not set" and the key is omitted from
// the provider payload entirely, so the provider applies its own default.
// Values are forwarded as-is, range validation is left to the provider.
type GenerationOptions struct {
	// Temperature controls sampling randomness. Typical range 0.0-2.0.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens caps the number of tokens in the generated reply.
	MaxTokens *int `json:"max_tokens,omitempty"`
	// TopP enables nucleus sampling. Typical range 0.0-1.0.
	TopP *float64 `json:"top_p,omitempty"`
	// FrequencyPenalty discourages token repetition by frequency.
	// Not every provider supports it; unsupported fields are dropped.
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	// PresencePenalty discourages reuse of tokens already present.
	// Not every provider supports it; unsupported fields are dropped.
	PresencePenalty *float64 `json:"presence_penalty,omitempty"`
}

// Credential carries the connection settings for one transport instance:
// the API key, an optional base URL override and the model identifier.
// Credentials are accepted as plain call parameters, they are never read
// from the environment, persisted or logged by this package or by any
// transport built on it.
type Credential struct {
	// APIKey authenticates the caller. Each provider decides how the key
	// travels: header, or query parameter for Google.
	APIKey string
	// BaseURL overrides the provider's default API root. Optional; leave
	// empty to use the provider default. Trailing slashes are tolerated.
	BaseURL string
	// Model names the model every request addresses, e.g. "gpt-4o" or
	// "claude-sonnet-4-20250514". Optional; providers fall back to a default.
	Model string
}

// ModelInfo describes one model advertised by a provider's listing endpoint.
type ModelInfo struct {
	// ID is the identifier requests must use.
	ID string `json:"id"`
	// DisplayName is a human-readable label, when the provider supplies one.
	DisplayName string `json:"display_name,omitempty"`
}
