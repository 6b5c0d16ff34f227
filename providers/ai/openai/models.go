package openai

// chatCompletionsRequest is the Chat Completions request body. Optional
// sampling parameters are pointers so unset values are omitted and OpenAI
// applies its own defaults.
type chatCompletionsRequest struct {
	Model            string                   `json:"model"`
	Messages         []chatCompletionsMessage `json:"messages"`
	Stream           bool                     `json:"stream,omitempty"`
	Temperature      *float64                 `json:"temperature,omitempty"`
	MaxTokens        *int                     `json:"max_tokens,omitempty"`
	TopP             *float64                 `json:"top_p,omitempty"`
	FrequencyPenalty *float64                 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64                 `json:"presence_penalty,omitempty"`
}

// chatCompletionsMessage is one conversation turn on the wire. Roles are
// "user" and "assistant", matching the generic roles directly.
type chatCompletionsMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionsResponse is the synchronous response body.
type chatCompletionsResponse struct {
	ID      string                  `json:"id"`
	Model   string                  `json:"model"`
	Choices []chatCompletionsChoice `json:"choices"`
	Usage   *chatCompletionsUsage   `json:"usage,omitempty"`
}

type chatCompletionsChoice struct {
	Index        int                     `json:"index"`
	Message      *chatCompletionsMessage `json:"message,omitempty"`
	FinishReason string                  `json:"finish_reason,omitempty"`
}

type chatCompletionsUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatCompletionsChunk is one SSE payload of a streaming response. The text
// fragment lives at choices[0].delta.content; chunks without text (role
// announcements, finish chunks) decode to an empty delta.
type chatCompletionsChunk struct {
	ID      string                       `json:"id"`
	Choices []chatCompletionsChunkChoice `json:"choices"`
}

type chatCompletionsChunkChoice struct {
	Delta        chatCompletionsDelta `json:"delta"`
	FinishReason string               `json:"finish_reason,omitempty"`
}

type chatCompletionsDelta struct {
	Content string `json:"content,omitempty"`
}

// modelsResponse is the GET /models listing body.
type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID string `json:"id"`
}
