package anthropic

import "github.com/2214372851/YunChat/providers/ai"

// messagesRequestFrom maps the generic conversation and options onto the
// Messages API wire format. Anthropic requires max_tokens on every request,
// so an unset MaxTokens falls back to defaultMaxTokens. Frequency and
// presence penalties have no Messages API equivalent and are dropped.
func messagesRequestFrom(model string, messages []ai.Message, options *ai.GenerationOptions, stream bool) messagesRequest {
	wireMessages := make([]messagesMessage, 0, len(messages))
	for _, message := range messages {
		wireMessages = append(wireMessages, messagesMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	request := messagesRequest{
		Model:     model,
		MaxTokens: defaultMaxTokens,
		Messages:  wireMessages,
		Stream:    stream,
	}
	if options != nil {
		if options.MaxTokens != nil {
			request.MaxTokens = *options.MaxTokens
		}
		request.Temperature = options.Temperature
		request.TopP = options.TopP
	}
	return request
}

// responseText extracts the assistant text from a synchronous response.
// Responses without content blocks read as empty rather than failing.
func responseText(response *messagesResponse) string {
	if response == nil || len(response.Content) == 0 {
		return ""
	}
	return response.Content[0].Text
}
