package openai

import "github.com/2214372851/YunChat/providers/ai"

// chatCompletionsRequestFrom maps the generic conversation and options onto
// the Chat Completions wire format. Nil options leave every sampling field
// unset so the provider defaults apply.
func chatCompletionsRequestFrom(model string, messages []ai.Message, options *ai.GenerationOptions, stream bool) chatCompletionsRequest {
	wireMessages := make([]chatCompletionsMessage, 0, len(messages))
	for _, message := range messages {
		wireMessages = append(wireMessages, chatCompletionsMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	request := chatCompletionsRequest{
		Model:    model,
		Messages: wireMessages,
		Stream:   stream,
	}
	if options != nil {
		request.Temperature = options.Temperature
		request.MaxTokens = options.MaxTokens
		request.TopP = options.TopP
		request.FrequencyPenalty = options.FrequencyPenalty
		request.PresencePenalty = options.PresencePenalty
	}
	return request
}

// responseText extracts the assistant text from a synchronous response.
// Responses without choices or a message read as empty rather than failing.
func responseText(response *chatCompletionsResponse) string {
	if response == nil || len(response.Choices) == 0 || response.Choices[0].Message == nil {
		return ""
	}
	return response.Choices[0].Message.Content
}

// chunkText extracts the text fragment from one streaming chunk.
func chunkText(chunk chatCompletionsChunk) string {
	if len(chunk.Choices) == 0 {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}
