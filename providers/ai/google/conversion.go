package google

import "github.com/2214372851/YunChat/providers/ai"

// generateContentRequestFrom maps the generic conversation and options onto
// the generateContent wire format. The assistant role becomes "model", and
// generationConfig is built only when at least one supported option is set.
// Frequency and presence penalties have no generationConfig equivalent and
// are dropped.
func generateContentRequestFrom(messages []ai.Message, options *ai.GenerationOptions) generateContentRequest {
	contents := make([]content, 0, len(messages))
	for _, message := range messages {
		role := "user"
		if message.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: message.Content}},
		})
	}

	return generateContentRequest{
		Contents:         contents,
		GenerationConfig: generationConfigFrom(options),
	}
}

// generationConfigFrom returns nil when no supported option is set, so the
// generationConfig key stays off the wire entirely.
func generationConfigFrom(options *ai.GenerationOptions) *generationConfig {
	if options == nil {
		return nil
	}
	if options.Temperature == nil && options.TopP == nil && options.MaxTokens == nil {
		return nil
	}
	return &generationConfig{
		Temperature:     options.Temperature,
		TopP:            options.TopP,
		MaxOutputTokens: options.MaxTokens,
	}
}

// chunkText extracts the text fragment from one response chunk. Chunks
// without candidates, content or parts read as empty.
func chunkText(chunk generateContentResponse) string {
	if len(chunk.Candidates) == 0 {
		return ""
	}
	candidate := chunk.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	return candidate.Content.Parts[0].Text
}
