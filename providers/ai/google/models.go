package google

// generateContentRequest is the generateContent request body. The
// generationConfig object is omitted entirely when the caller sets no
// options, matching the API's expectation that absent means default.
type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// content is one conversation turn on the wire. Roles are "user" and
// "model"; the generic assistant role maps to "model".
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generationConfig carries the sampling parameters. Each field is omitted
// when unset rather than sent as null or zero.
type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

// generateContentResponse is one chunk of the streamGenerateContent array.
// The text fragment lives at candidates[0].content.parts[0].text.
type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      *content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// modelsListResponse is the GET /models listing body.
type modelsListResponse struct {
	Models []modelListEntry `json:"models"`
}

type modelListEntry struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
