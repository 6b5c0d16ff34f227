package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/observability"
)

const (
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// modelsEndpoint is the path for the model listing API, also used as the
	// lightweight key-validation probe.
	modelsEndpoint = "/models"

	// defaultModel is used when the credential does not name a model.
	defaultModel = "claude-sonnet-4-20250514"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of
	// the URL.
	anthropicVersion = "2023-06-01"

	// anthropicBeta opts in to the messages beta surface.
	anthropicBeta = "messages-2023-12-15"

	// defaultMaxTokens is applied when the caller leaves MaxTokens unset.
	// The Messages API rejects requests without max_tokens.
	defaultMaxTokens = 1000
)

// Transport implements [ai.StreamTransport] for Anthropic's Messages API.
// Use [New] to construct a ready-to-use instance.
type Transport struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ ai.StreamTransport = (*Transport)(nil)

// New returns a Transport configured from credential. An empty BaseURL falls
// back to https://api.anthropic.com/v1 and an empty Model to a current
// Claude Sonnet model.
func New(credential ai.Credential) *Transport {
	baseURL := strings.TrimSuffix(credential.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := credential.Model
	if model == "" {
		model = defaultModel
	}

	return &Transport{
		apiKey:  credential.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// WithHTTPClient replaces the default [http.Client] used for API calls and
// returns the transport so calls can be chained.
func (transport *Transport) WithHTTPClient(client *http.Client) *Transport {
	transport.client = client
	return transport
}

// WithModel overrides the model requests address and returns the transport
// so calls can be chained.
func (transport *Transport) WithModel(model string) *Transport {
	transport.model = model
	return transport
}

// Name implements [ai.Transport].
func (transport *Transport) Name() string { return ai.ProviderAnthropic }

// DefaultOptions implements [ai.Transport]. MaxTokens is pre-filled because
// the Messages API requires it on every request.
func (transport *Transport) DefaultOptions() ai.GenerationOptions {
	return ai.GenerationOptions{MaxTokens: utils.Ptr(defaultMaxTokens)}
}

// buildHeaders constructs the HTTP headers required for every Anthropic
// request. x-api-key carries the credential (Anthropic does not use Bearer
// tokens), anthropic-version pins the wire format, and anthropic-beta opts
// in to the messages beta surface.
func (transport *Transport) buildHeaders() []utils.HeaderOption {
	return []utils.HeaderOption{
		{Key: "x-api-key", Value: transport.apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
		{Key: "anthropic-beta", Value: anthropicBeta},
	}
}

// Chat implements [ai.Transport]. With a delta callback the reply is
// streamed through [Transport.StreamChat]; without one a single synchronous
// request is made and the full reply returned.
func (transport *Transport) Chat(ctx context.Context, messages []ai.Message, options *ai.GenerationOptions, onDelta ai.DeltaFunc) (string, error) {
	if onDelta != nil {
		stream, err := transport.StreamChat(ctx, messages, options)
		if err != nil {
			return "", err
		}
		return stream.Text(onDelta)
	}

	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "anthropic preparing request",
			observability.String(observability.AttrLLMProvider, ai.ProviderAnthropic),
			observability.String(observability.AttrLLMEndpoint, transport.baseURL),
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrRequestMessagesCount, len(messages)),
			observability.Bool(observability.AttrLLMStreaming, false),
		)
	}

	if transport.apiKey == "" {
		return "", &ai.TransportError{Message: "anthropic api key is empty"}
	}

	request := messagesRequestFrom(transport.model, messages, options, false)
	url := transport.baseURL + messagesEndpoint

	// Pass empty apiKey so DoPostSync does not inject a Bearer token;
	// Anthropic authenticates via x-api-key instead.
	_, response, err := utils.DoPostSync[messagesResponse](ctx, transport.client, url, "", request, transport.buildHeaders()...)
	if err != nil {
		return "", err
	}

	text := responseText(response)
	if observer != nil {
		observer.Debug(ctx, "anthropic response received",
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrResponseLength, len(text)),
		)
	}
	return text, nil
}

// StreamChat implements [ai.StreamTransport]. The returned stream yields one
// content event per content_block_delta carrying text and terminates on
// message_stop.
func (transport *Transport) StreamChat(ctx context.Context, messages []ai.Message, options *ai.GenerationOptions) (*ai.ChatStream, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "anthropic preparing streaming request",
			observability.String(observability.AttrLLMProvider, ai.ProviderAnthropic),
			observability.String(observability.AttrLLMEndpoint, transport.baseURL),
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrRequestMessagesCount, len(messages)),
			observability.Bool(observability.AttrLLMStreaming, true),
		)
	}

	if transport.apiKey == "" {
		return nil, &ai.TransportError{Message: "anthropic api key is empty"}
	}

	request := messagesRequestFrom(transport.model, messages, options, true)
	url := transport.baseURL + messagesEndpoint

	response, err := utils.DoPostStream(ctx, transport.client, url, "", request, transport.buildHeaders()...)
	if err != nil {
		return nil, err
	}

	return ai.NewChatStream(decodeStream(ctx, response.Body)), nil
}

// ValidateKey implements [ai.Transport] by probing the model listing
// endpoint. Any failure, network or HTTP, reads as an invalid key.
func (transport *Transport) ValidateKey(ctx context.Context) bool {
	_, _, err := utils.DoGet[modelsResponse](ctx, transport.client, transport.baseURL+modelsEndpoint, "", transport.buildHeaders()...)
	return err == nil
}

// ListModels implements [ai.Transport].
func (transport *Transport) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	_, response, err := utils.DoGet[modelsResponse](ctx, transport.client, transport.baseURL+modelsEndpoint, "", transport.buildHeaders()...)
	if err != nil {
		return nil, err
	}

	models := make([]ai.ModelInfo, 0, len(response.Data))
	for _, entry := range response.Data {
		models = append(models, ai.ModelInfo{ID: entry.ID, DisplayName: entry.DisplayName})
	}
	return models, nil
}
