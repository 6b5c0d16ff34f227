package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/observability"
)

const (
	// defaultBaseURL is the canonical base URL for the OpenAI API.
	defaultBaseURL = "https://api.openai.com/v1"

	// chatCompletionsEndpoint is the path for the Chat Completions API.
	chatCompletionsEndpoint = "/chat/completions"

	// modelsEndpoint is the path for the model listing API, also used as the
	// lightweight key-validation probe.
	modelsEndpoint = "/models"

	// defaultModel is used when the credential does not name a model.
	defaultModel = "gpt-4o-mini"
)

// Transport implements [ai.StreamTransport] for OpenAI's Chat Completions
// API. Use [New] to construct a ready-to-use instance.
type Transport struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ ai.StreamTransport = (*Transport)(nil)

// New returns a Transport configured from credential. An empty BaseURL falls
// back to https://api.openai.com/v1 and an empty Model to gpt-4o-mini.
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
// returns the transport so calls can be chained. Useful for injecting custom
// timeouts, transport layers, or test doubles.
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
func (transport *Transport) Name() string { return ai.ProviderOpenAI }

// DefaultOptions implements [ai.Transport]. OpenAI applies server-side
// defaults for every sampling parameter, so nothing is filled in.
func (transport *Transport) DefaultOptions() ai.GenerationOptions {
	return ai.GenerationOptions{}
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
		observer.Trace(ctx, "openai preparing request",
			observability.String(observability.AttrLLMProvider, ai.ProviderOpenAI),
			observability.String(observability.AttrLLMEndpoint, transport.baseURL),
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrRequestMessagesCount, len(messages)),
			observability.Bool(observability.AttrLLMStreaming, false),
		)
	}

	if transport.apiKey == "" {
		return "", &ai.TransportError{Message: "openai api key is empty"}
	}

	request := chatCompletionsRequestFrom(transport.model, messages, options, false)
	url := transport.baseURL + chatCompletionsEndpoint

	_, response, err := utils.DoPostSync[chatCompletionsResponse](ctx, transport.client, url, transport.apiKey, request)
	if err != nil {
		return "", err
	}

	text := responseText(response)
	if observer != nil {
		observer.Debug(ctx, "openai response received",
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrResponseLength, len(text)),
		)
	}
	return text, nil
}

// StreamChat implements [ai.StreamTransport]. The returned stream yields one
// content event per SSE chunk carrying text and closes the connection when
// iteration stops.
func (transport *Transport) StreamChat(ctx context.Context, messages []ai.Message, options *ai.GenerationOptions) (*ai.ChatStream, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "openai preparing streaming request",
			observability.String(observability.AttrLLMProvider, ai.ProviderOpenAI),
			observability.String(observability.AttrLLMEndpoint, transport.baseURL),
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrRequestMessagesCount, len(messages)),
			observability.Bool(observability.AttrLLMStreaming, true),
		)
	}

	if transport.apiKey == "" {
		return nil, &ai.TransportError{Message: "openai api key is empty"}
	}

	request := chatCompletionsRequestFrom(transport.model, messages, options, true)
	url := transport.baseURL + chatCompletionsEndpoint

	response, err := utils.DoPostStream(ctx, transport.client, url, transport.apiKey, request)
	if err != nil {
		return nil, err
	}

	return ai.NewChatStream(decodeStream(ctx, response.Body)), nil
}

// ValidateKey implements [ai.Transport] by probing the model listing
// endpoint. Any failure, network or HTTP, reads as an invalid key.
func (transport *Transport) ValidateKey(ctx context.Context) bool {
	_, _, err := utils.DoGet[modelsResponse](ctx, transport.client, transport.baseURL+modelsEndpoint, transport.apiKey)
	return err == nil
}

// ListModels implements [ai.Transport].
func (transport *Transport) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	_, response, err := utils.DoGet[modelsResponse](ctx, transport.client, transport.baseURL+modelsEndpoint, transport.apiKey)
	if err != nil {
		return nil, err
	}

	models := make([]ai.ModelInfo, 0, len(response.Data))
	for _, entry := range response.Data {
		models = append(models, ai.ModelInfo{ID: entry.ID})
	}
	return models, nil
}
