package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/observability"
)

const (
	// defaultBaseURL is the canonical base URL for the Generative Language API.
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// streamGenerateContentAction is the model action used for every chat
	// request. The endpoint answers with a JSON array of chunks, which covers
	// both streaming and synchronous consumption.
	streamGenerateContentAction = "streamGenerateContent"

	// modelsEndpoint is the path for the model listing API, also used as the
	// lightweight key-validation probe.
	modelsEndpoint = "/models"

	// defaultModel is used when the credential does not name a model.
	defaultModel = "gemini-2.0-flash"
)

// Transport implements [ai.StreamTransport] for the Google Generative
// Language API. Use [New] to construct a ready-to-use instance.
type Transport struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ ai.StreamTransport = (*Transport)(nil)

// New returns a Transport configured from credential. An empty BaseURL falls
// back to the generativelanguage v1beta root and an empty Model to a current
// Gemini Flash model.
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
func (transport *Transport) Name() string { return ai.ProviderGoogle }

// DefaultOptions implements [ai.Transport]. Google applies server-side
// defaults for every generationConfig field, so nothing is filled in.
func (transport *Transport) DefaultOptions() ai.GenerationOptions {
	return ai.GenerationOptions{}
}

// chatURL builds the model action URL. The API key travels exclusively as
// the key query parameter; no Authorization header is ever sent.
func (transport *Transport) chatURL() string {
	return fmt.Sprintf("%s/models/%s:%s?key=%s",
		transport.baseURL, transport.model, streamGenerateContentAction, url.QueryEscape(transport.apiKey))
}

func (transport *Transport) modelsURL() string {
	return fmt.Sprintf("%s%s?key=%s", transport.baseURL, modelsEndpoint, url.QueryEscape(transport.apiKey))
}

// Chat implements [ai.Transport]. Both modes go through the buffered stream:
// with a callback each chunk's text is delivered as a delta, without one the
// chunks are collected silently.
func (transport *Transport) Chat(ctx context.Context, messages []ai.Message, options *ai.GenerationOptions, onDelta ai.DeltaFunc) (string, error) {
	stream, err := transport.StreamChat(ctx, messages, options)
	if err != nil {
		return "", err
	}
	if onDelta == nil {
		return stream.Collect()
	}
	return stream.Text(onDelta)
}

// StreamChat implements [ai.StreamTransport]. The returned stream replays
// the decoded response array: one content event per chunk with text,
// followed by a done event.
func (transport *Transport) StreamChat(ctx context.Context, messages []ai.Message, options *ai.GenerationOptions) (*ai.ChatStream, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "google preparing streaming request",
			observability.String(observability.AttrLLMProvider, ai.ProviderGoogle),
			observability.String(observability.AttrLLMEndpoint, transport.baseURL),
			observability.String(observability.AttrLLMModel, transport.model),
			observability.Int(observability.AttrRequestMessagesCount, len(messages)),
			observability.Bool(observability.AttrLLMStreaming, true),
		)
	}

	if transport.apiKey == "" {
		return nil, &ai.TransportError{Message: "google api key is empty"}
	}

	request := generateContentRequestFrom(messages, options)

	// Pass empty apiKey so DoPostStream does not inject a Bearer token; the
	// key is already part of the URL. The Accept override matters because
	// this endpoint answers with a plain JSON array, not an event stream.
	response, err := utils.DoPostStream(ctx, transport.client, transport.chatURL(), "", request,
		utils.HeaderOption{Key: "Accept", Value: "application/json"})
	if err != nil {
		return nil, err
	}

	return ai.NewChatStream(decodeBuffered(ctx, response.Body)), nil
}

// ValidateKey implements [ai.Transport] by probing the model listing
// endpoint. Any failure, network or HTTP, reads as an invalid key.
func (transport *Transport) ValidateKey(ctx context.Context) bool {
	_, _, err := utils.DoGet[modelsListResponse](ctx, transport.client, transport.modelsURL(), "")
	return err == nil
}

// ListModels implements [ai.Transport]. Model names arrive as
// "models/<id>"; the prefix is stripped so IDs can be fed straight back
// into a credential.
func (transport *Transport) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	_, response, err := utils.DoGet[modelsListResponse](ctx, transport.client, transport.modelsURL(), "")
	if err != nil {
		return nil, err
	}

	models := make([]ai.ModelInfo, 0, len(response.Models))
	for _, entry := range response.Models {
		models = append(models, ai.ModelInfo{
			ID:          strings.TrimPrefix(entry.Name, "models/"),
			DisplayName: entry.DisplayName,
		})
	}
	return models, nil
}
