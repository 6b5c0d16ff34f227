package ai

import "context"

// Provider identifiers accepted by the yunchat factory and reported by
// [Transport.Name].
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// DeltaFunc receives each text fragment of a streamed reply in arrival
// order. Implementations must be fast; the transport invokes the callback
// synchronously between network reads.
type DeltaFunc func(delta string)

// Transport is the capability every chat provider exposes. Implementations
// are stateless with respect to conversations: the caller passes the full
// message history on each call.
type Transport interface {
	// Chat sends the conversation and returns the assistant's complete
	// reply. When onDelta is non-nil the transport streams and invokes the
	// callback once per text fragment before returning the concatenation of
	// exactly those fragments. When onDelta is nil the transport may use the
	// provider's synchronous endpoint. Failed HTTP exchanges surface as
	// *TransportError, malformed response payloads as *DecodeError.
	Chat(ctx context.Context, messages []Message, options *GenerationOptions, onDelta DeltaFunc) (string, error)

	// ValidateKey reports whether the configured credential is currently
	// accepted by the provider. It probes a lightweight authenticated
	// endpoint and never returns an error: network failures, timeouts and
	// rejections all read as false.
	ValidateKey(ctx context.Context) bool

	// ListModels returns the models the credential can address.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// DefaultOptions returns the generation options the transport applies
	// for fields the caller leaves nil. Providers without server-side
	// required fields return the zero value.
	DefaultOptions() GenerationOptions

	// Name returns the provider identifier, one of the Provider* constants.
	Name() string
}

// StreamTransport is implemented by providers whose replies can be consumed
// incrementally through a [ChatStream] instead of a callback.
type StreamTransport interface {
	Transport

	// StreamChat sends the conversation and returns a stream of
	// [StreamEvent] values: zero or more content events followed by a done
	// event. The stream owns the underlying connection and releases it when
	// the iteration stops.
	StreamChat(ctx context.Context, messages []Message, options *GenerationOptions) (*ChatStream, error)
}
