// Package ai defines the provider-neutral contract shared by every chat
// backend: the [Message] and [GenerationOptions] request types, the
// [Transport] and [StreamTransport] interfaces implemented by each provider
// package, the [ChatStream] iterator used for incremental responses, and the
// error types callers match on ([TransportError], [DecodeError],
// [UnsupportedProviderError]).
//
// Concrete implementations live in the subpackages openai, anthropic and
// google. Code that talks to a model should depend on this package only and
// obtain a transport through the yunchat root package.
package ai
