// Package yunchat is the entry point for the multi-provider chat core. It
// constructs provider transports from a name and a credential, hiding the
// concrete packages behind the [ai.Transport] contract:
//
//	transport, err := yunchat.NewTransport("anthropic", ai.Credential{APIKey: key})
//	if err != nil {
//	    return err
//	}
//	reply, err := transport.Chat(ctx, messages, nil, func(delta string) {
//	    fmt.Print(delta)
//	})
//
// Conversation state, persistence and higher-level helpers live in
// core/chat; this package only wires names to transports.
package yunchat

import (
	"strings"

	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/ai/anthropic"
	"github.com/2214372851/YunChat/providers/ai/google"
	"github.com/2214372851/YunChat/providers/ai/openai"
)

// NewTransport returns the transport for the named provider, configured
// from credential. Provider matching is case-insensitive and tolerates
// surrounding whitespace; empty credential fields fall back to the
// provider's defaults. Unknown names return *ai.UnsupportedProviderError.
func NewTransport(provider string, credential ai.Credential) (ai.Transport, error) {
	return NewStreamTransport(provider, credential)
}

// NewStreamTransport is [NewTransport] with the streaming capability in the
// return type, for callers that consume [ai.ChatStream] directly.
func NewStreamTransport(provider string, credential ai.Credential) (ai.StreamTransport, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ai.ProviderOpenAI:
		return openai.New(credential), nil
	case ai.ProviderAnthropic:
		return anthropic.New(credential), nil
	case ai.ProviderGoogle:
		return google.New(credential), nil
	default:
		return nil, &ai.UnsupportedProviderError{Provider: provider}
	}
}

// Providers returns the provider identifiers NewTransport accepts, in a
// stable order suitable for help output.
func Providers() []string {
	return []string{ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderGoogle}
}
