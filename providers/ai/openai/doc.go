// Package openai implements [ai.StreamTransport] for the OpenAI Chat
// Completions API. It covers request conversion to the Chat Completions wire
// format, synchronous and SSE streaming responses, model listing, and key
// validation. Streaming uses the "data:" framed protocol with the [DONE]
// sentinel; malformed chunks are skipped rather than failing the stream.
package openai
