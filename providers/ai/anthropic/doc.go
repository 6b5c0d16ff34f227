// Package anthropic implements [ai.StreamTransport] for Anthropic's Messages
// API. It covers request conversion to the Messages wire format (including
// the mandatory max_tokens field), the x-api-key / anthropic-version header
// scheme, synchronous and SSE streaming responses, model listing, and key
// validation. Text deltas arrive as content_block_delta events or as
// message-shaped payloads read through content[0].text, and the stream
// terminates on message_stop.
package anthropic
