// Package google implements [ai.StreamTransport] for the Google Generative
// Language API (Gemini). It covers request conversion to the generateContent
// wire format with the user/model role mapping, the query-parameter key
// scheme, buffered streaming via the streamGenerateContent endpoint, model
// listing, and key validation.
//
// Unlike the SSE providers, streamGenerateContent answers with a single JSON
// array of chunks. The transport buffers the complete body, decodes the
// array once, and replays each chunk's text as a delta, so callers see the
// same event sequence as with a line-framed stream.
package google
