package ai

import (
	"iter"
	"strings"
)

// StreamEventType discriminates the events a [ChatStream] yields.
type StreamEventType string

const (
	// StreamEventContent carries one text fragment of the reply.
	StreamEventContent StreamEventType = "content"
	// StreamEventDone terminates the stream and carries the full reply text.
	StreamEventDone StreamEventType = "done"
)

// StreamEvent is one element of a streamed chat reply.
type StreamEvent struct {
	Type StreamEventType
	// Content is the text fragment, set on content events.
	Content string
	// Text is the concatenation of every fragment, set on the done event.
	Text string
}

// ChatStream is an iterator over the events of one streamed reply. A stream
// is single-use: once iteration stops, normally or early, the underlying
// connection is released and the stream cannot be ranged again.
type ChatStream struct {
	iterator iter.Seq2[StreamEvent, error]
}

// NewChatStream wraps an event iterator in a ChatStream.
func NewChatStream(iterator iter.Seq2[StreamEvent, error]) *ChatStream {
	return &ChatStream{iterator: iterator}
}

// Iter exposes the raw event sequence for use in a range statement:
//
//	for event, err := range stream.Iter() {
//	    ...
//	}
func (stream *ChatStream) Iter() iter.Seq2[StreamEvent, error] {
	return stream.iterator
}

// Collect drains the stream and returns the concatenated reply text.
func (stream *ChatStream) Collect() (string, error) {
	return stream.Text(nil)
}

// Text drains the stream, invoking onDelta for every content fragment when
// it is non-nil, and returns the concatenation of exactly the fragments the
// callback observed. On a mid-stream error the text accumulated so far is
// returned alongside the error.
func (stream *ChatStream) Text(onDelta DeltaFunc) (string, error) {
	var builder strings.Builder
	for event, err := range stream.iterator {
		if err != nil {
			return builder.String(), err
		}
		if event.Type != StreamEventContent || event.Content == "" {
			continue
		}
		builder.WriteString(event.Content)
		if onDelta != nil {
			onDelta(event.Content)
		}
	}
	return builder.String(), nil
}
