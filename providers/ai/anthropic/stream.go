package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"strings"

	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/observability"
)

// decodeStream turns an open SSE response body into the generic event
// sequence.
//
// Anthropic SSE lifecycle:
//
//	message_start → content_block_start → content_block_delta(s) →
//	content_block_stop → message_delta → message_stop
//
// Each data line yields at most one delta: text is taken from a
// content_block_delta event, or from a message-shaped payload whose first
// content block carries it, the same path the synchronous response reads.
// Lifecycle events are consumed silently, server-reported "error" events
// surface as a mid-stream error, and payloads that fail to parse are
// skipped. The body is closed when the iterator is exhausted or the caller
// breaks out early.
func decodeStream(ctx context.Context, body io.ReadCloser) iter.Seq2[ai.StreamEvent, error] {
	return func(yield func(ai.StreamEvent, error) bool) {
		defer utils.CloseWithLog(body)

		observer := observability.ObserverFromContext(ctx)
		scanner := utils.NewSSEScanner(body)

		var full strings.Builder
		deltaCount := 0

		finish := func() {
			if observer != nil {
				observer.Debug(ctx, "anthropic stream finished",
					observability.Int(observability.AttrResponseDeltas, deltaCount),
					observability.Int(observability.AttrResponseLength, full.Len()),
				)
			}
			yield(ai.StreamEvent{Type: ai.StreamEventDone, Text: full.String()}, nil)
		}

		for {
			// Respect context cancellation between SSE reads.
			if ctx.Err() != nil {
				yield(ai.StreamEvent{}, ctx.Err())
				return
			}

			payload, err := scanner.Next()
			if err == io.EOF {
				// Stream ended without message_stop; still terminate cleanly.
				finish()
				return
			}
			if err != nil {
				yield(ai.StreamEvent{}, &ai.TransportError{Message: "stream read failed", Err: err})
				return
			}

			var event streamEvent
			if parseErr := json.Unmarshal([]byte(payload), &event); parseErr != nil {
				// A malformed event is dropped, not fatal.
				if observer != nil {
					observer.Warn(ctx, "skipping malformed stream event",
						observability.Error(parseErr),
						observability.String("event.preview", observability.TruncateString(payload, 200)),
					)
				}
				continue
			}

			switch event.Type {
			case "message_stop":
				finish()
				return

			case "error":
				// Server-side failure reported mid-stream.
				message := "stream error"
				if event.Error != nil && event.Error.Message != "" {
					message = event.Error.Message
				}
				yield(ai.StreamEvent{}, &ai.TransportError{Message: message})
				return

			default:
				text := eventText(event)
				if text == "" {
					// message_start, content_block_start, content_block_stop,
					// message_delta, ping and future event types carry no text.
					continue
				}
				full.WriteString(text)
				deltaCount++
				if !yield(ai.StreamEvent{Type: ai.StreamEventContent, Content: text}, nil) {
					return
				}
			}
		}
	}
}

// eventText extracts the text fragment of one stream event. Fragments arrive
// as content_block_delta events, or as message-shaped payloads whose first
// content block carries the text the way the synchronous response does.
func eventText(event streamEvent) string {
	if event.Delta != nil && event.Delta.Type == "text_delta" {
		return event.Delta.Text
	}
	if len(event.Content) > 0 {
		return event.Content[0].Text
	}
	return ""
}
