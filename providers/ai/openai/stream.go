package openai

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
// sequence. Each well-formed chunk with text yields one content event in
// arrival order; chunks that fail to parse are skipped so a single glitched
// line never kills an otherwise healthy stream. The [DONE] sentinel (and a
// plain EOF) terminate the sequence with a done event carrying the full
// concatenated text.
//
// The body is closed when the iterator is exhausted or the caller breaks out
// of the loop early.
func decodeStream(ctx context.Context, body io.ReadCloser) iter.Seq2[ai.StreamEvent, error] {
	return func(yield func(ai.StreamEvent, error) bool) {
		defer utils.CloseWithLog(body)

		observer := observability.ObserverFromContext(ctx)
		scanner := utils.NewSSEScanner(body)

		var full strings.Builder
		deltaCount := 0

		for {
			// Respect context cancellation between SSE reads.
			if ctx.Err() != nil {
				yield(ai.StreamEvent{}, ctx.Err())
				return
			}

			payload, err := scanner.Next()
			if err == io.EOF {
				if observer != nil {
					observer.Debug(ctx, "openai stream finished",
						observability.Int(observability.AttrResponseDeltas, deltaCount),
						observability.Int(observability.AttrResponseLength, full.Len()),
					)
				}
				yield(ai.StreamEvent{Type: ai.StreamEventDone, Text: full.String()}, nil)
				return
			}
			if err != nil {
				yield(ai.StreamEvent{}, &ai.TransportError{Message: "stream read failed", Err: err})
				return
			}

			var chunk chatCompletionsChunk
			if parseErr := json.Unmarshal([]byte(payload), &chunk); parseErr != nil {
				// A malformed chunk is dropped, not fatal.
				if observer != nil {
					observer.Warn(ctx, "skipping malformed stream chunk",
						observability.Error(parseErr),
						observability.String("chunk.preview", observability.TruncateString(payload, 200)),
					)
				}
				continue
			}

			delta := chunkText(chunk)
			if delta == "" {
				continue
			}

			full.WriteString(delta)
			deltaCount++
			if !yield(ai.StreamEvent{Type: ai.StreamEventContent, Content: delta}, nil) {
				return
			}
		}
	}
}
