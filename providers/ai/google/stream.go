package google

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

// decodeBuffered reads the complete streamGenerateContent body, decodes it
// as a JSON array of chunks, and replays each chunk's text as a content
// event followed by a done event.
//
// Because nothing is yielded until the whole array has parsed, a malformed
// body produces a single *ai.DecodeError and zero deltas — there is no
// per-chunk skipping here, unlike the SSE decoders. The body is capped at
// [utils.MaxResponseBodySize] and closed before the first yield.
func decodeBuffered(ctx context.Context, body io.ReadCloser) iter.Seq2[ai.StreamEvent, error] {
	return func(yield func(ai.StreamEvent, error) bool) {
		observer := observability.ObserverFromContext(ctx)

		raw, err := io.ReadAll(io.LimitReader(body, utils.MaxResponseBodySize))
		utils.CloseWithLog(body)
		if err != nil {
			yield(ai.StreamEvent{}, &ai.TransportError{Message: "read streamed response", Err: err})
			return
		}

		var chunks []generateContentResponse
		if parseErr := json.Unmarshal(raw, &chunks); parseErr != nil {
			if observer != nil {
				observer.Warn(ctx, "google stream response not a chunk array",
					observability.Error(parseErr),
					observability.Int(observability.AttrHTTPResponseBodySize, len(raw)),
				)
			}
			yield(ai.StreamEvent{}, &ai.DecodeError{Message: "parse streamed response array", Err: parseErr})
			return
		}

		var full strings.Builder
		deltaCount := 0
		for _, chunk := range chunks {
			text := chunkText(chunk)
			if text == "" {
				continue
			}
			full.WriteString(text)
			deltaCount++
			if !yield(ai.StreamEvent{Type: ai.StreamEventContent, Content: text}, nil) {
				return
			}
		}

		if observer != nil {
			observer.Debug(ctx, "google stream finished",
				observability.Int(observability.AttrResponseDeltas, deltaCount),
				observability.Int(observability.AttrResponseLength, full.Len()),
			)
		}
		yield(ai.StreamEvent{Type: ai.StreamEventDone, Text: full.String()}, nil)
	}
}
