// Package history defines the Store interface for conversation persistence.
// Implementations keep the ordered [ai.Message] turns of one conversation
// plus its title. The interface is intentionally minimal: it covers the
// operations the chat session needs for turn-based conversations. Methods
// return errors so file- and database-backed implementations can surface
// failures instead of silently swallowing them.
//
// Bundled implementations live in the sibling packages inmemory (volatile,
// concurrency-safe) and jsonfile (single JSON document on disk).
package history

import (
	"context"

	"github.com/2214372851/YunChat/providers/ai"
)

// Store keeps the state of a single conversation.
type Store interface {
	// Append adds message to the end of the conversation.
	Append(ctx context.Context, message ai.Message) error

	// Messages returns a copy of the full conversation in order.
	Messages(ctx context.Context) ([]ai.Message, error)

	// Clear removes every message. The title is kept.
	Clear(ctx context.Context) error

	// SetTitle replaces the conversation title.
	SetTitle(ctx context.Context, title string) error

	// Title returns the conversation title, empty when none was set.
	Title(ctx context.Context) (string, error)
}
