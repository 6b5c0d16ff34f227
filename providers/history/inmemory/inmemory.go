// Package inmemory provides a volatile, concurrency-safe history store.
// It is the default store for throwaway sessions and tests.
package inmemory

import (
	"context"
	"sync"

	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/history"
	"github.com/2214372851/YunChat/providers/observability"
)

// Store is a simple in-memory conversation store. It uses an RWMutex to
// guard access and is efficient for read-heavy workloads.
type Store struct {
	mu       sync.RWMutex
	title    string
	messages []ai.Message
}

// New returns a new, empty [Store] ready for immediate use.
func New() *Store {
	return &Store{
		messages: []ai.Message{},
	}
}

// Ensure Store implements history.Store at compile time.
var _ history.Store = (*Store)(nil)

// Append stores a copy of message at the end of the conversation. When an
// observer is present in ctx, the message role, content length and running
// total are recorded.
func (store *Store) Append(ctx context.Context, message ai.Message) error {
	store.mu.Lock()
	store.messages = append(store.messages, message)
	totalMessages := len(store.messages)
	store.mu.Unlock()

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Trace(ctx, "history message appended",
			observability.String(observability.AttrHistoryMessageRole, string(message.Role)),
			observability.Int(observability.AttrHistoryMessageLength, len(message.Content)),
			observability.Int(observability.AttrHistoryTotalMessages, totalMessages),
		)
	}
	return nil
}

// Messages returns a copy of all messages to avoid external mutation of
// internal state. The returned error is always nil.
func (store *Store) Messages(_ context.Context) ([]ai.Message, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	out := make([]ai.Message, len(store.messages))
	copy(out, store.messages)
	return out, nil
}

// Clear removes all messages while retaining the underlying slice capacity,
// so subsequent appends do not immediately trigger a reallocation.
func (store *Store) Clear(ctx context.Context) error {
	store.mu.Lock()
	store.messages = store.messages[:0]
	store.mu.Unlock()

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Trace(ctx, "history cleared")
	}
	return nil
}

// SetTitle replaces the conversation title. The returned error is always nil.
func (store *Store) SetTitle(_ context.Context, title string) error {
	store.mu.Lock()
	store.title = title
	store.mu.Unlock()
	return nil
}

// Title returns the conversation title. The returned error is always nil.
func (store *Store) Title(_ context.Context) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.title, nil
}
