// Package jsonfile provides a history store that persists a single
// conversation as a JSON document on disk.
//
// Writes are atomic: the document is encoded into a temporary file in the
// same directory and renamed over the target, so a crash mid-write never
// leaves a truncated conversation behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/history"
	"github.com/2214372851/YunChat/providers/observability"
)

// conversation is the on-disk document. Provider and model are metadata
// only; they record which transport produced the messages and are never
// used to re-authenticate.
type conversation struct {
	Title    string       `json:"title,omitempty"`
	Provider string       `json:"provider,omitempty"`
	Model    string       `json:"model,omitempty"`
	Created  time.Time    `json:"created"`
	Updated  time.Time    `json:"updated"`
	Messages []ai.Message `json:"messages"`
}

// Store persists one conversation to a JSON file. It is safe for
// concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	conv conversation
}

var _ history.Store = (*Store)(nil)

// Open loads the conversation stored at path, or initializes a fresh one
// when the file does not exist yet. The parent directory is created if
// needed; the file itself is only written on the first mutation.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			store.conv = conversation{Created: time.Now().UTC()}
			return store, nil
		}
		return nil, fmt.Errorf("open conversation file: %w", err)
	}

	if err := json.Unmarshal(data, &store.conv); err != nil {
		return nil, fmt.Errorf("decode conversation file: %w", err)
	}
	return store, nil
}

// WithMetadata records the provider and model that produce this
// conversation. The metadata is persisted on the next write.
func (store *Store) WithMetadata(provider, model string) *Store {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.conv.Provider = provider
	store.conv.Model = model
	return store
}

// Path returns the file the conversation is persisted to.
func (store *Store) Path() string {
	return store.path
}

// Append adds a message to the conversation and persists the document.
func (store *Store) Append(ctx context.Context, message ai.Message) error {
	store.mu.Lock()
	store.conv.Messages = append(store.conv.Messages, message)
	totalMessages := len(store.conv.Messages)
	err := store.save()
	store.mu.Unlock()
	if err != nil {
		return err
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Trace(ctx, "history message appended",
			observability.String(observability.AttrHistoryMessageRole, string(message.Role)),
			observability.Int(observability.AttrHistoryMessageLength, len(message.Content)),
			observability.Int(observability.AttrHistoryTotalMessages, totalMessages),
		)
	}
	return nil
}

// Messages returns a copy of the stored conversation in insertion order.
func (store *Store) Messages(_ context.Context) ([]ai.Message, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	messages := make([]ai.Message, len(store.conv.Messages))
	copy(messages, store.conv.Messages)
	return messages, nil
}

// Clear removes every message while keeping the title and metadata.
func (store *Store) Clear(ctx context.Context) error {
	store.mu.Lock()
	store.conv.Messages = nil
	err := store.save()
	store.mu.Unlock()
	if err != nil {
		return err
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Trace(ctx, "history cleared")
	}
	return nil
}

// SetTitle stores the conversation title and persists the document.
func (store *Store) SetTitle(_ context.Context, title string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.conv.Title = title
	return store.save()
}

// Title returns the stored conversation title, empty if none was set.
func (store *Store) Title(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.conv.Title, nil
}

// save writes the document atomically. Callers must hold the lock.
func (store *Store) save() error {
	store.conv.Updated = time.Now().UTC()

	tmp, err := os.CreateTemp(filepath.Dir(store.path), "conversation-*.json")
	if err != nil {
		return fmt.Errorf("create temp conversation file: %w", err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(store.conv); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode conversation: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp conversation file: %w", err)
	}

	if err := os.Rename(tmp.Name(), store.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist conversation: %w", err)
	}
	return nil
}
