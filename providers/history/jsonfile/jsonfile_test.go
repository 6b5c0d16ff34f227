package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2214372851/YunChat/providers/ai"
)

// ---- Open tests ----

// TestOpen_MissingFile_StartsFresh verifies a nonexistent path yields an
// empty conversation without touching the disk.
func TestOpen_MissingFile_StartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats", "demo.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	messages, err := store.Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("fresh store has %d messages, want 0", len(messages))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Open() created %s before any write", path)
	}
}

// TestOpen_CorruptedFile_ReturnsError verifies undecodable documents are
// reported instead of silently discarded.
func TestOpen_CorruptedFile_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("Open() on corrupted file returned nil error")
	}
}

// ---- persistence tests ----

// TestStore_AppendAndReopen_RoundTripsMessages verifies messages survive a
// store restart in insertion order.
func TestStore_AppendAndReopen_RoundTripsMessages(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "demo.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Append(ctx, ai.UserMessage("hello")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, ai.AssistantMessage("hi there")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after write error = %v", err)
	}
	messages, err := reopened.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("reopened store has %d messages, want 2", len(messages))
	}
	if messages[0].Role != ai.RoleUser || messages[0].Content != "hello" {
		t.Errorf("messages[0] = %+v, want user/hello", messages[0])
	}
	if messages[1].Role != ai.RoleAssistant || messages[1].Content != "hi there" {
		t.Errorf("messages[1] = %+v, want assistant/hi there", messages[1])
	}
}

// TestStore_SetTitle_SurvivesClearAndReopen verifies Clear drops messages
// but keeps the title, and that both survive a restart.
func TestStore_SetTitle_SurvivesClearAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "demo.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Append(ctx, ai.UserMessage("hello")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.SetTitle(ctx, "Weekend recipes"); err != nil {
		t.Fatalf("SetTitle() error = %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after clear error = %v", err)
	}
	title, err := reopened.Title(ctx)
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "Weekend recipes" {
		t.Errorf("Title() = %q, want %q", title, "Weekend recipes")
	}
	messages, err := reopened.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("cleared store has %d messages, want 0", len(messages))
	}
}

// TestStore_WithMetadata_PersistsProviderAndModel verifies the metadata
// lands in the document on the next write.
func TestStore_WithMetadata_PersistsProviderAndModel(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "demo.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.WithMetadata("openai", "gpt-4o-mini").Append(ctx, ai.UserMessage("hello")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading conversation file: %v", err)
	}
	var doc struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding conversation file: %v", err)
	}
	if doc.Provider != "openai" {
		t.Errorf("provider = %q, want %q", doc.Provider, "openai")
	}
	if doc.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want %q", doc.Model, "gpt-4o-mini")
	}
}

// TestStore_Save_LeavesNoTempFiles verifies the atomic write cleans up
// after itself.
func TestStore_Save_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(filepath.Join(dir, "demo.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.Append(ctx, ai.UserMessage("hello")); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "conversation-") {
			t.Errorf("temp file %s left behind", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want just the conversation file", len(entries))
	}
}

// TestStore_Messages_ReturnsCopy verifies callers cannot mutate the stored
// conversation through the returned slice.
func TestStore_Messages_ReturnsCopy(t *testing.T) {
	ctx := context.Background()

	store, err := Open(filepath.Join(t.TempDir(), "demo.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Append(ctx, ai.UserMessage("hello")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	first, _ := store.Messages(ctx)
	first[0].Content = "tampered"

	second, _ := store.Messages(ctx)
	if second[0].Content != "hello" {
		t.Errorf("stored message = %q, want %q", second[0].Content, "hello")
	}
}
