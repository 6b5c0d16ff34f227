package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/2214372851/YunChat/providers/ai"
)

// stubTransport records every Chat call and replays canned replies.
type stubTransport struct {
	replies []string
	err     error
	deltas  []string

	calls   [][]ai.Message
	options []*ai.GenerationOptions
}

var _ ai.Transport = (*stubTransport)(nil)

func (stub *stubTransport) Chat(_ context.Context, messages []ai.Message, options *ai.GenerationOptions, onDelta ai.DeltaFunc) (string, error) {
	snapshot := make([]ai.Message, len(messages))
	copy(snapshot, messages)
	stub.calls = append(stub.calls, snapshot)
	stub.options = append(stub.options, options)

	if stub.err != nil {
		return "", stub.err
	}
	if onDelta != nil {
		for _, delta := range stub.deltas {
			onDelta(delta)
		}
	}
	reply := stub.replies[0]
	if len(stub.replies) > 1 {
		stub.replies = stub.replies[1:]
	}
	return reply, nil
}

func (stub *stubTransport) ValidateKey(context.Context) bool { return true }

func (stub *stubTransport) ListModels(context.Context) ([]ai.ModelInfo, error) { return nil, nil }

func (stub *stubTransport) DefaultOptions() ai.GenerationOptions { return ai.GenerationOptions{} }

func (stub *stubTransport) Name() string { return "stub" }

// ---- Send tests ----

// TestSession_Send_AppendsUserAndAssistantTurns verifies one turn records
// exactly the user message and the reply, in order.
func TestSession_Send_AppendsUserAndAssistantTurns(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"hi there"}}
	session := NewSession(stub)

	reply, err := session.Send(ctx, "hello", nil)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply != "hi there" {
		t.Errorf("Send() = %q, want %q", reply, "hi there")
	}

	messages, err := session.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(messages))
	}
	if messages[0].Role != ai.RoleUser || messages[0].Content != "hello" {
		t.Errorf("messages[0] = %+v, want user/hello", messages[0])
	}
	if messages[1].Role != ai.RoleAssistant || messages[1].Content != "hi there" {
		t.Errorf("messages[1] = %+v, want assistant/hi there", messages[1])
	}
}

// TestSession_Send_SendsFullHistoryInOrder verifies the second turn carries
// the whole conversation so far.
func TestSession_Send_SendsFullHistoryInOrder(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"first reply", "second reply"}}
	session := NewSession(stub)

	if _, err := session.Send(ctx, "first question", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := session.Send(ctx, "second question", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(stub.calls) != 2 {
		t.Fatalf("transport saw %d calls, want 2", len(stub.calls))
	}
	second := stub.calls[1]
	want := []ai.Message{
		ai.UserMessage("first question"),
		ai.AssistantMessage("first reply"),
		ai.UserMessage("second question"),
	}
	if len(second) != len(want) {
		t.Fatalf("second call carried %d messages, want %d", len(second), len(want))
	}
	for i := range want {
		if second[i] != want[i] {
			t.Errorf("second call message %d = %+v, want %+v", i, second[i], want[i])
		}
	}
}

// TestSession_Send_EmptyContent verifies blank input is rejected before any
// transport or history activity.
func TestSession_Send_EmptyContent(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"unused"}}
	session := NewSession(stub)

	if _, err := session.Send(ctx, "   ", nil); err == nil {
		t.Fatal("Send() with blank content returned nil error")
	}
	if len(stub.calls) != 0 {
		t.Errorf("transport saw %d calls, want 0", len(stub.calls))
	}
	messages, _ := session.Messages(ctx)
	if len(messages) != 0 {
		t.Errorf("history has %d messages, want 0", len(messages))
	}
}

// TestSession_Send_TransportError_KeepsUserTurn verifies a failed turn
// leaves the user message in place so a retry continues the conversation.
func TestSession_Send_TransportError_KeepsUserTurn(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{err: errors.New("boom")}
	session := NewSession(stub)

	if _, err := session.Send(ctx, "hello", nil); err == nil {
		t.Fatal("Send() with failing transport returned nil error")
	}

	messages, _ := session.Messages(ctx)
	if len(messages) != 1 {
		t.Fatalf("history has %d messages, want the user turn only", len(messages))
	}
	if messages[0].Role != ai.RoleUser {
		t.Errorf("messages[0].Role = %q, want %q", messages[0].Role, ai.RoleUser)
	}

	stub.err = nil
	stub.replies = []string{"recovered"}
	if _, err := session.Send(ctx, "are you there?", nil); err != nil {
		t.Fatalf("retry Send() error = %v", err)
	}
	if got := len(stub.calls[len(stub.calls)-1]); got != 2 {
		t.Errorf("retry carried %d messages, want 2", got)
	}
}

// TestSession_Send_StreamsDeltas verifies onDelta is forwarded to the
// transport and sees every fragment.
func TestSession_Send_StreamsDeltas(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"Hello"}, deltas: []string{"Hel", "lo"}}
	session := NewSession(stub)

	var got []string
	reply, err := session.Send(ctx, "hi", func(delta string) { got = append(got, delta) })
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if strings.Join(got, "") != reply {
		t.Errorf("deltas %q do not assemble into reply %q", got, reply)
	}
}

// TestSession_WithOptions_ForwardsToTransport verifies the configured
// options reach the transport unchanged.
func TestSession_WithOptions_ForwardsToTransport(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"ok"}}
	options := &ai.GenerationOptions{}
	session := NewSession(stub).WithOptions(options)

	if _, err := session.Send(ctx, "hello", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if stub.options[0] != options {
		t.Error("transport did not receive the configured options")
	}
}

// TestSession_Clear_DropsMessages verifies Clear empties the conversation.
func TestSession_Clear_DropsMessages(t *testing.T) {
	ctx := context.Background()
	session := NewSession(&stubTransport{replies: []string{"hi"}})

	if _, err := session.Send(ctx, "hello", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if err := session.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	messages, _ := session.Messages(ctx)
	if len(messages) != 0 {
		t.Errorf("history has %d messages after Clear, want 0", len(messages))
	}
}

// ---- SuggestTitle tests ----

// TestSession_SuggestTitle_ParsesAndStores verifies the strict-JSON reply
// becomes the stored title and the exchange stays out of the history.
func TestSession_SuggestTitle_ParsesAndStores(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"sure!", `{"title": "Weekend recipes"}`}}
	session := NewSession(stub)

	if _, err := session.Send(ctx, "got any recipe ideas?", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	title, err := session.SuggestTitle(ctx)
	if err != nil {
		t.Fatalf("SuggestTitle() error = %v", err)
	}
	if title != "Weekend recipes" {
		t.Errorf("SuggestTitle() = %q, want %q", title, "Weekend recipes")
	}

	stored, err := session.Title(ctx)
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if stored != "Weekend recipes" {
		t.Errorf("Title() = %q, want %q", stored, "Weekend recipes")
	}

	messages, _ := session.Messages(ctx)
	if len(messages) != 2 {
		t.Errorf("history has %d messages, want 2 (title exchange must not be recorded)", len(messages))
	}

	titleCall := stub.calls[len(stub.calls)-1]
	last := titleCall[len(titleCall)-1]
	if last.Role != ai.RoleUser || !strings.Contains(last.Content, "title") {
		t.Errorf("title request ends with %+v, want a user title instruction", last)
	}
}

// TestSession_SuggestTitle_RepairsSloppyJSON verifies fenced single-quoted
// replies still parse.
func TestSession_SuggestTitle_RepairsSloppyJSON(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"sure!", "```json\n{title: 'Weekend recipes'}\n```"}}
	session := NewSession(stub)

	if _, err := session.Send(ctx, "got any recipe ideas?", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	title, err := session.SuggestTitle(ctx)
	if err != nil {
		t.Fatalf("SuggestTitle() error = %v", err)
	}
	if title != "Weekend recipes" {
		t.Errorf("SuggestTitle() = %q, want %q", title, "Weekend recipes")
	}
}

// TestSession_SuggestTitle_EmptyConversation verifies titling requires at
// least one recorded message.
func TestSession_SuggestTitle_EmptyConversation(t *testing.T) {
	session := NewSession(&stubTransport{replies: []string{`{"title": "x"}`}})

	if _, err := session.SuggestTitle(context.Background()); err == nil {
		t.Fatal("SuggestTitle() on empty conversation returned nil error")
	}
}

// TestSession_SuggestTitle_EmptyTitle verifies a blank parsed title is an
// error rather than silently stored.
func TestSession_SuggestTitle_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	stub := &stubTransport{replies: []string{"sure!", `{"title": "  "}`}}
	session := NewSession(stub)

	if _, err := session.Send(ctx, "hello", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := session.SuggestTitle(ctx); err == nil {
		t.Fatal("SuggestTitle() with blank title returned nil error")
	}
}
