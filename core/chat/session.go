// Package chat orchestrates a conversation between a transport and a
// history store: each turn appends the user message, sends the full
// ordered history, and appends the assistant reply.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/history"
	"github.com/2214372851/YunChat/providers/history/inmemory"
	"github.com/2214372851/YunChat/providers/observability"
)

// titlePrompt asks for strict JSON so the reply can be parsed; the lenient
// parser still copes when the model wraps it in a code fence anyway.
const titlePrompt = `Suggest a concise title (at most six words) for this conversation. Respond with strict JSON and nothing else: {"title": "..."}`

type titlePayload struct {
	Title string `json:"title"`
}

// Session ties a transport to a history store. A new Session records the
// conversation in memory; use WithHistory to persist it elsewhere.
type Session struct {
	transport ai.Transport
	store     history.Store
	options   *ai.GenerationOptions
}

// NewSession creates a session backed by an in-memory history store.
func NewSession(transport ai.Transport) *Session {
	return &Session{
		transport: transport,
		store:     inmemory.New(),
	}
}

// WithHistory replaces the session's history store. Existing messages in
// the replaced store are not migrated.
func (session *Session) WithHistory(store history.Store) *Session {
	if store != nil {
		session.store = store
	}
	return session
}

// WithOptions sets the generation options sent with every turn. Passing
// nil restores the transport's defaults.
func (session *Session) WithOptions(options *ai.GenerationOptions) *Session {
	session.options = options
	return session
}

// Send records content as a user turn, sends the full conversation to the
// transport, records the assistant reply, and returns it. When onDelta is
// non-nil the reply is streamed through it as it arrives.
//
// The user turn stays in the history even when the transport fails, so a
// retry continues the same conversation.
func (session *Session) Send(ctx context.Context, content string, onDelta ai.DeltaFunc) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("message content cannot be empty")
	}

	if err := session.store.Append(ctx, ai.UserMessage(content)); err != nil {
		return "", fmt.Errorf("store user message: %w", err)
	}

	messages, err := session.store.Messages(ctx)
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Debug(ctx, "chat.turn.started",
			observability.String(observability.AttrLLMProvider, session.transport.Name()),
			observability.Int(observability.AttrRequestMessagesCount, len(messages)),
		)
	}

	reply, err := session.transport.Chat(ctx, messages, session.options, onDelta)
	if err != nil {
		return "", err
	}

	if err := session.store.Append(ctx, ai.AssistantMessage(reply)); err != nil {
		return "", fmt.Errorf("store assistant message: %w", err)
	}
	return reply, nil
}

// Messages returns the conversation recorded so far.
func (session *Session) Messages(ctx context.Context) ([]ai.Message, error) {
	return session.store.Messages(ctx)
}

// Clear drops the recorded conversation, keeping any stored title.
func (session *Session) Clear(ctx context.Context) error {
	return session.store.Clear(ctx)
}

// Title returns the conversation title, empty if none was set yet.
func (session *Session) Title(ctx context.Context) (string, error) {
	return session.store.Title(ctx)
}

// SuggestTitle asks the model to name the conversation, stores the result
// as the history title, and returns it. The title exchange itself is not
// recorded in the history.
func (session *Session) SuggestTitle(ctx context.Context) (string, error) {
	messages, err := session.store.Messages(ctx)
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("cannot title an empty conversation")
	}

	raw, err := session.transport.Chat(ctx, append(messages, ai.UserMessage(titlePrompt)), session.options, nil)
	if err != nil {
		return "", err
	}

	payload, err := utils.ParseStringAs[titlePayload](raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse title suggestion: %w", err)
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return "", fmt.Errorf("model returned an empty title")
	}

	if err := session.store.SetTitle(ctx, title); err != nil {
		return "", fmt.Errorf("store title: %w", err)
	}
	return title, nil
}
