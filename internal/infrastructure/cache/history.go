package cache

import (
	"context"
	"sync"

	"github.com/johnquangdev/team-assistant/pkg/llm"
)

const defaultHistoryLimit = 20

// HistoryStore keeps per-session assistant conversation history in memory,
// bounded to the most recent messages so prompts stay a fixed size.
type HistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Message
	limit    int
}

// NewHistoryStore creates a history store keeping at most limit messages per
// session (0 uses the default)
func NewHistoryStore(limit int) *HistoryStore {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &HistoryStore{
		sessions: make(map[string][]llm.Message),
		limit:    limit,
	}
}

// History returns a copy of the session's messages, oldest first
func (hs *HistoryStore) History(_ context.Context, sessionID string) []llm.Message {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return append([]llm.Message(nil), hs.sessions[sessionID]...)
}

// Append adds one message to the session, evicting the oldest beyond the
// limit
func (hs *HistoryStore) Append(_ context.Context, sessionID, role, content string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	messages := append(hs.sessions[sessionID], llm.Message{Role: role, Content: content})
	if len(messages) > hs.limit {
		messages = messages[len(messages)-hs.limit:]
	}
	hs.sessions[sessionID] = messages
}

// Clear drops a session's history
func (hs *HistoryStore) Clear(_ context.Context, sessionID string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	delete(hs.sessions, sessionID)
}
