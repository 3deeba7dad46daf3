package agent

import (
	"fmt"
	"strings"
	"sync"
)

// Turn is one entry in a session transcript.
type Turn struct {
	Role    string // user, assistant, tool
	Content string
}

// History keeps per-session transcripts in memory so the chat loop can carry
// context between questions.
type History struct {
	mu       sync.Mutex
	sessions map[string][]Turn
}

func NewHistory() *History {
	return &History{sessions: make(map[string][]Turn)}
}

func (h *History) Append(sessionID, role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sessionID] = append(h.sessions[sessionID], Turn{Role: role, Content: content})
}

func (h *History) Turns(sessionID string) []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	turns := h.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Render flattens a transcript into prompt text, most recent last.
func (h *History) Render(sessionID string) string {
	turns := h.Turns(sessionID)
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return b.String()
}

func (h *History) Clear(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
}
