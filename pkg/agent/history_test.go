package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistorySessionsAreIsolated(t *testing.T) {
	h := NewHistory()
	h.Append("s1", "user", "find leads")
	h.Append("s1", "assistant", "found 3")
	h.Append("s2", "user", "unrelated")

	assert.Len(t, h.Turns("s1"), 2)
	assert.Len(t, h.Turns("s2"), 1)
	assert.Empty(t, h.Turns("s3"))
}

func TestHistoryRender(t *testing.T) {
	h := NewHistory()
	h.Append("s", "user", "hello")
	h.Append("s", "assistant", "hi")

	assert.Equal(t, "user: hello\nassistant: hi\n", h.Render("s"))
	assert.Empty(t, h.Render("missing"))
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Append("s", "user", "hello")
	h.Clear("s")
	assert.Empty(t, h.Turns("s"))
}
