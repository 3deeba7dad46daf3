package models

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// DummyLLM is a lightweight model implementation useful for offline runs and
// tests without API calls. When scripted replies are queued it plays them
// back in order; otherwise it echoes the last non-empty prompt line.
type DummyLLM struct {
	Prefix string

	mu      sync.Mutex
	replies []string
}

func NewDummyLLM(prefix string) *DummyLLM {
	if strings.TrimSpace(prefix) == "" {
		prefix = "Dummy response:"
	}
	return &DummyLLM{Prefix: prefix}
}

// Queue appends scripted replies returned by subsequent Generate calls.
func (d *DummyLLM) Queue(replies ...string) *DummyLLM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.replies = append(d.replies, replies...)
	return d
}

func (d *DummyLLM) Generate(_ context.Context, prompt string) (any, error) {
	d.mu.Lock()
	if len(d.replies) > 0 {
		next := d.replies[0]
		d.replies = d.replies[1:]
		d.mu.Unlock()
		return next, nil
	}
	d.mu.Unlock()

	lines := strings.Split(prompt, "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		candidate := strings.TrimSpace(lines[i])
		if candidate != "" {
			last = candidate
			break
		}
	}
	if last == "" {
		last = "<empty prompt>"
	}
	return fmt.Sprintf("%s %s", d.Prefix, last), nil
}

var _ Agent = (*DummyLLM)(nil)
