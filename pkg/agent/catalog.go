package agent

import (
	"fmt"
	"strings"
	"sync"
)

// StaticToolCatalog is a fixed, name-keyed tool registry. Names are matched
// case-insensitively and specs are returned in registration order.
type StaticToolCatalog struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewStaticToolCatalog(tools ...Tool) (*StaticToolCatalog, error) {
	c := &StaticToolCatalog{tools: make(map[string]Tool)}
	for _, t := range tools {
		if err := c.Register(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *StaticToolCatalog) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("catalog: nil tool")
	}
	name := strings.ToLower(strings.TrimSpace(tool.Spec().Name))
	if name == "" {
		return fmt.Errorf("catalog: tool has empty name")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tools[name]; exists {
		return fmt.Errorf("catalog: duplicate tool %q", name)
	}
	c.tools[name] = tool
	c.order = append(c.order, name)
	return nil
}

func (c *StaticToolCatalog) Lookup(name string) (Tool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tools[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

func (c *StaticToolCatalog) Specs() []ToolSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	specs := make([]ToolSpec, 0, len(c.order))
	for _, name := range c.order {
		specs = append(specs, c.tools[name].Spec())
	}
	return specs
}
