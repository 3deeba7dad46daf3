package agent

import "context"

// ToolSpec describes a callable tool to the model: its name, what it does,
// and a JSON schema for its arguments.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// ToolRequest carries the parsed arguments of a single invocation.
type ToolRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResponse is what the model sees after a tool runs. Failed lookups are
// reported through Success and Error rather than an invocation error so the
// chain keeps going.
type ToolResponse struct {
	Content any    `json:"content,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Tool is one capability the agent can exercise during a run.
type Tool interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}

// ToolCatalog resolves tool names to implementations.
type ToolCatalog interface {
	Register(tool Tool) error
	Lookup(name string) (Tool, bool)
	Specs() []ToolSpec
}
