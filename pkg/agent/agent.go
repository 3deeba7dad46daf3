package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/models"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
)

const toolPrefix = "tool:"

// ErrTurnBudgetExhausted is returned when the model is still requesting
// tools after MaxTurns generations.
var ErrTurnBudgetExhausted = errors.New("turn budget exhausted")

// Agent drives a bounded model/tool loop: the model sees the tool catalog,
// requests invocations one at a time, and each observation is appended to
// the working prompt until the model produces a final answer or the turn
// budget runs out.
type Agent struct {
	Model    models.Agent
	Catalog  ToolCatalog
	MaxTurns int
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// Options tune an Agent beyond its required model and catalog.
type Options struct {
	MaxTurns int
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

func New(model models.Agent, catalog ToolCatalog, opts Options) *Agent {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 20
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	return &Agent{
		Model:    model,
		Catalog:  catalog,
		MaxTurns: opts.MaxTurns,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	}
}

// Run executes the tool loop for one task and returns the model's final
// answer text. Tool failures become observations, never run failures; only
// a model error or an exhausted turn budget aborts the loop.
func (a *Agent) Run(ctx context.Context, task string) (string, error) {
	prompt := a.buildPrompt(task)

	for turn := 0; turn < a.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		raw, err := a.Model.Generate(ctx, prompt)
		if err != nil {
			a.Metrics.ModelCalls.WithLabelValues("error").Inc()
			return "", fmt.Errorf("model generate: %w", err)
		}
		a.Metrics.ModelCalls.WithLabelValues("ok").Inc()

		reply := strings.TrimSpace(fmt.Sprint(raw))
		a.Logger.Debug("model turn",
			zap.Int("turn", turn),
			zap.Int("reply_len", len(reply)))

		name, payload, isTool := splitCommand(reply)
		if !isTool {
			return reply, nil
		}

		observation := a.invokeTool(ctx, name, payload)
		prompt = fmt.Sprintf("%s\n\nassistant: %s\ntool %s observation: %s\n\nContinue. Use another tool or give the final answer.",
			prompt, reply, name, observation)
	}

	// The loop only repeats on tool commands, so the last reply is never a
	// usable answer. Name the real cause instead of handing it downstream.
	a.Logger.Warn("turn budget exhausted", zap.Int("max_turns", a.MaxTurns))
	return "", fmt.Errorf("%w after %d turns", ErrTurnBudgetExhausted, a.MaxTurns)
}

func (a *Agent) buildPrompt(task string) string {
	var b strings.Builder
	b.WriteString("You can call the following tools. To call one, reply with exactly one line:\n")
	b.WriteString("tool:<name> <json arguments>\n")
	b.WriteString("When you have everything you need, reply with the final answer instead.\n\n")
	b.WriteString(renderTools(a.Catalog.Specs()))
	b.WriteString("\nTask:\n")
	b.WriteString(task)
	return b.String()
}

func (a *Agent) invokeTool(ctx context.Context, name, payload string) string {
	tool, ok := a.Catalog.Lookup(name)
	if !ok {
		a.Metrics.ToolInvocations.WithLabelValues(name, "unknown").Inc()
		return fmt.Sprintf(`{"success":false,"error":"unknown tool %q"}`, name)
	}

	args, err := parseToolArguments(payload)
	if err != nil {
		a.Metrics.ToolInvocations.WithLabelValues(name, "bad_args").Inc()
		return fmt.Sprintf(`{"success":false,"error":"invalid arguments: %s"}`, err)
	}

	resp, err := tool.Invoke(ctx, ToolRequest{Name: name, Args: args})
	if err != nil {
		// Transport and upstream failures degrade to observations so a
		// single dead API cannot abort the whole chain.
		a.Metrics.ToolInvocations.WithLabelValues(name, "error").Inc()
		a.Logger.Warn("tool failed", zap.String("tool", name), zap.Error(err))
		resp = ToolResponse{Success: false, Error: err.Error()}
	} else if resp.Success {
		a.Metrics.ToolInvocations.WithLabelValues(name, "ok").Inc()
	} else {
		a.Metrics.ToolInvocations.WithLabelValues(name, "soft_fail").Inc()
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"encode observation: %s"}`, err)
	}
	return string(encoded)
}

func renderTools(specs []ToolSpec) string {
	var b strings.Builder
	b.WriteString("Available tools:\n")
	for _, spec := range specs {
		fmt.Fprintf(&b, "- %s: %s\n", spec.Name, spec.Description)
		if len(spec.InputSchema) > 0 {
			if schema, err := json.Marshal(spec.InputSchema); err == nil {
				fmt.Fprintf(&b, "  input schema: %s\n", schema)
			}
		}
	}
	return b.String()
}

// splitCommand recognizes a tool invocation line of the form
// "tool:<name> <json>" and returns its parts.
func splitCommand(reply string) (name, payload string, ok bool) {
	line := strings.TrimSpace(reply)
	// Models sometimes wrap the command in a fenced block.
	line = strings.Trim(line, "`")
	line = strings.TrimSpace(strings.TrimPrefix(line, "json"))

	if !strings.HasPrefix(strings.ToLower(line), toolPrefix) {
		return "", "", false
	}
	rest := strings.TrimSpace(line[len(toolPrefix):])
	if rest == "" {
		return "", "", false
	}

	if idx := strings.IndexAny(rest, " \t\n{"); idx >= 0 {
		if rest[idx] == '{' {
			return strings.TrimSpace(rest[:idx]), rest[idx:], true
		}
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx:]), true
	}
	return rest, "", true
}

// parseToolArguments decodes the JSON argument object, tolerating a missing
// payload and trailing prose after the closing brace.
func parseToolArguments(payload string) (map[string]any, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return map[string]any{}, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in %q", payload)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(payload[start:end+1]), &args); err != nil {
		return nil, err
	}
	return args, nil
}
