package tools

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
)

// CSVLeadWriter exports lead batches to timestamped CSV files with a fixed
// column set, so downstream imports never see a shifting schema.
type CSVLeadWriter struct {
	Dir     string
	Clock   clockwork.Clock
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

func NewCSVLeadWriter(dir string, clock clockwork.Clock, logger *zap.Logger, metrics *observability.Metrics) *CSVLeadWriter {
	if dir == "" {
		dir = "output"
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &CSVLeadWriter{Dir: dir, Clock: clock, Logger: logger, Metrics: metrics}
}

// WriteLeads writes one row per lead plus the header and returns the path.
// Leads are normalized first so every row honors the phone invariant.
func (w *CSVLeadWriter) WriteLeads(items []leads.Lead, name string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no leads to write")
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name = strings.TrimSuffix(name, ".csv")
	now := w.Clock.Now()
	path := filepath.Join(w.Dir, fmt.Sprintf("%s_%s.csv", name, now.Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(leads.CSVHeader); err != nil {
		return "", err
	}
	for i := range items {
		items[i].Normalize()
		if err := cw.Write(items[i].CSVRow(now)); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}

	w.Metrics.LeadsWritten.Add(float64(len(items)))
	w.Logger.Info("leads written",
		zap.String("path", path),
		zap.Int("rows", len(items)))
	return path, nil
}

var _ agent.LeadWriter = (*CSVLeadWriter)(nil)

// WriteLeadsTool lets the model export leads mid-run.
type WriteLeadsTool struct {
	Writer *CSVLeadWriter
}

type writeLeadsResult struct {
	Filepath    string   `json:"filepath"`
	Format      string   `json:"format"`
	RowsWritten int      `json:"rows_written"`
	Columns     []string `json:"columns"`
}

func (t *WriteLeadsTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "write_leads",
		Description: "Write lead data to a timestamped CSV file in the output directory.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"rows": map[string]any{
					"type":        "array",
					"description": "Lead objects with name, phone, address, type, score fields",
					"items":       map[string]any{"type": "object"},
				},
				"filename": map[string]any{"type": "string", "description": "Output filename without extension"},
			},
			"required": []string{"rows", "filename"},
		},
	}
}

func (t *WriteLeadsTool) Invoke(_ context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	rows, err := decodeLeads(req.Args["rows"])
	if err != nil {
		return agent.ToolResponse{Success: false, Error: err.Error()}, nil
	}
	if len(rows) == 0 {
		return agent.ToolResponse{Success: false, Error: "No rows to write"}, nil
	}

	filename := stringArg(req.Args, "filename")
	if filename == "" {
		filename = "leads"
	}

	path, err := t.Writer.WriteLeads(rows, filename)
	if err != nil {
		return agent.ToolResponse{Success: false, Error: err.Error()}, nil
	}
	return agent.ToolResponse{
		Success: true,
		Content: writeLeadsResult{
			Filepath:    path,
			Format:      "csv",
			RowsWritten: len(rows),
			Columns:     leads.CSVHeader,
		},
	}, nil
}

func decodeLeads(raw any) ([]leads.Lead, error) {
	if raw == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	var rows []leads.Lead
	if err := json.Unmarshal(encoded, &rows); err != nil {
		return nil, fmt.Errorf("rows must be an array of lead objects: %w", err)
	}
	return rows, nil
}

// messageTemplates keys outreach copy by lead type. Placeholders {name},
// {role}, and {area} are substituted; templates may use any subset of them.
var messageTemplates = map[string]string{
	"middleman": `Hi {name},

I'm reaching out from Lone Ranger Roofing. We're connecting with {role}s in the {area} area for referral partnerships.

We offer competitive referral fees and prioritize quality work. Would you be open to a quick call?

Best,
Lone Ranger Roofing`,

	"storm": `Hello,

We noticed recent storm activity in your area and wanted to offer our services. Lone Ranger Roofing provides free roof inspections to help assess any potential damage.

If you'd like to schedule a no-obligation inspection, please reply or call.

Stay safe,
Lone Ranger Roofing`,

	"homeowner": `Hello,

Lone Ranger Roofing is offering free roof inspections in your neighborhood. A professional inspection can help identify issues before they become costly repairs.

Would you be interested in scheduling a free assessment?

Best,
Lone Ranger Roofing`,
}

// GenerateMessage renders the outreach template for a lead type, falling
// back to the homeowner copy for unknown types.
func GenerateMessage(leadType, name, role, area string) string {
	template, ok := messageTemplates[leadType]
	if !ok {
		template = messageTemplates["homeowner"]
	}
	if name == "" {
		name = "there"
	}
	if role == "" {
		role = "professional"
	}
	if area == "" {
		area = "your"
	}
	return strings.NewReplacer(
		"{name}", name,
		"{role}", role,
		"{area}", area,
	).Replace(template)
}

// GenerateMessageTool renders outreach copy for the agent.
type GenerateMessageTool struct{}

type generatedMessage struct {
	LeadType    string `json:"lead_type"`
	Message     string `json:"message"`
	ContextUsed string `json:"context_used,omitempty"`
	Note        string `json:"note"`
}

func (t *GenerateMessageTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "generate_message",
		Description: "Generate an outreach message template for a lead. lead_type is one of: middleman, storm, homeowner.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lead_type": map[string]any{"type": "string", "description": "middleman, storm, or homeowner"},
				"name":      map[string]any{"type": "string"},
				"role":      map[string]any{"type": "string", "description": "Professional role for middlemen"},
				"area":      map[string]any{"type": "string", "description": "City or area name"},
				"context":   map[string]any{"type": "string", "description": "Additional context like storm details"},
			},
			"required": []string{"lead_type"},
		},
	}
}

func (t *GenerateMessageTool) Invoke(_ context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	leadType := stringArg(req.Args, "lead_type")
	msg := GenerateMessage(
		leadType,
		stringArg(req.Args, "name"),
		stringArg(req.Args, "role"),
		stringArg(req.Args, "area"),
	)
	return agent.ToolResponse{
		Success: true,
		Content: generatedMessage{
			LeadType:    leadType,
			Message:     msg,
			ContextUsed: stringArg(req.Args, "context"),
			Note:        "Review and personalize before sending",
		},
	}, nil
}
