package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
)

// LeadsReport is the structured result of a lead search run.
type LeadsReport struct {
	Leads               []leads.Lead `json:"leads"`
	Summary             string       `json:"summary,omitempty"`
	TotalFound          int          `json:"total_found"`
	QualifiedCount      int          `json:"qualified_count"`
	PhonesFound         int          `json:"phones_found"`
	DataSourcesUsed     []string     `json:"data_sources_used,omitempty"`
	StormEvents         []string     `json:"storm_events,omitempty"`
	SkipTraceConfigured bool         `json:"skip_trace_configured"`
}

// StormReport is the structured result of a storm scan run.
type StormReport struct {
	Alerts                 []leads.StormEvent `json:"alerts"`
	TargetAreas            []string           `json:"target_areas,omitempty"`
	Summary                string             `json:"summary,omitempty"`
	RecommendedMessageType string             `json:"recommended_message_type,omitempty"`
}

// ParseLeadsReport extracts a LeadsReport from model output. Models wrap
// JSON in prose and code fences, so everything outside the outermost braces
// is discarded. The parsed report is normalized so the counts and the
// per-lead invariants hold regardless of what the model claimed.
func ParseLeadsReport(reply string) (*LeadsReport, error) {
	blob, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var report LeadsReport
	if err := json.Unmarshal([]byte(blob), &report); err != nil {
		return nil, fmt.Errorf("decode leads report: %w", err)
	}

	report.normalize()
	return &report, nil
}

func (r *LeadsReport) normalize() {
	phones := 0
	qualified := 0
	for i := range r.Leads {
		r.Leads[i].Normalize()
		if r.Leads[i].PhoneAvailable {
			phones++
		}
		if r.Leads[i].Qualified {
			qualified++
		}
	}
	r.TotalFound = len(r.Leads)
	r.PhonesFound = phones
	r.QualifiedCount = qualified
}

// ParseStormReport extracts a StormReport from model output.
func ParseStormReport(reply string) (*StormReport, error) {
	blob, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var report StormReport
	if err := json.Unmarshal([]byte(blob), &report); err != nil {
		return nil, fmt.Errorf("decode storm report: %w", err)
	}
	return &report, nil
}

func extractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object in model reply")
	}
	return reply[start : end+1], nil
}
