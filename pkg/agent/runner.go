package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
)

// LeadWriter persists a batch of leads and returns the path written.
type LeadWriter interface {
	WriteLeads(items []leads.Lead, name string) (string, error)
}

// Runner wires the agent loop into the fixed lead-generation chains. Each
// chain is a prompt over the same tool catalog, so the model decides which
// tools to call while the chain fixes the goal and the output shape.
type Runner struct {
	Agent  *Agent
	Scorer leads.Scorer
	Writer LeadWriter
	Logger *zap.Logger
}

func NewRunner(a *Agent, scorer leads.Scorer, writer LeadWriter) *Runner {
	if scorer == nil {
		scorer = leads.NewWeightScorer()
	}
	logger := zap.NewNop()
	if a != nil && a.Logger != nil {
		logger = a.Logger
	}
	return &Runner{Agent: a, Scorer: scorer, Writer: writer, Logger: logger}
}

// FindLeads runs the general search chain. leadType selects the middleman or
// homeowner variant; when checkStorms is set and the location is a state
// code the chain opens with a storm check.
func (r *Runner) FindLeads(ctx context.Context, location, leadType string, yearBefore int, checkStorms bool) (*LeadsReport, error) {
	var query string
	if leadType == string(leads.TypeMiddleman) {
		query = middlemanLocationQuery(location)
	} else {
		query = homeownerQuery(location, yearBefore)
	}
	if checkStorms {
		query = stormClause(location) + query
	}

	report, err := r.runLeadsQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	r.save(report, fmt.Sprintf("%s_leads_%s", leadType, cleanName(location)))
	return report, nil
}

// FindStormLeads runs the storm chain: alerts, then properties in affected
// areas, then contact lookup.
func (r *Runner) FindStormLeads(ctx context.Context, state string) (*LeadsReport, error) {
	report, err := r.runLeadsQuery(ctx, stormLeadsQuery(state))
	if err != nil {
		return nil, err
	}
	r.save(report, fmt.Sprintf("storm_leads_%s", cleanName(state)))
	return report, nil
}

// FindMiddlemen searches for referral professionals of a given role.
func (r *Runner) FindMiddlemen(ctx context.Context, role, location string, radius int) (*LeadsReport, error) {
	report, err := r.runLeadsQuery(ctx, middlemanRoleQuery(role, location, radius))
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("middlemen_%s_%s", cleanName(role), cleanName(location))
	r.save(report, name)
	return report, nil
}

// FindLeadsFreeForm runs an arbitrary lead request through the structured
// chain. saveName controls the export filename; empty skips the export.
func (r *Runner) FindLeadsFreeForm(ctx context.Context, query, saveName string) (*LeadsReport, error) {
	report, err := r.runLeadsQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if saveName != "" {
		r.save(report, saveName)
	}
	return report, nil
}

// ScanStorms reports active roofing-relevant alerts without chasing leads.
func (r *Runner) ScanStorms(ctx context.Context, state string) (*StormReport, error) {
	answer, err := r.Agent.Run(ctx, stormScanQuery(state)+"\n\n"+stormReportFormat)
	if err != nil {
		return nil, err
	}
	return ParseStormReport(answer)
}

// Ask runs a free-form question with no structured output.
func (r *Runner) Ask(ctx context.Context, question string) (string, error) {
	return r.Agent.Run(ctx, question)
}

func (r *Runner) runLeadsQuery(ctx context.Context, query string) (*LeadsReport, error) {
	answer, err := r.Agent.Run(ctx, query+"\n\n"+leadsReportFormat)
	if err != nil {
		return nil, err
	}

	report, err := ParseLeadsReport(answer)
	if err != nil {
		return nil, err
	}
	leads.Rescore(report.Leads, r.Scorer)
	report.normalize()
	return report, nil
}

func (r *Runner) save(report *LeadsReport, name string) {
	if r.Writer == nil || len(report.Leads) == 0 {
		return
	}
	path, err := r.Writer.WriteLeads(report.Leads, name)
	if err != nil {
		// Export failure is reported, not fatal; the caller still has the
		// in-memory report.
		r.Logger.Warn("csv export failed", zap.String("name", name), zap.Error(err))
		return
	}
	r.Logger.Info("leads exported", zap.String("path", path), zap.Int("count", len(report.Leads)))
}

func cleanName(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ",", "")
	return s
}
