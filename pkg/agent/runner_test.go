package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/models"
)

type captureWriter struct {
	items []leads.Lead
	name  string
	calls int
}

func (w *captureWriter) WriteLeads(items []leads.Lead, name string) (string, error) {
	w.calls++
	w.items = items
	w.name = name
	return "output/" + name + ".csv", nil
}

func TestFindLeadsSavesAndRescores(t *testing.T) {
	model := models.NewDummyLLM("").Queue(
		`{"leads":[{"name":"A","phone":"512-555-0100","address":"1 Main St","type":"middleman"}],"summary":"found one"}`,
	)
	writer := &captureWriter{}
	runner := NewRunner(newTestAgent(t, model), nil, writer)

	report, err := runner.FindLeads(context.Background(), "Austin, TX", "middleman", 2005, false)
	require.NoError(t, err)
	require.Len(t, report.Leads, 1)

	// phone 40 + address 10 crosses the default threshold
	assert.Equal(t, 50, report.Leads[0].Score)
	assert.True(t, report.Leads[0].Qualified)
	assert.Equal(t, 1, report.QualifiedCount)
	assert.Equal(t, 1, report.PhonesFound)

	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, "middleman_leads_Austin_TX", writer.name)
}

func TestFindStormLeadsFilename(t *testing.T) {
	model := models.NewDummyLLM("").Queue(
		`{"leads":[{"name":"A","type":"storm","storm_context":"Hail Advisory"}],"summary":"storm lead"}`,
	)
	writer := &captureWriter{}
	runner := NewRunner(newTestAgent(t, model), nil, writer)

	report, err := runner.FindStormLeads(context.Background(), "TX")
	require.NoError(t, err)
	assert.Equal(t, "storm_leads_TX", writer.name)
	assert.Equal(t, "Hail Advisory", report.Leads[0].StormContext)
}

func TestFindMiddlemenFilename(t *testing.T) {
	model := models.NewDummyLLM("").Queue(
		`{"leads":[{"name":"A","phone":"512-555-0100","type":"middleman"}],"summary":"one"}`,
	)
	writer := &captureWriter{}
	runner := NewRunner(newTestAgent(t, model), nil, writer)

	_, err := runner.FindMiddlemen(context.Background(), "home inspector", "Austin, TX", 25)
	require.NoError(t, err)
	assert.Equal(t, "middlemen_home_inspector_Austin_TX", writer.name)
}

func TestEmptyReportSkipsExport(t *testing.T) {
	model := models.NewDummyLLM("").Queue(`{"leads":[],"summary":"nothing found"}`)
	writer := &captureWriter{}
	runner := NewRunner(newTestAgent(t, model), nil, writer)

	report, err := runner.FindLeads(context.Background(), "Nowhere", "homeowner", 2005, false)
	require.NoError(t, err)
	assert.Empty(t, report.Leads)
	assert.Equal(t, 0, writer.calls)
}

func TestScanStorms(t *testing.T) {
	model := models.NewDummyLLM("").Queue(
		`{"alerts":[{"event":"Tornado Warning","severity":"Extreme"}],"target_areas":["Dallas County"],"summary":"tornado","recommended_message_type":"storm"}`,
	)
	runner := NewRunner(newTestAgent(t, model), nil, nil)

	report, err := runner.ScanStorms(context.Background(), "TX")
	require.NoError(t, err)
	require.Len(t, report.Alerts, 1)
	assert.Equal(t, "Tornado Warning", report.Alerts[0].Event)
}

func TestAskFreeForm(t *testing.T) {
	model := models.NewDummyLLM("").Queue("Build relationships with home inspectors.")
	runner := NewRunner(newTestAgent(t, model), nil, nil)

	answer, err := runner.Ask(context.Background(), "how do I get referrals?")
	require.NoError(t, err)
	assert.Equal(t, "Build relationships with home inspectors.", answer)
}
