package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/logger"
)

func TestNewToolsetRegistersEverything(t *testing.T) {
	ts, err := NewToolset(ToolsetParams{
		OutputDir: t.TempDir(),
		Logger:    logger.NewTest(t),
	})
	require.NoError(t, err)

	specs := ts.Catalog.Specs()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{
		"get_nws_alerts",
		"get_noaa_storm_events",
		"find_open_dataset",
		"query_socrata",
		"geocode",
		"skip_trace",
		"batch_skip_trace",
		"find_businesses",
		"write_leads",
		"generate_message",
	}, names)

	// no keys configured means the disabled tracer
	assert.False(t, ts.Tracer.Configured())
}

func TestNewToolsetSelectsTracer(t *testing.T) {
	ts, err := NewToolset(ToolsetParams{
		OutputDir:   t.TempDir(),
		BatchAPIKey: "real-key",
	})
	require.NoError(t, err)
	assert.Equal(t, "BatchSkipTracing", ts.Tracer.Name())
}
