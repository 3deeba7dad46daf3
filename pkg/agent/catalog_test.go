package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTool struct {
	name     string
	response ToolResponse
	err      error
	calls    int
	lastArgs map[string]any
}

func (f *fakeTool) Spec() ToolSpec {
	return ToolSpec{
		Name:        f.name,
		Description: "fake tool for tests",
		InputSchema: map[string]any{"type": "object"},
	}
}

func (f *fakeTool) Invoke(_ context.Context, req ToolRequest) (ToolResponse, error) {
	f.calls++
	f.lastArgs = req.Args
	return f.response, f.err
}

func TestCatalogLookupCaseInsensitive(t *testing.T) {
	catalog, err := NewStaticToolCatalog(&fakeTool{name: "Get_NWS_Alerts"})
	require.NoError(t, err)

	tool, ok := catalog.Lookup("get_nws_alerts")
	assert.True(t, ok)
	assert.NotNil(t, tool)

	tool, ok = catalog.Lookup(" GET_NWS_ALERTS ")
	assert.True(t, ok)
	assert.NotNil(t, tool)

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	catalog, err := NewStaticToolCatalog(&fakeTool{name: "echo"})
	require.NoError(t, err)
	assert.Error(t, catalog.Register(&fakeTool{name: "ECHO"}))
}

func TestCatalogRejectsEmptyName(t *testing.T) {
	_, err := NewStaticToolCatalog(&fakeTool{name: "  "})
	assert.Error(t, err)
}

func TestCatalogSpecsKeepRegistrationOrder(t *testing.T) {
	catalog, err := NewStaticToolCatalog(
		&fakeTool{name: "zulu"},
		&fakeTool{name: "alpha"},
		&fakeTool{name: "mike"},
	)
	require.NoError(t, err)

	specs := catalog.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, "zulu", specs[0].Name)
	assert.Equal(t, "alpha", specs[1].Name)
	assert.Equal(t, "mike", specs[2].Name)
}
