package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/logger"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
)

func TestRealKey(t *testing.T) {
	assert.False(t, RealKey(""))
	assert.False(t, RealKey("  "))
	assert.False(t, RealKey("your-key-here"))
	assert.False(t, RealKey("YOUR_API_KEY"))
	assert.False(t, RealKey("xxx"))
	assert.False(t, RealKey("placeholder"))
	assert.True(t, RealKey("sk-live-abc123"))
}

func TestNewSkipTracerSelection(t *testing.T) {
	log := logger.NewNop()
	m := observability.NewMetricsForTesting()

	// explicit provider with a real key wins
	tracer := NewSkipTracer("batchskiptracing", "real-key", "other-key", log, m)
	assert.Equal(t, "BatchSkipTracing", tracer.Name())

	tracer = NewSkipTracer("reiskip", "real-key", "rei-key", log, m)
	assert.Equal(t, "REISkip", tracer.Name())

	// explicit provider without a key falls through to any configured key
	tracer = NewSkipTracer("reiskip", "batch-key", "", log, m)
	assert.Equal(t, "BatchSkipTracing", tracer.Name())

	// placeholder keys count as unconfigured
	tracer = NewSkipTracer("", "your-key-here", "placeholder", log, m)
	assert.Equal(t, "disabled", tracer.Name())
	assert.False(t, tracer.Configured())
}

func TestDisabledTracerSoftFails(t *testing.T) {
	result := DisabledSkipTracer{}.Trace(context.Background(), PropertyAddress{
		Address: "123 Oak Street", City: "Austin", State: "TX", Zip: "78701",
	})
	assert.False(t, result.Success)
	assert.False(t, result.Configured)
	assert.Equal(t, "123 Oak Street, Austin, TX 78701", result.Address)
	assert.Empty(t, result.Phone)
}

func TestBatchSkipTracingTrace(t *testing.T) {
	var gotAuth, gotPath string
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		fmt.Fprint(w, `{"owner_name":"Jane Smith","phone":"512-555-0100","phone_type":"mobile","email":"jane@example.com","confidence":0.92}`)
	}))
	t.Cleanup(srv.Close)

	tracer := NewBatchSkipTracing("key123", logger.NewTest(t), observability.NewMetricsForTesting()).WithBaseURL(srv.URL)
	result := tracer.Trace(context.Background(), PropertyAddress{
		Address: "123 Oak Street", City: "Austin", State: "TX", Zip: "78701",
	})

	assert.Equal(t, "Bearer key123", gotAuth)
	assert.Equal(t, "/api/v1/skip-trace", gotPath)
	assert.Equal(t, "123 Oak Street", gotPayload["address"])
	assert.Equal(t, "78701", gotPayload["zip"])

	assert.True(t, result.Success)
	assert.Equal(t, "Jane Smith", result.OwnerName)
	assert.Equal(t, "512-555-0100", result.Phone)
	assert.InDelta(t, 0.92, result.Confidence, 0.001)
}

func TestREISkipTrace(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"name":"John Doe","phone":"214-555-0101","email":"john@example.com"}`)
	}))
	t.Cleanup(srv.Close)

	tracer := NewREISkip("rei-key", logger.NewTest(t), observability.NewMetricsForTesting()).WithBaseURL(srv.URL)
	result := tracer.Trace(context.Background(), PropertyAddress{
		Address: "9 Elm St", City: "Dallas", State: "TX", Zip: "75201",
	})

	assert.Equal(t, "rei-key", gotKey)
	assert.Equal(t, "/v1/lookup", gotPath)
	assert.True(t, result.Success)
	assert.Equal(t, "John Doe", result.OwnerName)
}

func TestProviderErrorIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	tracer := NewBatchSkipTracing("key", logger.NewTest(t), observability.NewMetricsForTesting()).WithBaseURL(srv.URL)
	result := tracer.Trace(context.Background(), PropertyAddress{Address: "1 Main St", City: "Austin", State: "TX", Zip: "78701"})
	assert.False(t, result.Success)
	assert.True(t, result.Configured)
	assert.NotEmpty(t, result.Error)
}

func TestBatchSkipTraceToolDisabled(t *testing.T) {
	tool := &BatchSkipTraceTool{Tracer: DisabledSkipTracer{}}
	resp, err := tool.Invoke(context.Background(), agent.ToolRequest{Args: map[string]any{
		"properties": []any{
			map[string]any{"address": "1 A St", "city": "Austin", "state": "TX", "zip_code": "78701"},
			map[string]any{"address": "2 B St", "city": "Austin", "state": "TX", "zip_code": "78702"},
		},
	}})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	result := resp.Content.(BatchSkipTraceResult)
	assert.Equal(t, 2, result.TotalRequested)
	assert.Equal(t, 0, result.TotalFound)
	assert.False(t, result.Configured)
	assert.Len(t, result.Results, 2)
}

func TestBatchSkipTraceToolEmpty(t *testing.T) {
	tool := &BatchSkipTraceTool{Tracer: DisabledSkipTracer{}}
	resp, err := tool.Invoke(context.Background(), agent.ToolRequest{Args: map[string]any{}})
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestSkipTraceToolObservation(t *testing.T) {
	tool := &SkipTraceTool{Tracer: DisabledSkipTracer{}}
	resp, err := tool.Invoke(context.Background(), agent.ToolRequest{Args: map[string]any{
		"address": "1 Main St", "city": "Austin", "state": "TX", "zip_code": "78701",
	}})
	require.NoError(t, err)
	assert.False(t, resp.Success)

	result := resp.Content.(SkipTraceResult)
	assert.False(t, result.Configured)
}
