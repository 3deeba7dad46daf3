package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/logger"
)

func nwsTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestActiveAlertsStateParam(t *testing.T) {
	var gotQuery, gotUA string
	srv := nwsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"features":[
			{"properties":{"event":"Hail Advisory","severity":"Severe","affectedZones":["TXZ104"]}},
			{"properties":{"event":"Flood Warning","severity":"Moderate"}}
		]}`)
	})

	client := NewNWSClient(logger.NewTest(t)).WithBaseURL(srv.URL)
	result, err := client.ActiveAlerts(context.Background(), "tx")
	require.NoError(t, err)

	assert.Equal(t, "area=TX", gotQuery)
	assert.Equal(t, "RangerLeadAgent/1.0", gotUA)
	assert.Equal(t, 2, result.TotalAlerts)
	assert.Equal(t, 1, result.RoofingRelevantCount)
	assert.Equal(t, "Hail Advisory", result.RoofingRelevantAlerts[0].Event)
}

func TestActiveAlertsZoneParam(t *testing.T) {
	var gotQuery string
	srv := nwsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"features":[]}`)
	})

	client := NewNWSClient(logger.NewTest(t)).WithBaseURL(srv.URL)
	result, err := client.ActiveAlerts(context.Background(), "TXZ104")
	require.NoError(t, err)
	assert.Equal(t, "zone=TXZ104", gotQuery)
	assert.Equal(t, 0, result.TotalAlerts)
}

func TestActiveAlertsTruncation(t *testing.T) {
	longDescription := strings.Repeat("x", 900)
	var features []string
	for i := 0; i < 20; i++ {
		features = append(features, fmt.Sprintf(
			`{"properties":{"event":"Hail Advisory %d","severity":"Severe","description":"%s"}}`, i, longDescription))
	}
	srv := nwsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"features":[%s]}`, strings.Join(features, ","))
	})

	client := NewNWSClient(logger.NewTest(t)).WithBaseURL(srv.URL)
	result, err := client.ActiveAlerts(context.Background(), "TX")
	require.NoError(t, err)

	assert.Equal(t, 20, result.TotalAlerts)
	assert.Len(t, result.Alerts, 15)
	assert.Len(t, result.Alerts[0].Description, 500)
}

func TestActiveAlertsUpstreamError(t *testing.T) {
	srv := nwsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := NewNWSClient(logger.NewTest(t)).WithBaseURL(srv.URL)
	_, err := client.ActiveAlerts(context.Background(), "TX")
	assert.Error(t, err)
}

func TestNWSAlertsToolSoftFails(t *testing.T) {
	srv := nwsTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tool := &NWSAlertsTool{Client: NewNWSClient(logger.NewTest(t)).WithBaseURL(srv.URL)}
	resp, err := tool.Invoke(context.Background(), agent.ToolRequest{Args: map[string]any{"area": "TX"}})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestStormArchiveTool(t *testing.T) {
	tool := &StormArchiveTool{}
	resp, err := tool.Invoke(context.Background(), agent.ToolRequest{Args: map[string]any{"state": "TX", "days_back": 60}})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	result := resp.Content.(stormArchiveResult)
	assert.Equal(t, "TX", result.State)
	assert.Equal(t, "Past 60 days requested", result.DateRange)
	assert.Contains(t, result.BulkDataURL, "ncei.noaa.gov")
}
