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

func TestSocrataQueryParams(t *testing.T) {
	var gotWhere, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWhere = r.URL.Query().Get("$where")
		gotLimit = r.URL.Query().Get("$limit")
		fmt.Fprint(w, `[{"address":"1 Main St","year_built":"1987"}]`)
	}))
	t.Cleanup(srv.Close)

	c := NewSocrataClient(logger.NewTest(t))
	result, err := c.Query(context.Background(), srv.URL+"/resource/abc123.json", "year_built < 2000", 50)
	require.NoError(t, err)

	assert.Equal(t, "year_built < 2000", gotWhere)
	assert.Equal(t, "50", gotLimit)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "1 Main St", result.Records[0]["address"])
}

func TestSocrataEmptyResultIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	c := NewSocrataClient(logger.NewTest(t))
	result, err := c.Query(context.Background(), srv.URL+"/resource/abc123.json", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Records)
}

func TestSocrataTruncatesRecords(t *testing.T) {
	var records []string
	for i := 0; i < 35; i++ {
		records = append(records, fmt.Sprintf(`{"n":%d}`, i))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "[%s]", strings.Join(records, ","))
	}))
	t.Cleanup(srv.Close)

	c := NewSocrataClient(logger.NewTest(t))
	result, err := c.Query(context.Background(), srv.URL+"/resource/abc123.json", "", 100)
	require.NoError(t, err)

	assert.Equal(t, 35, result.TotalFetched)
	assert.Len(t, result.Records, 20)
	assert.Equal(t, "Showing first 20 of 35 records", result.Note)
}

func TestSocrataRejectsBareEndpoint(t *testing.T) {
	c := NewSocrataClient(logger.NewTest(t))
	_, err := c.Query(context.Background(), "data.austintexas.gov/resource/abc.json", "", 10)
	assert.Error(t, err)
}

func TestQuerySocrataToolSoftFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	tool := &QuerySocrataTool{Client: NewSocrataClient(logger.NewTest(t))}
	resp, err := tool.Invoke(context.Background(), agent.ToolRequest{Args: map[string]any{
		"endpoint": srv.URL + "/resource/abc123.json",
		"where":    "not a valid clause",
	}})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}
