package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
)

// SocrataClient queries Socrata open data endpoints with SoQL parameters.
type SocrataClient struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSocrataClient(logger *zap.Logger) *SocrataClient {
	return &SocrataClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// SocrataResult is the observation returned to the model. Records beyond the
// first 20 are dropped to keep the observation inside the context window.
type SocrataResult struct {
	Endpoint     string           `json:"endpoint"`
	Count        int              `json:"count"`
	TotalFetched int              `json:"total_fetched"`
	Records      []map[string]any `json:"records"`
	Note         string           `json:"note,omitempty"`
}

// Query fetches records from a full Socrata resource URL with an optional
// SoQL where clause.
func (c *SocrataClient) Query(ctx context.Context, endpoint, where string, limit int) (*SocrataResult, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("endpoint must be a full URL, got %q", endpoint)
	}
	if limit <= 0 {
		limit = 100
	}

	q := url.Values{}
	q.Set("$limit", fmt.Sprintf("%d", limit))
	if where != "" {
		q.Set("$where", where)
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+sep+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("socrata request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("socrata returned %d", resp.StatusCode)
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode socrata response: %w", err)
	}

	total := len(records)
	note := ""
	if total > 20 {
		records = records[:20]
		note = fmt.Sprintf("Showing first 20 of %d records", total)
	}

	c.logger.Debug("socrata query",
		zap.String("endpoint", endpoint),
		zap.Int("fetched", total))

	return &SocrataResult{
		Endpoint:     endpoint,
		Count:        len(records),
		TotalFetched: total,
		Records:      records,
		Note:         note,
	}, nil
}

// QuerySocrataTool exposes SoQL queries to the agent.
type QuerySocrataTool struct {
	Client *SocrataClient
}

func (t *QuerySocrataTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "query_socrata",
		Description: "Query a Socrata open data endpoint for property or permit records.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"endpoint": map[string]any{
					"type":        "string",
					"description": "Full Socrata URL (e.g. 'https://data.austintexas.gov/resource/abc123.json')",
				},
				"where": map[string]any{
					"type":        "string",
					"description": "SoQL WHERE clause (e.g. 'year_built < 2000')",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Max records to return (default 100)",
				},
			},
			"required": []string{"endpoint"},
		},
	}
}

func (t *QuerySocrataTool) Invoke(ctx context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	endpoint := stringArg(req.Args, "endpoint")
	if endpoint == "" {
		return agent.ToolResponse{Success: false, Error: "endpoint is required"}, nil
	}
	result, err := t.Client.Query(ctx, endpoint, stringArg(req.Args, "where"), intArg(req.Args, "limit", 100))
	if err != nil {
		return agent.ToolResponse{Success: false, Error: err.Error()}, nil
	}
	return agent.ToolResponse{Success: true, Content: result}, nil
}
