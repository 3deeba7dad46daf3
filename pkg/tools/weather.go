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
	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
)

const (
	nwsBaseURL   = "https://api.weather.gov"
	nwsUserAgent = "RangerLeadAgent/1.0"
)

// NWSClient fetches active alerts from the National Weather Service. The
// base URL is injectable for tests.
type NWSClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewNWSClient(logger *zap.Logger) *NWSClient {
	return &NWSClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    nwsBaseURL,
		logger:     logger,
	}
}

// WithBaseURL points the client at a different host, usually an httptest
// server.
func (c *NWSClient) WithBaseURL(base string) *NWSClient {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

type nwsFeatureCollection struct {
	Features []struct {
		Properties struct {
			ID            string   `json:"id"`
			Event         string   `json:"event"`
			Severity      string   `json:"severity"`
			Urgency       string   `json:"urgency"`
			Headline      string   `json:"headline"`
			Description   string   `json:"description"`
			AffectedZones []string `json:"affectedZones"`
			Effective     string   `json:"effective"`
			Expires       string   `json:"expires"`
			SenderName    string   `json:"senderName"`
		} `json:"properties"`
	} `json:"features"`
}

// AlertsResult is the observation returned to the model.
type AlertsResult struct {
	Area                  string             `json:"area"`
	TotalAlerts           int                `json:"total_alerts"`
	Alerts                []leads.StormEvent `json:"alerts"`
	RoofingRelevantAlerts []leads.StormEvent `json:"roofing_relevant_alerts"`
	RoofingRelevantCount  int                `json:"roofing_relevant_count"`
	Source                string             `json:"source"`
}

// ActiveAlerts queries active alerts for a two-letter state code or an NWS
// zone ID. The first 15 alerts are returned with descriptions truncated so
// the observation stays inside the model's context.
func (c *NWSClient) ActiveAlerts(ctx context.Context, area string) (*AlertsResult, error) {
	area = strings.ToUpper(strings.TrimSpace(area))
	if area == "" {
		return nil, fmt.Errorf("area is required")
	}

	q := url.Values{}
	if len(area) == 2 {
		q.Set("area", area)
	} else {
		q.Set("zone", area)
	}

	endpoint := fmt.Sprintf("%s/alerts/active?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", nwsUserAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nws request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nws returned %d", resp.StatusCode)
	}

	var collection nwsFeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("decode nws response: %w", err)
	}

	features := collection.Features
	limit := len(features)
	if limit > 15 {
		limit = 15
	}

	alerts := make([]leads.StormEvent, 0, limit)
	for _, f := range features[:limit] {
		p := f.Properties
		description := p.Description
		if len(description) > 500 {
			description = description[:500]
		}
		event := p.Event
		if event == "" {
			event = "Unknown"
		}
		severity := p.Severity
		if severity == "" {
			severity = "Unknown"
		}
		alerts = append(alerts, leads.StormEvent{
			ID:            p.ID,
			Event:         event,
			Severity:      severity,
			Urgency:       p.Urgency,
			Headline:      p.Headline,
			Description:   description,
			AffectedZones: p.AffectedZones,
			Effective:     p.Effective,
			Expires:       p.Expires,
			Sender:        p.SenderName,
		})
	}

	relevant := leads.FilterRoofingRelevant(alerts)
	c.logger.Debug("nws alerts fetched",
		zap.String("area", area),
		zap.Int("total", len(features)),
		zap.Int("relevant", len(relevant)))

	return &AlertsResult{
		Area:                  area,
		TotalAlerts:           len(features),
		Alerts:                alerts,
		RoofingRelevantAlerts: relevant,
		RoofingRelevantCount:  len(relevant),
		Source:                "National Weather Service",
	}, nil
}

// NWSAlertsTool exposes active alert lookup to the agent.
type NWSAlertsTool struct {
	Client *NWSClient
}

func (t *NWSAlertsTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "get_nws_alerts",
		Description: "Get active weather alerts from the National Weather Service. Use this to find storm-affected areas for roofing leads.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"area": map[string]any{
					"type":        "string",
					"description": "State code (e.g. 'TX') or NWS zone ID (e.g. 'TXZ104')",
				},
			},
			"required": []string{"area"},
		},
	}
}

func (t *NWSAlertsTool) Invoke(ctx context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	area := stringArg(req.Args, "area")
	result, err := t.Client.ActiveAlerts(ctx, area)
	if err != nil {
		return agent.ToolResponse{Success: false, Error: err.Error()}, nil
	}
	return agent.ToolResponse{Success: true, Content: result}, nil
}

// StormArchiveTool answers queries about historical storm events. The NCEI
// archive only offers bulk downloads, so the tool returns guidance instead
// of records.
type StormArchiveTool struct{}

type stormArchiveResult struct {
	Note           string `json:"note"`
	Recommendation string `json:"recommendation"`
	BulkDataURL    string `json:"bulk_data_url"`
	State          string `json:"state"`
	DateRange      string `json:"date_range"`
}

func (t *StormArchiveTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "get_noaa_storm_events",
		Description: "Get info about NOAA Storm Events historical data. NCEI requires bulk downloads; use get_nws_alerts for recent alerts.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"state":     map[string]any{"type": "string", "description": "Two-letter state code"},
				"days_back": map[string]any{"type": "integer", "description": "Days to look back"},
			},
			"required": []string{"state"},
		},
	}
}

func (t *StormArchiveTool) Invoke(_ context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	daysBack := intArg(req.Args, "days_back", 30)
	return agent.ToolResponse{
		Success: true,
		Content: stormArchiveResult{
			Note:           "NOAA Storm Events Database requires bulk file downloads",
			Recommendation: "Use get_nws_alerts for active/recent alerts instead",
			BulkDataURL:    "https://www.ncei.noaa.gov/pub/data/swdi/stormevents/csvfiles/",
			State:          stringArg(req.Args, "state"),
			DateRange:      fmt.Sprintf("Past %d days requested", daysBack),
		},
	}, nil
}
