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
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
)

const censusBaseURL = "https://geocoding.geo.census.gov"

// GeocodeResult is a resolved street address with coordinates.
type GeocodeResult struct {
	Input          string  `json:"input"`
	MatchedAddress string  `json:"matched_address,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
	City           string  `json:"city,omitempty"`
	State          string  `json:"state,omitempty"`
	Zip            string  `json:"zip,omitempty"`
	TigerLineID    string  `json:"tiger_line_id,omitempty"`
}

// Geocoder resolves a one-line street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}

// CensusGeocoder uses the free US Census geocoding API.
type CensusGeocoder struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewCensusGeocoder(logger *zap.Logger) *CensusGeocoder {
	return &CensusGeocoder{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    censusBaseURL,
		logger:     logger,
	}
}

func (g *CensusGeocoder) WithBaseURL(base string) *CensusGeocoder {
	g.baseURL = strings.TrimRight(base, "/")
	return g
}

type censusResponse struct {
	Result struct {
		AddressMatches []struct {
			MatchedAddress string `json:"matchedAddress"`
			Coordinates    struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"coordinates"`
			AddressComponents struct {
				City  string `json:"city"`
				State string `json:"state"`
				Zip   string `json:"zip"`
			} `json:"addressComponents"`
			TigerLine struct {
				TigerLineID string `json:"tigerLineId"`
			} `json:"tigerLine"`
		} `json:"addressMatches"`
	} `json:"result"`
}

func (g *CensusGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("benchmark", "Public_AR_Current")
	q.Set("format", "json")

	endpoint := fmt.Sprintf("%s/geocoder/locations/onelineaddress?%s", g.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("census request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("census geocoder returned %d", resp.StatusCode)
	}

	var decoded censusResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode census response: %w", err)
	}

	matches := decoded.Result.AddressMatches
	if len(matches) == 0 {
		return nil, fmt.Errorf("no address matches found for %q", address)
	}

	m := matches[0]
	g.logger.Debug("address geocoded", zap.String("input", address))
	return &GeocodeResult{
		Input:          address,
		MatchedAddress: m.MatchedAddress,
		Latitude:       m.Coordinates.Y,
		Longitude:      m.Coordinates.X,
		City:           m.AddressComponents.City,
		State:          m.AddressComponents.State,
		Zip:            m.AddressComponents.Zip,
		TigerLineID:    m.TigerLine.TigerLineID,
	}, nil
}

// GeocodeTool exposes address resolution to the agent.
type GeocodeTool struct {
	Geocoder Geocoder
}

func (t *GeocodeTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "geocode",
		Description: "Convert a street address to lat/long using the free US Census geocoder.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"address": map[string]any{
					"type":        "string",
					"description": "Full street address (e.g. '1600 Pennsylvania Ave NW, Washington, DC')",
				},
			},
			"required": []string{"address"},
		},
	}
}

func (t *GeocodeTool) Invoke(ctx context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	result, err := t.Geocoder.Geocode(ctx, stringArg(req.Args, "address"))
	if err != nil {
		return agent.ToolResponse{Success: false, Error: err.Error()}, nil
	}
	return agent.ToolResponse{Success: true, Content: result}, nil
}

var _ Geocoder = (*CensusGeocoder)(nil)
var _ Geocoder = (*CachedGeocoder)(nil)

// CachedGeocoder wraps a Geocoder with an LRU keyed on the normalized
// address. Lead batches repeat addresses constantly, so the cache saves most
// of the upstream calls within a run.
type CachedGeocoder struct {
	inner   Geocoder
	cache   *lruCache[string, *GeocodeResult]
	metrics *observability.Metrics
}

func NewCachedGeocoder(inner Geocoder, capacity int, metrics *observability.Metrics) *CachedGeocoder {
	if capacity <= 0 {
		capacity = 512
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache[string, *GeocodeResult](capacity),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	key := strings.ToLower(strings.Join(strings.Fields(address), " "))

	if cached, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	c.cache.Put(key, result)
	return result, nil
}
