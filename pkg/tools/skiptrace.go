package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
)

// PropertyAddress identifies a single property for skip tracing.
type PropertyAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip_code"`
}

func (p PropertyAddress) String() string {
	return fmt.Sprintf("%s, %s, %s %s", p.Address, p.City, p.State, p.Zip)
}

// SkipTraceResult carries whatever owner contact data the provider found.
// Configured=false means no provider is set up, which is a valid state the
// chain must survive.
type SkipTraceResult struct {
	Success    bool    `json:"success"`
	Address    string  `json:"address"`
	OwnerName  string  `json:"owner_name,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	PhoneType  string  `json:"phone_type,omitempty"`
	Email      string  `json:"email,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Provider   string  `json:"provider,omitempty"`
	Error      string  `json:"error,omitempty"`
	Configured bool    `json:"configured"`
}

// BatchSkipTraceResult aggregates results for a batch of properties.
type BatchSkipTraceResult struct {
	Success        bool              `json:"success"`
	TotalRequested int               `json:"total_requested"`
	TotalFound     int               `json:"total_found"`
	Results        []SkipTraceResult `json:"results"`
	Error          string            `json:"error,omitempty"`
	Configured     bool              `json:"configured"`
}

// SkipTracer looks up owner contact info for a property address.
type SkipTracer interface {
	Trace(ctx context.Context, prop PropertyAddress) SkipTraceResult
	Configured() bool
	Name() string
}

// placeholderKeys are values people leave in .env templates; they count as
// unconfigured.
var placeholderKeys = map[string]struct{}{
	"":             {},
	"your-key-here": {},
	"your-api-key":  {},
	"your_api_key":  {},
	"xxx":           {},
	"placeholder":   {},
}

// RealKey reports whether an API key is an actual credential rather than a
// template placeholder.
func RealKey(key string) bool {
	_, placeholder := placeholderKeys[strings.ToLower(strings.TrimSpace(key))]
	return !placeholder
}

// NewSkipTracer selects a provider: an explicitly configured provider with a
// real key wins, then any provider with a real key, then the disabled
// fallback.
func NewSkipTracer(provider, batchKey, reiskipKey string, logger *zap.Logger, metrics *observability.Metrics) SkipTracer {
	if !RealKey(batchKey) {
		batchKey = ""
	}
	if !RealKey(reiskipKey) {
		reiskipKey = ""
	}

	provider = strings.ToLower(strings.TrimSpace(provider))
	switch {
	case provider == "batchskiptracing" && batchKey != "":
		return NewBatchSkipTracing(batchKey, logger, metrics)
	case provider == "reiskip" && reiskipKey != "":
		return NewREISkip(reiskipKey, logger, metrics)
	case batchKey != "":
		return NewBatchSkipTracing(batchKey, logger, metrics)
	case reiskipKey != "":
		return NewREISkip(reiskipKey, logger, metrics)
	}
	return DisabledSkipTracer{}
}

// DisabledSkipTracer is the graceful fallback when no provider has a key.
// Every lookup fails softly so leads are kept with phone_available=false.
type DisabledSkipTracer struct{}

func (DisabledSkipTracer) Name() string     { return "disabled" }
func (DisabledSkipTracer) Configured() bool { return false }

func (DisabledSkipTracer) Trace(_ context.Context, prop PropertyAddress) SkipTraceResult {
	return SkipTraceResult{
		Success:    false,
		Address:    prop.String(),
		Error:      "No skip trace provider configured. Set SKIP_TRACE_PROVIDER and API key in .env",
		Configured: false,
	}
}

// BatchSkipTracing calls the BatchSkipTracing.com API.
type BatchSkipTracing struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

func NewBatchSkipTracing(apiKey string, logger *zap.Logger, metrics *observability.Metrics) *BatchSkipTracing {
	return &BatchSkipTracing{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.batchskiptracing.com",
		logger:     logger,
		metrics:    metrics,
	}
}

func (b *BatchSkipTracing) WithBaseURL(base string) *BatchSkipTracing {
	b.baseURL = strings.TrimRight(base, "/")
	return b
}

func (b *BatchSkipTracing) Name() string     { return "BatchSkipTracing" }
func (b *BatchSkipTracing) Configured() bool { return true }

func (b *BatchSkipTracing) Trace(ctx context.Context, prop PropertyAddress) SkipTraceResult {
	payload := map[string]string{
		"address": prop.Address,
		"city":    prop.City,
		"state":   prop.State,
		"zip":     prop.Zip,
	}

	var data struct {
		OwnerName  string  `json:"owner_name"`
		Phone      string  `json:"phone"`
		PhoneType  string  `json:"phone_type"`
		Email      string  `json:"email"`
		Confidence float64 `json:"confidence"`
	}
	if err := postJSON(ctx, b.httpClient, b.baseURL+"/api/v1/skip-trace", payload, &data, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}); err != nil {
		b.metrics.SkipTraceCalls.WithLabelValues(b.Name(), "error").Inc()
		b.logger.Warn("skip trace failed", zap.String("provider", b.Name()), zap.Error(err))
		return SkipTraceResult{
			Success:    false,
			Address:    prop.String(),
			Error:      err.Error(),
			Provider:   b.Name(),
			Configured: true,
		}
	}

	b.metrics.SkipTraceCalls.WithLabelValues(b.Name(), "ok").Inc()
	return SkipTraceResult{
		Success:    true,
		Address:    prop.String(),
		OwnerName:  data.OwnerName,
		Phone:      data.Phone,
		PhoneType:  data.PhoneType,
		Email:      data.Email,
		Confidence: data.Confidence,
		Provider:   b.Name(),
		Configured: true,
	}
}

// REISkip calls the REISkip lookup API.
type REISkip struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

func NewREISkip(apiKey string, logger *zap.Logger, metrics *observability.Metrics) *REISkip {
	return &REISkip{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.reiskip.com",
		logger:     logger,
		metrics:    metrics,
	}
}

func (r *REISkip) WithBaseURL(base string) *REISkip {
	r.baseURL = strings.TrimRight(base, "/")
	return r
}

func (r *REISkip) Name() string     { return "REISkip" }
func (r *REISkip) Configured() bool { return true }

func (r *REISkip) Trace(ctx context.Context, prop PropertyAddress) SkipTraceResult {
	payload := map[string]string{
		"street": prop.Address,
		"city":   prop.City,
		"state":  prop.State,
		"zip":    prop.Zip,
	}

	var data struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := postJSON(ctx, r.httpClient, r.baseURL+"/v1/lookup", payload, &data, func(req *http.Request) {
		req.Header.Set("X-API-Key", r.apiKey)
	}); err != nil {
		r.metrics.SkipTraceCalls.WithLabelValues(r.Name(), "error").Inc()
		r.logger.Warn("skip trace failed", zap.String("provider", r.Name()), zap.Error(err))
		return SkipTraceResult{
			Success:    false,
			Address:    prop.String(),
			Error:      err.Error(),
			Provider:   r.Name(),
			Configured: true,
		}
	}

	r.metrics.SkipTraceCalls.WithLabelValues(r.Name(), "ok").Inc()
	return SkipTraceResult{
		Success:    true,
		Address:    prop.String(),
		OwnerName:  data.Name,
		Phone:      data.Phone,
		Email:      data.Email,
		Provider:   r.Name(),
		Configured: true,
	}
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any, out any, decorate func(*http.Request)) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provider returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SkipTraceTool traces a single property.
type SkipTraceTool struct {
	Tracer SkipTracer
}

func (t *SkipTraceTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "skip_trace",
		Description: "Get owner name and phone number for a property address via skip tracing. Returns configured=false when no provider is set up; keep the lead with phone_available=false.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"address":  map[string]any{"type": "string", "description": "Street address"},
				"city":     map[string]any{"type": "string"},
				"state":    map[string]any{"type": "string", "description": "State code"},
				"zip_code": map[string]any{"type": "string"},
			},
			"required": []string{"address", "city", "state", "zip_code"},
		},
	}
}

func (t *SkipTraceTool) Invoke(ctx context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	prop := PropertyAddress{
		Address: stringArg(req.Args, "address"),
		City:    stringArg(req.Args, "city"),
		State:   stringArg(req.Args, "state"),
		Zip:     stringArg(req.Args, "zip_code"),
	}
	result := t.Tracer.Trace(ctx, prop)
	return agent.ToolResponse{Success: result.Success, Content: result, Error: result.Error}, nil
}

// BatchSkipTraceTool traces a list of properties in one call.
type BatchSkipTraceTool struct {
	Tracer SkipTracer
}

func (t *BatchSkipTraceTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "batch_skip_trace",
		Description: "Skip trace multiple properties at once. Each entry needs address, city, state, zip_code.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"properties": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"address":  map[string]any{"type": "string"},
							"city":     map[string]any{"type": "string"},
							"state":    map[string]any{"type": "string"},
							"zip_code": map[string]any{"type": "string"},
						},
					},
				},
			},
			"required": []string{"properties"},
		},
	}
}

func (t *BatchSkipTraceTool) Invoke(ctx context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	props := parseProperties(req.Args["properties"])
	if len(props) == 0 {
		return agent.ToolResponse{Success: false, Error: "No properties provided"}, nil
	}

	result := BatchSkipTraceResult{
		TotalRequested: len(props),
		Configured:     true,
	}
	for _, prop := range props {
		r := t.Tracer.Trace(ctx, prop)
		result.Results = append(result.Results, r)
		if r.Success && r.Phone != "" {
			result.TotalFound++
		}
		if !r.Configured {
			result.Configured = false
		}
	}
	result.Success = result.Configured
	if !result.Configured {
		result.Error = "Skip trace provider not configured"
	}
	return agent.ToolResponse{Success: true, Content: result}, nil
}

func parseProperties(raw any) []PropertyAddress {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var props []PropertyAddress
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		prop := PropertyAddress{
			Address: stringArg(m, "address"),
			City:    stringArg(m, "city"),
			State:   stringArg(m, "state"),
			Zip:     stringArg(m, "zip_code"),
		}
		if prop.Address == "" {
			continue
		}
		props = append(props, prop)
	}
	return props
}
