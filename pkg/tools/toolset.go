package tools

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
)

// ToolsetParams carries everything needed to assemble the default catalog.
type ToolsetParams struct {
	OutputDir         string
	SkipTraceProvider string
	BatchAPIKey       string
	REISkipKey        string
	Clock             clockwork.Clock
	Logger            *zap.Logger
	Metrics           *observability.Metrics
}

// Toolset bundles the catalog with the pieces callers also use directly.
type Toolset struct {
	Catalog *agent.StaticToolCatalog
	Writer  *CSVLeadWriter
	Tracer  SkipTracer
}

// NewToolset builds the full default catalog: weather, dataset discovery,
// Socrata, geocoding, skip tracing, business search, and output tools.
func NewToolset(p ToolsetParams) (*Toolset, error) {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Metrics == nil {
		p.Metrics = observability.NewMetricsForTesting()
	}
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}

	writer := NewCSVLeadWriter(p.OutputDir, p.Clock, p.Logger, p.Metrics)
	tracer := NewSkipTracer(p.SkipTraceProvider, p.BatchAPIKey, p.REISkipKey, p.Logger, p.Metrics)
	geocoder := NewCachedGeocoder(NewCensusGeocoder(p.Logger), 512, p.Metrics)

	catalog, err := agent.NewStaticToolCatalog(
		&NWSAlertsTool{Client: NewNWSClient(p.Logger)},
		&StormArchiveTool{},
		&FindOpenDatasetTool{},
		&QuerySocrataTool{Client: NewSocrataClient(p.Logger)},
		&GeocodeTool{Geocoder: geocoder},
		&SkipTraceTool{Tracer: tracer},
		&BatchSkipTraceTool{Tracer: tracer},
		&FindBusinessesTool{},
		&WriteLeadsTool{Writer: writer},
		&GenerateMessageTool{},
	)
	if err != nil {
		return nil, err
	}

	return &Toolset{Catalog: catalog, Writer: writer, Tracer: tracer}, nil
}
