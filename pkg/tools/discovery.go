package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
)

// knownPortals maps city names to their Socrata open data domains.
var knownPortals = []struct {
	City   string
	Domain string
}{
	{"austin", "data.austintexas.gov"},
	{"houston", "data.houstontx.gov"},
	{"dallas", "data.dallasopendata.com"},
	{"san antonio", "data.sanantonio.gov"},
	{"chicago", "data.cityofchicago.org"},
	{"los angeles", "data.lacity.org"},
	{"new york", "data.cityofnewyork.us"},
	{"denver", "data.denvergov.org"},
	{"seattle", "data.seattle.gov"},
	{"portland", "data.portlandoregon.gov"},
	{"phoenix", "www.phoenixopendata.com"},
	{"san diego", "data.sandiego.gov"},
	{"philadelphia", "www.opendataphilly.org"},
	{"atlanta", "opendata.atlantaga.gov"},
}

var datasetKeywords = map[string][]string{
	"building_permits": {"building permit", "construction permit", "permit"},
	"assessor":         {"assessor", "property", "parcel", "tax", "appraisal"},
	"parcels":          {"parcel", "property", "land use", "zoning"},
}

// DatasetSearchResult describes where to find property data for a
// jurisdiction.
type DatasetSearchResult struct {
	Found             bool     `json:"found"`
	Jurisdiction      string   `json:"jurisdiction"`
	Portal            string   `json:"portal,omitempty"`
	SearchURL         string   `json:"search_url,omitempty"`
	APIBase           string   `json:"api_base,omitempty"`
	SuggestedKeywords []string `json:"suggested_keywords,omitempty"`
	Suggestion        string   `json:"suggestion,omitempty"`
	CommonPortals     []string `json:"common_portals,omitempty"`
	Note              string   `json:"note,omitempty"`
}

// FindOpenDataset looks up a known Socrata portal for a jurisdiction. When
// none matches, the result carries a suggestion rather than an error since
// coverage of known portals is best effort.
func FindOpenDataset(jurisdiction, datasetType string) DatasetSearchResult {
	lower := strings.ToLower(jurisdiction)

	keywords, ok := datasetKeywords[datasetType]
	if !ok {
		keywords = []string{datasetType}
	}

	for _, p := range knownPortals {
		if strings.Contains(lower, p.City) {
			return DatasetSearchResult{
				Found:             true,
				Jurisdiction:      jurisdiction,
				Portal:            p.Domain,
				SearchURL:         fmt.Sprintf("https://%s/browse?q=%s", p.Domain, strings.Join(keywords, "+")),
				APIBase:           fmt.Sprintf("https://%s/resource/", p.Domain),
				SuggestedKeywords: keywords,
				Note:              "Find specific dataset IDs on the portal, then query_socrata to fetch data",
			}
		}
	}

	cities := make([]string, 0, 10)
	for _, p := range knownPortals[:10] {
		cities = append(cities, p.City)
	}
	return DatasetSearchResult{
		Found:         false,
		Jurisdiction:  jurisdiction,
		Suggestion:    fmt.Sprintf("Search for '%s open data portal' or '%s Socrata'", jurisdiction, jurisdiction),
		CommonPortals: cities,
	}
}

// FindOpenDatasetTool exposes portal discovery to the agent.
type FindOpenDatasetTool struct{}

func (t *FindOpenDatasetTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "find_open_dataset",
		Description: "Find Socrata open data portals for a city or county. Use this to locate building permits, assessor data, or parcel information.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"jurisdiction": map[string]any{
					"type":        "string",
					"description": "City or county (e.g. 'Austin, TX', 'Harris County')",
				},
				"dataset_type": map[string]any{
					"type":        "string",
					"description": "One of: building_permits, assessor, parcels",
				},
			},
			"required": []string{"jurisdiction", "dataset_type"},
		},
	}
}

func (t *FindOpenDatasetTool) Invoke(_ context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	jurisdiction := stringArg(req.Args, "jurisdiction")
	if jurisdiction == "" {
		return agent.ToolResponse{Success: false, Error: "jurisdiction is required"}, nil
	}
	result := FindOpenDataset(jurisdiction, stringArg(req.Args, "dataset_type"))
	return agent.ToolResponse{Success: true, Content: result}, nil
}
