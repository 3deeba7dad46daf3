package leads

import "strings"

// roofingEvents are the hazard types that plausibly damage roofs.
var roofingEvents = []string{
	"severe thunderstorm",
	"tornado",
	"hail",
	"wind",
	"hurricane",
	"tropical storm",
	"high wind",
}

// StormEvent is one active weather alert, fetched fresh per invocation.
type StormEvent struct {
	ID            string   `json:"id,omitempty"`
	Event         string   `json:"event"`
	Severity      string   `json:"severity"`
	Urgency       string   `json:"urgency,omitempty"`
	Headline      string   `json:"headline,omitempty"`
	Description   string   `json:"description,omitempty"`
	AffectedZones []string `json:"affected_zones,omitempty"`
	Effective     string   `json:"effective,omitempty"`
	Expires       string   `json:"expires,omitempty"`
	Sender        string   `json:"sender,omitempty"`
}

// RoofingRelevant reports whether the alert's hazard type is one that
// generates roof work.
func (e StormEvent) RoofingRelevant() bool {
	event := strings.ToLower(e.Event)
	for _, kw := range roofingEvents {
		if strings.Contains(event, kw) {
			return true
		}
	}
	return false
}

// FilterRoofingRelevant returns the subset of alerts worth chasing.
func FilterRoofingRelevant(events []StormEvent) []StormEvent {
	var out []StormEvent
	for _, e := range events {
		if e.RoofingRelevant() {
			out = append(out, e)
		}
	}
	return out
}
