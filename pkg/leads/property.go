package leads

import "strings"

// PropertyRecord is a best-effort extraction from whatever schema an open
// data portal exposes. Only the fields the chain actually uses are kept.
type PropertyRecord struct {
	Address        string `json:"address"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Zip            string `json:"zip,omitempty"`
	YearBuilt      int    `json:"year_built,omitempty"`
	SquareFeet     int    `json:"sqft,omitempty"`
	PropertyType   string `json:"property_type,omitempty"`
	LastPermitDate string `json:"last_permit_date,omitempty"`
	LastPermitType string `json:"last_permit_type,omitempty"`
	DataSource     string `json:"data_source"`
}

// RoofAgeEstimate assumes the original roof is still on. Zero means unknown.
func (p PropertyRecord) RoofAgeEstimate(currentYear int) int {
	if p.YearBuilt == 0 {
		return 0
	}
	return currentYear - p.YearBuilt
}

// PriorityScore rates replacement likelihood 0-100 from roof age, discounted
// when a recent permit already mentions roofing work.
func (p PropertyRecord) PriorityScore(currentYear int) int {
	score := 50

	if p.YearBuilt > 0 {
		age := currentYear - p.YearBuilt
		switch {
		case age > 25:
			score += 30
		case age > 20:
			score += 20
		case age > 15:
			score += 10
		case age < 5:
			score -= 20
		}
	}

	if strings.Contains(strings.ToLower(p.LastPermitType), "roof") {
		score -= 30
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
