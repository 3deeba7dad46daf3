package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoofAgeEstimate(t *testing.T) {
	assert.Equal(t, 26, PropertyRecord{YearBuilt: 2000}.RoofAgeEstimate(2026))
	assert.Equal(t, 0, PropertyRecord{}.RoofAgeEstimate(2026))
}

func TestPriorityScoreAgeBands(t *testing.T) {
	year := 2026
	assert.Equal(t, 80, PropertyRecord{YearBuilt: 1995}.PriorityScore(year)) // >25
	assert.Equal(t, 70, PropertyRecord{YearBuilt: 2003}.PriorityScore(year)) // >20
	assert.Equal(t, 60, PropertyRecord{YearBuilt: 2008}.PriorityScore(year)) // >15
	assert.Equal(t, 30, PropertyRecord{YearBuilt: 2024}.PriorityScore(year)) // <5
	assert.Equal(t, 50, PropertyRecord{}.PriorityScore(year))                // unknown year
}

func TestPriorityScoreRecentRoofPermit(t *testing.T) {
	p := PropertyRecord{YearBuilt: 1990, LastPermitType: "Roof Replacement"}
	assert.Equal(t, 50, p.PriorityScore(2026)) // 50 + 30 - 30
}
