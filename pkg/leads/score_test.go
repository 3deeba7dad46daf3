package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightScorerPhoneAlone(t *testing.T) {
	score, qualified := NewWeightScorer().Score(Lead{Phone: "512-555-0100"})
	assert.Equal(t, 40, score)
	assert.False(t, qualified)
}

func TestWeightScorerQualifiesAtThreshold(t *testing.T) {
	// phone 40 + address 10 = 50, exactly at the threshold
	score, qualified := NewWeightScorer().Score(Lead{
		Phone:   "512-555-0100",
		Address: "1 Main St",
	})
	assert.Equal(t, 50, score)
	assert.True(t, qualified)
}

func TestWeightScorerEvidenceAwards(t *testing.T) {
	scorer := NewWeightScorer()

	one, _ := scorer.Score(Lead{EvidenceURLs: []string{"https://a.example"}})
	assert.Equal(t, 15, one)

	two, _ := scorer.Score(Lead{EvidenceURLs: []string{"https://a.example", "https://b.example"}})
	assert.Equal(t, 30, two)
}

func TestWeightScorerCapsAt100(t *testing.T) {
	score, qualified := NewWeightScorer().Score(Lead{
		Phone:        "512-555-0100",
		Email:        "a@b.com",
		Address:      "1 Main St",
		Website:      "https://x.example",
		EvidenceURLs: []string{"u1", "u2", "u3"},
	})
	assert.Equal(t, 100, score)
	assert.True(t, qualified)
}

func TestRescoreOnlyFillsZeroScores(t *testing.T) {
	items := []Lead{
		{Phone: "512-555-0100", Address: "1 Main St"}, // score 0, gets rescored
		{Score: 77, Qualified: true},                  // untouched
	}
	Rescore(items, nil)

	assert.Equal(t, 50, items[0].Score)
	assert.True(t, items[0].Qualified)
	assert.Equal(t, 77, items[1].Score)
}
