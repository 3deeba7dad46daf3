package leads

// Scorer ranks a lead 0-100 and decides qualification. The ranking function
// is pluggable; WeightScorer is only the default heuristic.
type Scorer interface {
	Score(lead Lead) (score int, qualified bool)
}

// WeightScorer awards fixed points per verified fact. A lead qualifies at
// or above the threshold.
type WeightScorer struct {
	PhonePoints    int
	EmailPoints    int
	AddressPoints  int
	WebsitePoints  int
	LicensedPoints int
	ReviewsPoints  int
	Threshold      int
}

// NewWeightScorer returns the default weights: phone 40, email 10,
// address 10, website 10, licensed 15, reviews 15, qualified at 50.
func NewWeightScorer() *WeightScorer {
	return &WeightScorer{
		PhonePoints:    40,
		EmailPoints:    10,
		AddressPoints:  10,
		WebsitePoints:  10,
		LicensedPoints: 15,
		ReviewsPoints:  15,
		Threshold:      50,
	}
}

func (s *WeightScorer) Score(lead Lead) (int, bool) {
	score := 0
	if lead.Phone != "" {
		score += s.PhonePoints
	}
	if lead.Email != "" {
		score += s.EmailPoints
	}
	if lead.Address != "" {
		score += s.AddressPoints
	}
	if lead.Website != "" {
		score += s.WebsitePoints
	}
	// Licensed and reviewed facts arrive as evidence URLs gathered during
	// qualification; one URL is taken as license evidence, a second as
	// review evidence.
	if len(lead.EvidenceURLs) >= 1 {
		score += s.LicensedPoints
	}
	if len(lead.EvidenceURLs) >= 2 {
		score += s.ReviewsPoints
	}
	if score > 100 {
		score = 100
	}
	return score, score >= s.Threshold
}

// Rescore fills in scores the model omitted and re-derives qualification,
// leaving model-provided scores intact.
func Rescore(items []Lead, scorer Scorer) {
	if scorer == nil {
		scorer = NewWeightScorer()
	}
	for i := range items {
		if items[i].Score == 0 {
			score, qualified := scorer.Score(items[i])
			items[i].Score = score
			items[i].Qualified = qualified
		}
	}
}
