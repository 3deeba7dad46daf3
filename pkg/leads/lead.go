package leads

import (
	"strconv"
	"strings"
	"time"
)

// LeadType classifies how a lead was sourced.
type LeadType string

const (
	TypeMiddleman LeadType = "middleman"
	TypeStorm     LeadType = "storm"
	TypeHomeowner LeadType = "homeowner"
)

// Lead is a prospective customer: a property or professional contact merged
// with whatever contact data the chain could find, plus a 0-100 score.
type Lead struct {
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	OwnerName string `json:"owner_name,omitempty"`

	Phone          string `json:"phone,omitempty"`
	PhoneAvailable bool   `json:"phone_available"`
	Email          string `json:"email,omitempty"`
	Website        string `json:"website,omitempty"`

	Type      LeadType `json:"type"`
	Score     int      `json:"score"`
	Qualified bool     `json:"qualified"`
	Reason    string   `json:"reason,omitempty"`

	EvidenceURLs []string `json:"evidence_urls,omitempty"`
	StormContext string   `json:"storm_context,omitempty"`
	YearBuilt    int      `json:"year_built,omitempty"`

	Role  string `json:"role,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Normalize enforces the lead invariants in place: phone_available is true
// exactly when a phone is present, scores stay within 0..100, and the type
// falls back to homeowner when the model left it blank.
func (l *Lead) Normalize() {
	l.Phone = strings.TrimSpace(l.Phone)
	l.PhoneAvailable = l.Phone != ""

	if l.Score < 0 {
		l.Score = 0
	}
	if l.Score > 100 {
		l.Score = 100
	}

	switch l.Type {
	case TypeMiddleman, TypeStorm, TypeHomeowner:
	default:
		l.Type = TypeHomeowner
	}
}

// Identifier returns the best human-readable handle for the lead.
func (l *Lead) Identifier() string {
	if l.Name != "" {
		return l.Name
	}
	if l.Address != "" {
		return l.Address
	}
	return "Unknown"
}

// CSVHeader is the fixed column set for lead exports. Every export carries
// all columns even when most rows have no phone or contact data.
var CSVHeader = []string{
	"name", "type", "score", "qualified", "reason",
	"address", "city", "state", "zip",
	"owner_name", "phone", "phone_available", "email", "website",
	"storm", "year_built", "evidence_urls", "role", "notes", "created_at",
}

// CSVRow flattens the lead into the fixed column order. createdAt is passed
// in so the writer controls the clock.
func (l *Lead) CSVRow(createdAt time.Time) []string {
	return []string{
		l.Name,
		string(l.Type),
		strconv.Itoa(l.Score),
		boolString(l.Qualified),
		l.Reason,
		l.Address,
		l.City,
		l.State,
		l.Zip,
		l.OwnerName,
		l.Phone,
		boolString(l.PhoneAvailable),
		l.Email,
		l.Website,
		l.StormContext,
		yearString(l.YearBuilt),
		strings.Join(l.EvidenceURLs, "|"),
		l.Role,
		l.Notes,
		createdAt.UTC().Format(time.RFC3339),
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
