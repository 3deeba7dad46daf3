package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
)

// searchPatterns are query templates that, taken together, surface enough
// listings to fill a lead batch.
var searchPatterns = []string{
	"%[1]s in %[2]s",
	"%[1]s near %[2]s",
	"best %[1]s %[2]s",
	"%[1]s %[2]s phone number",
	"%[2]s %[1]s directory",
	"%[1]s %[2]s yelp",
	"%[1]s %[2]s reviews",
	"top rated %[1]s %[2]s",
	"%[1]s companies %[2]s",
	"licensed %[1]s %[2]s",
}

var (
	phonePattern = regexp.MustCompile(`[+]?[(]?[0-9]{1,3}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,4}[-\s.]?[0-9]{1,9}`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	digitsOnly   = regexp.MustCompile(`[^\d]`)
)

// ExtractPhone returns the first plausible phone number in text. Matches
// with fewer than 10 or more than 15 digits are skipped since they are
// usually years or fragments.
func ExtractPhone(text string) string {
	for _, match := range phonePattern.FindAllString(text, -1) {
		digits := digitsOnly.ReplaceAllString(match, "")
		if len(digits) >= 10 && len(digits) <= 15 {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

// ExtractEmail returns the first email address in text.
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractURL returns the first http(s) URL in text.
func ExtractURL(text string) string {
	return urlPattern.FindString(text)
}

// BusinessSearchPlan tells the model which queries to run to gather enough
// listings for the requested lead count.
type BusinessSearchPlan struct {
	Profession     string   `json:"profession"`
	Location       string   `json:"location"`
	RequestedCount int      `json:"requested_count"`
	SearchQueries  []string `json:"search_queries"`
	Note           string   `json:"note"`
}

// PlanBusinessSearch builds queries sized to the requested count, assuming
// three to five usable results per query.
func PlanBusinessSearch(profession, city, state string, count int) BusinessSearchPlan {
	location := city
	if state != "" {
		location = fmt.Sprintf("%s, %s", city, state)
	}
	if count <= 0 {
		count = 10
	}

	numSearches := count / 3
	if numSearches < 3 {
		numSearches = 3
	}
	if numSearches > len(searchPatterns) {
		numSearches = len(searchPatterns)
	}

	queries := make([]string, 0, numSearches)
	for _, pattern := range searchPatterns[:numSearches] {
		queries = append(queries, fmt.Sprintf(pattern, profession, location))
	}

	return BusinessSearchPlan{
		Profession:     profession,
		Location:       location,
		RequestedCount: count,
		SearchQueries:  queries,
		Note: fmt.Sprintf("Run each of these %d queries to find %d businesses. Extract name, phone, address, website from the listings.",
			len(queries), count),
	}
}

// FindBusinessesTool plans the multi-query business search for the agent.
type FindBusinessesTool struct{}

func (t *FindBusinessesTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        "find_businesses",
		Description: "Plan a multi-query business search for professionals (e.g. home inspectors, realtors). Returns the queries to run and extraction guidance.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"profession": map[string]any{"type": "string", "description": "Type of business (e.g. 'home inspector')"},
				"city":       map[string]any{"type": "string"},
				"state":      map[string]any{"type": "string", "description": "State code (optional)"},
				"count":      map[string]any{"type": "integer", "description": "Number of businesses to find"},
			},
			"required": []string{"profession", "city"},
		},
	}
}

func (t *FindBusinessesTool) Invoke(_ context.Context, req agent.ToolRequest) (agent.ToolResponse, error) {
	profession := stringArg(req.Args, "profession")
	city := stringArg(req.Args, "city")
	if profession == "" || city == "" {
		return agent.ToolResponse{Success: false, Error: "profession and city are required"}, nil
	}
	plan := PlanBusinessSearch(profession, city, stringArg(req.Args, "state"), intArg(req.Args, "count", 10))
	return agent.ToolResponse{Success: true, Content: plan}, nil
}
