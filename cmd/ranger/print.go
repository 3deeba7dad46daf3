package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
)

var (
	heading  = color.New(color.FgYellow, color.Bold)
	good     = color.New(color.FgGreen)
	bad      = color.New(color.FgRed)
	dim      = color.New(color.Faint)
	emphasis = color.New(color.FgCyan)
)

// printLeadsReport renders the summary block followed by one entry per lead.
func printLeadsReport(report *agent.LeadsReport) {
	fmt.Println()
	if report.Summary != "" {
		heading.Println(report.Summary)
		fmt.Println()
	}

	fmt.Printf("   Found: %d leads\n", report.TotalFound)
	fmt.Printf("   Qualified: %d\n", report.QualifiedCount)
	fmt.Printf("   With phone: %d\n", report.PhonesFound)

	if !report.SkipTraceConfigured {
		dim.Println("   Skip trace not configured, homeowner phones unavailable")
	}
	if len(report.StormEvents) > 0 {
		limit := len(report.StormEvents)
		if limit > 3 {
			limit = 3
		}
		emphasis.Printf("   Storm events: %s\n", strings.Join(report.StormEvents[:limit], ", "))
	}

	if len(report.Leads) == 0 {
		fmt.Println("\n   No leads found. Try a different search.")
		return
	}

	heading.Printf("\nLeads:\n\n")
	for i, lead := range report.Leads {
		status := good.Sprint("[qualified]")
		if !lead.Qualified {
			status = bad.Sprint("[not qualified]")
		}

		fmt.Printf("%d. %s %s\n", i+1, status, lead.Identifier())
		fmt.Printf("   Score: %d/100", lead.Score)
		if lead.Reason != "" {
			fmt.Printf(" - %s", lead.Reason)
		}
		fmt.Println()

		if lead.Address != "" && lead.Name != "" {
			fmt.Printf("   Address: %s\n", lead.Address)
		}
		if lead.Phone != "" {
			fmt.Printf("   Phone: %s\n", lead.Phone)
		}
		if lead.Website != "" {
			fmt.Printf("   Website: %s\n", lead.Website)
		}
		if lead.Email != "" {
			fmt.Printf("   Email: %s\n", lead.Email)
		}
		if lead.StormContext != "" {
			emphasis.Printf("   Storm: %s\n", lead.StormContext)
		}
		if lead.YearBuilt != 0 {
			fmt.Printf("   Built %d\n", lead.YearBuilt)
		}
		fmt.Println()
	}
}

func printStormReport(report *agent.StormReport) {
	fmt.Println()
	if report.Summary != "" {
		heading.Println(report.Summary)
		fmt.Println()
	}

	if len(report.Alerts) == 0 {
		fmt.Println("   No active roofing-relevant alerts.")
		return
	}

	for i, alert := range report.Alerts {
		fmt.Printf("%d. %s (%s)\n", i+1, alert.Event, alert.Severity)
		if alert.Headline != "" {
			fmt.Printf("   %s\n", alert.Headline)
		}
		if len(alert.AffectedZones) > 0 {
			dim.Printf("   Zones: %s\n", strings.Join(alert.AffectedZones, ", "))
		}
		fmt.Println()
	}

	if len(report.TargetAreas) > 0 {
		emphasis.Printf("Target areas: %s\n", strings.Join(report.TargetAreas, ", "))
	}
	if report.RecommendedMessageType != "" {
		fmt.Printf("Recommended message type: %s\n", report.RecommendedMessageType)
	}
}
