package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/tools"
)

// testCmd checks the offline wiring: config, tool catalog, scoring, and
// message templates, without touching any external API or model.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check configuration and tool wiring without calling external APIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}

		heading.Println("\nConfiguration")
		fmt.Printf("   Provider: %s (%s)\n", a.cfg.Model.Provider, a.cfg.Model.Name)
		fmt.Printf("   Max turns: %d\n", a.cfg.Model.MaxTurns)
		fmt.Printf("   Output dir: %s\n", a.cfg.Output.Dir)
		if err := a.cfg.Validate(); err != nil {
			bad.Printf("   Credentials: %v\n", err)
		} else {
			good.Println("   Credentials: ok")
		}

		heading.Println("\nSkip trace")
		if a.tracer.Configured() {
			good.Printf("   Provider: %s\n", a.tracer.Name())
		} else {
			dim.Println("   Not configured; leads will carry phone_available=false")
		}

		heading.Println("\nTool catalog")
		specs := a.runner.Agent.Catalog.Specs()
		for _, spec := range specs {
			fmt.Printf("   %s\n", spec.Name)
		}
		fmt.Printf("   %d tools registered\n", len(specs))

		heading.Println("\nDataset discovery")
		result := tools.FindOpenDataset("Austin, TX", "building_permits")
		if result.Found {
			good.Printf("   Austin portal: %s\n", result.Portal)
		} else {
			bad.Println("   Austin portal lookup failed")
		}

		heading.Println("\nScoring")
		sample := leads.Lead{Name: "Sample Inspector", Phone: "512-555-0100", Address: "100 Congress Ave"}
		score, qualified := leads.NewWeightScorer().Score(sample)
		fmt.Printf("   Sample lead scores %d (qualified=%t)\n", score, qualified)

		heading.Println("\nMessage templates")
		msg := tools.GenerateMessage("middleman", "Alex", "home inspector", "Austin")
		fmt.Printf("   middleman template renders %d chars\n", len(msg))

		good.Println("\nAll offline checks passed")
		return nil
	},
}
