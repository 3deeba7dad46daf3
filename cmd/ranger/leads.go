package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	leadsLocationFlag string
	leadsTypeFlag     string
	leadsYearFlag     int
	leadsStormsFlag   bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads -l <location> [-t <type>] [--storms]",
	Short: "Find homeowner or middleman leads in a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}

		yearBefore := leadsYearFlag
		if yearBefore <= 0 {
			yearBefore = a.cfg.Search.YearThreshold
		}

		fmt.Println("\nSearching for leads...")
		report, err := a.runner.FindLeads(cmd.Context(), leadsLocationFlag, leadsTypeFlag, yearBefore, leadsStormsFlag)
		if err != nil {
			return err
		}
		printLeadsReport(report)
		return nil
	},
}

func init() {
	leadsCmd.Flags().StringVarP(&leadsLocationFlag, "location", "l", "", "city, 'City, ST', or state code (required)")
	leadsCmd.Flags().StringVarP(&leadsTypeFlag, "type", "t", "homeowner", "lead type: homeowner or middleman")
	leadsCmd.Flags().IntVar(&leadsYearFlag, "year-before", 0, "target properties built before this year")
	leadsCmd.Flags().BoolVar(&leadsStormsFlag, "storms", true, "open with a storm check when the location is a state code")
	_ = leadsCmd.MarkFlagRequired("location")
}
