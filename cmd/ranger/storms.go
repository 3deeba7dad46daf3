package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	stormsStateFlag string
	stormsLeadsFlag bool
)

var stormsCmd = &cobra.Command{
	Use:   "storms -s <state>",
	Short: "Scan active storm alerts for a state and chase leads in affected areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}

		if !stormsLeadsFlag {
			report, err := a.runner.ScanStorms(cmd.Context(), stormsStateFlag)
			if err != nil {
				return err
			}
			printStormReport(report)
			return nil
		}

		fmt.Println("\nSearching for storm leads...")
		report, err := a.runner.FindStormLeads(cmd.Context(), stormsStateFlag)
		if err != nil {
			return err
		}
		printLeadsReport(report)
		return nil
	},
}

func init() {
	stormsCmd.Flags().StringVarP(&stormsStateFlag, "state", "s", "", "two-letter state code (required)")
	stormsCmd.Flags().BoolVar(&stormsLeadsFlag, "leads", true, "chase leads in storm-affected areas, not just list alerts")
	_ = stormsCmd.MarkFlagRequired("state")
}
