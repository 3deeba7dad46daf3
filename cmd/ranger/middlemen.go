package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	middlemenRoleFlag     string
	middlemenLocationFlag string
	middlemenRadiusFlag   int
)

var middlemenCmd = &cobra.Command{
	Use:   "middlemen -r <role> -l <location>",
	Short: "Find referral professionals (inspectors, realtors, property managers)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}

		radius := middlemenRadiusFlag
		if radius <= 0 {
			radius = a.cfg.Search.RadiusMiles
		}

		fmt.Println("\nSearching for middlemen...")
		report, err := a.runner.FindMiddlemen(cmd.Context(), middlemenRoleFlag, middlemenLocationFlag, radius)
		if err != nil {
			return err
		}
		printLeadsReport(report)
		return nil
	},
}

func init() {
	middlemenCmd.Flags().StringVarP(&middlemenRoleFlag, "role", "r", "home inspector", "professional role to search for")
	middlemenCmd.Flags().StringVarP(&middlemenLocationFlag, "location", "l", "", "city or 'City, ST' (required)")
	middlemenCmd.Flags().IntVar(&middlemenRadiusFlag, "radius", 0, "search radius in miles")
	_ = middlemenCmd.MarkFlagRequired("location")
}
