package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/tariff"
)

var heatmapYears int

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "State-by-state rollup of data-center exposure and tariff protections",
	Long: `Roll the utility profiles and tariff database up to state level:
how many utilities and residential customers sit in each state, the best
protection rating on file, and the projected firm-scenario bill increase
for the state's flagship utility.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rollups, err := tariff.BuildStateRollups(cmd.Context(), heatmapYears)
		if err != nil {
			return err
		}

		fmt.Printf("%-5s %6s %12s %-12s %7s %6s %-6s %9s\n",
			"ST", "UTILS", "CUSTOMERS", "MARKET", "TARIFFS", "SCORE", "BEST", "FIRM %")
		fmt.Println(strings.Repeat("-", 72))
		for _, r := range rollups {
			firm := "-"
			if r.FirmIncreasePct != nil {
				firm = "+" + r.FirmIncreasePct.StringFixed(1) + "%"
			}
			fmt.Printf("%-5s %6d %12d %-12s %7d %6s %-6s %9s\n",
				r.State, r.Utilities, r.ResidentialCustomers, r.DominantMarket,
				r.TariffCount, r.MeanProtectionScore.StringFixed(1), r.BestRating, firm)
		}
		fmt.Printf("\n%d states\n", len(rollups))
		return nil
	},
}

func init() {
	heatmapCmd.Flags().IntVar(&heatmapYears, "years", 0, "Projection horizon in years (default per assumptions)")
	rootCmd.AddCommand(heatmapCmd)
}
