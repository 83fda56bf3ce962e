package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

var (
	uncertaintySims int
	uncertaintySeed int64
)

var uncertaintyCmd = &cobra.Command{
	Use:   "uncertainty",
	Short: "Monte Carlo percentile bands around the final-year bills",
	Long: `Run Monte Carlo simulations with inflation, capacity price, and flex
coincidence drawn from normal distributions, and report percentile bands
for the final-year bill under each scenario. Runs are deterministic for
a given seed.

Examples:
  gridbill uncertainty --profile pso-oklahoma
  gridbill uncertainty --profile duke-carolinas --sims 2000 --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := resolveInput(cmd)
		if err != nil {
			return err
		}
		largeLoad, err := tariffForInput(input)
		if err != nil {
			return err
		}

		config := calculation.DefaultUncertaintyConfig()
		if uncertaintySims > 0 {
			config.NumSimulations = uncertaintySims
		}
		if uncertaintySeed != 0 {
			config.Seed = uncertaintySeed
		}

		mc := calculation.NewUncertaintyEngine(newEngine(), config)
		result, err := mc.Run(cmd.Context(), &input.Utility, &input.DataCenter, largeLoad, &input.Assumptions)
		if err != nil {
			return err
		}

		fmt.Printf("Final-year bill bands for %s — %d simulations, %d-year horizon\n\n",
			input.Utility.Name, result.Simulations, input.Assumptions.Horizon())
		fmt.Printf("%-18s %9s %9s %9s %9s %9s\n", "SCENARIO", "P10", "P25", "P50", "P75", "P90")
		fmt.Println(strings.Repeat("-", 68))
		for _, id := range domain.ScenarioOrder {
			band, ok := result.FinalBills[id]
			if !ok {
				continue
			}
			name := string(id)
			if s, found := reference.ScenarioByID(id); found {
				name = s.Name
			}
			fmt.Printf("%-18s %9s %9s %9s %9s %9s\n", name,
				"$"+band.P10.StringFixed(2), "$"+band.P25.StringFixed(2), "$"+band.P50.StringFixed(2),
				"$"+band.P75.StringFixed(2), "$"+band.P90.StringFixed(2))
		}
		return nil
	},
}

func init() {
	addInputFlags(uncertaintyCmd)
	uncertaintyCmd.Flags().IntVar(&uncertaintySims, "sims", 0, "Number of Monte Carlo simulations (default 500)")
	uncertaintyCmd.Flags().Int64Var(&uncertaintySeed, "seed", 0, "Random seed (default fixed for reproducibility)")
	rootCmd.AddCommand(uncertaintyCmd)
}
