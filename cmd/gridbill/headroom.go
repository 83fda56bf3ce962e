package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/calculation"
)

var headroomTargetPct float64

var headroomCmd = &cobra.Command{
	Use:   "headroom",
	Short: "Solve for the data-center capacity a bill-increase ceiling allows",
	Long: `Invert the firm-scenario projection: given a tolerable residential
bill increase over the horizon, find the largest campus the system can
absorb without exceeding it.

Examples:
  gridbill headroom --profile pso-oklahoma --target-pct 5
  gridbill headroom --profile dominion-virginia --target-pct 10 --tariff dominion-gs-5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := resolveInput(cmd)
		if err != nil {
			return err
		}
		largeLoad, err := tariffForInput(input)
		if err != nil {
			return err
		}

		solver := calculation.NewHeadroomSolver(newEngine())
		result, err := solver.Solve(cmd.Context(), &input.Utility, &input.DataCenter, largeLoad,
			&input.Assumptions, decimal.NewFromFloat(headroomTargetPct))
		if err != nil {
			return err
		}

		fmt.Printf("Headroom for %s (+%s%% ceiling over %d years)\n",
			input.Utility.Name, result.TargetIncrease.StringFixed(1), input.Assumptions.Horizon())
		fmt.Printf("  Capacity:          %s MW\n", result.CapacityMW.StringFixed(0))
		fmt.Printf("  Achieved increase: +%s%%\n", result.AchievedIncrease.StringFixed(2))
		converged := "converged"
		if !result.Converged {
			converged = "did not converge"
		}
		fmt.Printf("  Iterations:        %d (%s)\n", result.Iterations, converged)
		if result.Note != "" {
			fmt.Printf("  Note: %s\n", result.Note)
		}
		return nil
	},
}

func init() {
	addInputFlags(headroomCmd)
	headroomCmd.Flags().Float64Var(&headroomTargetPct, "target-pct", 5, "Tolerable bill increase in percent over the horizon")
	rootCmd.AddCommand(headroomCmd)
}
