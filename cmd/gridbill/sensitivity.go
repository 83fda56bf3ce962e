package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/output"
)

var (
	sensParam    string
	sensMin      float64
	sensMax      float64
	sensSteps    int
	sensParam2   string
	sensMin2     float64
	sensMax2     float64
	sensSteps2   int
	sensScenario string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep a parameter and report the final-bill response",
	Long: `Sweep one assumption across a range and report how the final-year
bill responds. Pass --param2 for a two-dimensional matrix.

Parameters: capacity_price, dc_capacity_mw, flex_coincidence, inflation.

Examples:
  gridbill sensitivity --profile pso-oklahoma --param inflation --min 1 --max 5
  gridbill sensitivity --param dc_capacity_mw --min 250 --max 2000 --steps 8 \
    --param2 flex_coincidence --min2 0.1 --max2 0.5 --steps2 5`,
	RunE: runSensitivity,
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(cmd)
	if err != nil {
		return err
	}
	largeLoad, err := tariffForInput(input)
	if err != nil {
		return err
	}

	scenario := domain.ScenarioID(sensScenario)
	if !domain.ValidScenarioID(scenario) {
		return fmt.Errorf("unknown scenario %q (valid: baseline, unoptimized, flexible, dispatchable)", sensScenario)
	}
	if sensMax <= sensMin {
		return fmt.Errorf("pass --min and --max with min < max")
	}

	analyzer := calculation.NewSensitivityAnalyzerWithEngine(newEngine())
	param := calculation.SensitivityParameter{
		Name:  sensParam,
		Min:   decimal.NewFromFloat(sensMin),
		Max:   decimal.NewFromFloat(sensMax),
		Steps: sensSteps,
	}

	if sensParam2 != "" {
		if sensMax2 <= sensMin2 {
			return fmt.Errorf("pass --min2 and --max2 with min2 < max2")
		}
		col := calculation.SensitivityParameter{
			Name:  sensParam2,
			Min:   decimal.NewFromFloat(sensMin2),
			Max:   decimal.NewFromFloat(sensMax2),
			Steps: sensSteps2,
		}
		matrix, err := analyzer.AnalyzeMatrix(cmd.Context(), &input.Utility, &input.DataCenter, largeLoad,
			&input.Assumptions, scenario, param, col)
		if err != nil {
			return err
		}
		fmt.Print(output.FormatSensitivityMatrix(matrix))
		return nil
	}

	result, err := analyzer.AnalyzeSingleParameter(cmd.Context(), &input.Utility, &input.DataCenter, largeLoad,
		&input.Assumptions, scenario, param)
	if err != nil {
		return err
	}
	fmt.Print(output.FormatSensitivityResult(result))
	return nil
}

func init() {
	addInputFlags(sensitivityCmd)
	sensitivityCmd.Flags().StringVar(&sensParam, "param", calculation.ParamInflation, "Parameter to sweep")
	sensitivityCmd.Flags().Float64Var(&sensMin, "min", 0, "Sweep lower bound")
	sensitivityCmd.Flags().Float64Var(&sensMax, "max", 0, "Sweep upper bound")
	sensitivityCmd.Flags().IntVar(&sensSteps, "steps", 5, "Number of sweep steps")
	sensitivityCmd.Flags().StringVar(&sensParam2, "param2", "", "Second parameter for a 2-D matrix")
	sensitivityCmd.Flags().Float64Var(&sensMin2, "min2", 0, "Second sweep lower bound")
	sensitivityCmd.Flags().Float64Var(&sensMax2, "max2", 0, "Second sweep upper bound")
	sensitivityCmd.Flags().IntVar(&sensSteps2, "steps2", 5, "Second sweep steps")
	sensitivityCmd.Flags().StringVar(&sensScenario, "scenario", string(domain.ScenarioUnoptimized), "Scenario to analyze")
	rootCmd.AddCommand(sensitivityCmd)
}
