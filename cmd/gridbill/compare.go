package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/compare"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/transform"
)

var (
	compareProfiles      string
	compareWith          string
	compareFormat        string
	compareListTemplates bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare projections across utilities or what-if templates",
	Long: `Compare final-year bills, cumulative costs, and protection coverage
across several utility profiles, or compare a base projection against
what-if templates.

Examples:
  gridbill compare --profiles pso-oklahoma,duke-carolinas,dominion-virginia
  gridbill compare --profile pso-oklahoma --with double_dc,no_flex
  gridbill compare --list-templates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if compareListTemplates {
			fmt.Print(transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		opts := compare.CompareOptions{}
		if years, _ := cmd.Flags().GetInt("years"); years > 0 {
			opts.Horizon = years
		}
		if tariffID, _ := cmd.Flags().GetString("tariff"); tariffID != "" {
			opts.TariffID = tariffID
		}
		if forecastStr, _ := cmd.Flags().GetString("forecast"); forecastStr != "" {
			forecast := domain.ForecastScenario(forecastStr)
			if !domain.ValidForecast(forecast) {
				return fmt.Errorf("unknown forecast %q (valid: constrained, moderate, accelerated)", forecastStr)
			}
			opts.Forecast = forecast
		}

		engine := compare.NewCompareEngine(newEngine())

		var set *compare.ComparisonSet
		var err error
		switch {
		case compareProfiles != "":
			set, err = engine.CompareProfiles(cmd.Context(), splitList(compareProfiles), opts)
		case compareWith != "":
			base, baseErr := resolveInput(cmd)
			if baseErr != nil {
				return baseErr
			}
			set, err = engine.CompareTemplates(cmd.Context(), base, transform.ParseTemplateList(compareWith), opts)
		default:
			return fmt.Errorf("nothing to compare: pass --profiles or --with")
		}
		if err != nil {
			return err
		}

		rendered, err := compare.Render(set, compareFormat)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	addInputFlags(compareCmd)
	compareCmd.Flags().StringVar(&compareProfiles, "profiles", "", "Comma-separated utility profile ids to compare")
	compareCmd.Flags().StringVar(&compareWith, "with", "", "Comma-separated what-if templates applied to the base input")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().BoolVar(&compareListTemplates, "list-templates", false, "List the built-in what-if templates")
	rootCmd.AddCommand(compareCmd)
}
