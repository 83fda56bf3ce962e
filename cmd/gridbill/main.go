package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/config"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/output"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
)

// cliLogger implements calculation.Logger using the standard log package
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "gridbill",
	Short: "Community energy bill impact calculator",
	Long: `gridbill projects residential electricity bills under data-center
growth scenarios: baseline, firm service, flexible operation, and
dispatchable operation with onsite generation.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gridbill %s (commit %s, built %s)\n", version, commit, date)
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("go: %s\n", info.GoVersion)
		}
	},
}

// newEngine builds a trajectory engine honoring the global debug flag.
func newEngine() *calculation.TrajectoryEngine {
	engine := calculation.NewTrajectoryEngine()
	if flagDebug {
		engine.Logger = cliLogger{}
		engine.Debug = true
	}
	return engine
}

// addInputFlags registers the shared projection-input flags.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("profile", "", "Utility profile id (see the API /api/profiles for the list)")
	cmd.Flags().Float64("dc-mw", 0, "Override the data center capacity in MW")
	cmd.Flags().Int("years", 0, "Override the projection horizon in years")
	cmd.Flags().String("tariff", "", "Large-load tariff id credited against infrastructure costs")
	cmd.Flags().String("forecast", "", "Demand forecast (constrained, moderate, accelerated)")
}

// resolveInput builds the projection input from --config, --profile, and
// the override flags, in that order.
func resolveInput(cmd *cobra.Command) (*domain.ProjectionInput, error) {
	forecastStr, _ := cmd.Flags().GetString("forecast")
	forecast := domain.ForecastScenario(forecastStr)
	if forecastStr != "" && !domain.ValidForecast(forecast) {
		return nil, fmt.Errorf("unknown forecast %q (valid: constrained, moderate, accelerated)", forecastStr)
	}

	parser := config.NewInputParser()

	var input *domain.ProjectionInput
	if flagConfig != "" {
		loaded, err := parser.LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		input = loaded
	} else {
		input = &domain.ProjectionInput{
			Utility:     reference.DefaultUtility(),
			DataCenter:  reference.DefaultDataCenter(),
			Assumptions: reference.DefaultAssumptions(),
		}
	}

	if forecastStr != "" {
		input.Assumptions.Forecast = forecast
	}

	if profileID, _ := cmd.Flags().GetString("profile"); profileID != "" {
		p, ok := reference.ProfileByID(profileID)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", profileID)
		}
		input.Name = p.ShortName
		input.ProfileID = p.ID
		input.Utility = reference.UtilityFromProfile(&p)
		input.DataCenter = reference.DataCenterForProfile(&p, input.Assumptions.Forecast)
	}

	if mw, _ := cmd.Flags().GetFloat64("dc-mw"); mw > 0 {
		input.DataCenter.CapacityMW = decimal.NewFromFloat(mw)
	}
	if years, _ := cmd.Flags().GetInt("years"); years > 0 {
		input.Assumptions.ProjectionYears = years
	}
	if tariffID, _ := cmd.Flags().GetString("tariff"); tariffID != "" {
		input.TariffID = tariffID
	}

	if err := parser.ValidateInput(input); err != nil {
		return nil, err
	}
	return input, nil
}

// tariffForInput resolves the optional large-load tariff named by the input.
func tariffForInput(input *domain.ProjectionInput) (*domain.Tariff, error) {
	if input.TariffID == "" {
		return nil, nil
	}
	t, ok := tariff.ByID(input.TariffID)
	if !ok {
		return nil, fmt.Errorf("unknown tariff %q", input.TariffID)
	}
	return &t, nil
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project bill trajectories for all four scenarios",
	Long: `Project residential bill trajectories under the four data-center
scenarios and print a report.

Examples:
  gridbill project --profile pso-oklahoma
  gridbill project --profile duke-carolinas --dc-mw 1500 --years 15
  gridbill project --config campus.yaml --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := resolveInput(cmd)
		if err != nil {
			return err
		}

		engine := newEngine()
		largeLoad, err := tariffForInput(input)
		if err != nil {
			return err
		}

		set, err := engine.ProjectAll(cmd.Context(), &input.Utility, &input.DataCenter, largeLoad, &input.Assumptions)
		if err != nil {
			return err
		}
		summary := engine.SummarizeTrajectories(set, &input.Utility, &input.DataCenter, largeLoad)

		format, _ := cmd.Flags().GetString("format")
		return output.GenerateReport(output.NewReport(input, set, summary), format)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a projection configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Configuration file %s is valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML projection input file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable per-year engine debug logging")

	addInputFlags(projectCmd)
	projectCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html)")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
