package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/tariff"
)

var (
	tariffsState  string
	tariffsISO    string
	tariffsStatus string
	tariffsDCOnly bool
)

var tariffsCmd = &cobra.Command{
	Use:   "tariffs",
	Short: "Inspect the large-load tariff database",
}

var tariffsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List large-load tariffs, cheapest blended rate first",
	Long: `List the tariff database. Filters combine.

Examples:
  gridbill tariffs list
  gridbill tariffs list --state VA
  gridbill tariffs list --iso SPP --status active`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := tariff.Catalog()
		var rows []domain.Tariff
		for _, t := range entries {
			if tariffsState != "" && !strings.EqualFold(t.State, tariffsState) {
				continue
			}
			if tariffsISO != "" && !strings.EqualFold(t.ISORTO, tariffsISO) {
				continue
			}
			if tariffsStatus != "" && !strings.EqualFold(string(t.Status), tariffsStatus) {
				continue
			}
			if tariffsDCOnly && !t.DataCenterSpecific {
				continue
			}
			rows = append(rows, t)
		}
		if len(rows) == 0 {
			fmt.Println("No tariffs match the given filters.")
			return nil
		}

		fmt.Printf("%-26s %-5s %-7s %-9s %8s %8s %6s %-5s\n",
			"ID", "ST", "ISO", "STATUS", "MIN MW", "c/kWh", "SCORE", "RATING")
		fmt.Println(strings.Repeat("-", 80))
		for _, t := range rows {
			fmt.Printf("%-26s %-5s %-7s %-9s %8s %8s %3d/%-2d %-5s\n",
				t.ID, t.State, t.ISORTO, t.Status,
				t.MinLoadMW.StringFixed(0),
				centsPerKWh(t.BlendedRatePerKWh),
				t.ProtectionScore, tariff.MaxProtectionScore,
				t.ProtectionRating)
		}
		fmt.Printf("\n%d tariffs\n", len(rows))
		return nil
	},
}

var tariffsShowCmd = &cobra.Command{
	Use:   "show [tariff-id]",
	Short: "Show one tariff in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := tariff.ByID(args[0])
		if !ok {
			return fmt.Errorf("unknown tariff %q", args[0])
		}

		fmt.Printf("%s — %s (%s)\n", t.Utility, t.TariffName, t.RateSchedule)
		fmt.Printf("  State / region:       %s / %s (%s)\n", t.State, t.Region, t.ISORTO)
		fmt.Printf("  Status:               %s (effective %s)\n", t.Status, t.EffectiveDate)
		fmt.Printf("  Minimum load:         %s MW at %s\n", t.MinLoadMW.StringFixed(0), t.VoltageLevel)
		fmt.Printf("  Demand charges:       $%s peak / $%s off-peak per kW-month\n",
			t.PeakDemandCharge.StringFixed(2), t.OffPeakDemandCharge.StringFixed(2))
		fmt.Printf("  Energy rates:         %s c peak / %s c off-peak per kWh\n",
			centsPerKWh(t.EnergyRatePeak), centsPerKWh(t.EnergyRateOffPeak))
		if t.FuelAdjPerKWh.IsPositive() {
			fmt.Printf("  Fuel adjustment:      %s c/kWh\n", centsPerKWh(t.FuelAdjPerKWh))
		}
		fmt.Printf("  Blended rate:         %s c/kWh (600 MW reference campus)\n", centsPerKWh(t.BlendedRatePerKWh))
		fmt.Printf("  Annual cost:          $%sM\n", t.AnnualCostM.StringFixed(1))
		fmt.Printf("  Contract:             %d-year initial term, %d-month termination notice\n",
			t.InitialTermYears, t.TerminationNoticeMos)
		fmt.Printf("  Protection score:     %d/%d (%s)\n", t.ProtectionScore, tariff.MaxProtectionScore, t.ProtectionRating)

		protections := protectionList(t.Protections)
		if t.DataCenterSpecific {
			protections = append(protections, "data-center-specific terms")
		}
		if len(protections) > 0 {
			fmt.Println("  Protections:")
			for _, p := range protections {
				fmt.Printf("    - %s\n", p)
			}
		}
		if t.Notes != "" {
			fmt.Printf("  Notes: %s\n", t.Notes)
		}
		if t.LastVerified != "" {
			fmt.Printf("  Last verified: %s\n", t.LastVerified)
		}
		return nil
	},
}

func centsPerKWh(perKWh decimal.Decimal) string {
	return perKWh.Mul(decimal.NewFromInt(100)).StringFixed(2)
}

func protectionList(p domain.TariffProtections) []string {
	var out []string
	if p.DemandRatchet {
		out = append(out, fmt.Sprintf("demand ratchet at %s%% of contract demand", p.RatchetPct.StringFixed(0)))
	}
	if p.CIACRequired {
		out = append(out, "contribution in aid of construction")
	}
	if p.TakeOrPay {
		out = append(out, "take-or-pay commitment")
	}
	if p.ExitFee {
		out = append(out, "early termination / exit fee")
	}
	if p.CreditRequirements {
		out = append(out, "credit requirements")
	}
	if p.Collateral {
		out = append(out, "collateral posting")
	}
	if p.FuelAdjustment {
		out = append(out, "fuel adjustment clause")
	}
	if p.TOUDifferential {
		out = append(out, "time-of-use differential")
	}
	return out
}

func init() {
	tariffsListCmd.Flags().StringVar(&tariffsState, "state", "", "Filter by state code (e.g. VA)")
	tariffsListCmd.Flags().StringVar(&tariffsISO, "iso", "", "Filter by ISO/RTO (e.g. SPP, PJM)")
	tariffsListCmd.Flags().StringVar(&tariffsStatus, "status", "", "Filter by status (active, pending, proposed)")
	tariffsListCmd.Flags().BoolVar(&tariffsDCOnly, "dc-only", false, "Only data-center-specific tariffs")

	tariffsCmd.AddCommand(tariffsListCmd)
	tariffsCmd.AddCommand(tariffsShowCmd)
	rootCmd.AddCommand(tariffsCmd)
}
