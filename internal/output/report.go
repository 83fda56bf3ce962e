// Package output renders projection results as console text, JSON, CSV,
// and HTML reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

var hundred = decimal.NewFromInt(100)

// Report bundles one projection run for rendering: the input it ran
// from, the four trajectories, and the derived summary numbers.
type Report struct {
	Input   *domain.ProjectionInput `json:"input"`
	Set     *domain.TrajectorySet   `json:"trajectories"`
	Summary *domain.SummaryStats    `json:"summary"`
}

// NewReport assembles a report from a finished projection run.
func NewReport(input *domain.ProjectionInput, set *domain.TrajectorySet, summary *domain.SummaryStats) *Report {
	return &Report{Input: input, Set: set, Summary: summary}
}

// ReportGenerator renders reports to Out in the requested format.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a generator writing to stdout.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{Out: os.Stdout}
}

// GenerateReport renders a report to stdout in the specified format.
func GenerateReport(report *Report, format string) error {
	return NewReportGenerator().Generate(report, format)
}

// Generate renders the report in the specified format.
func (rg *ReportGenerator) Generate(report *Report, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "":
		return rg.GenerateConsoleReport(report)
	case "html":
		return rg.GenerateHTMLReport(report)
	case "json":
		return rg.GenerateJSONReport(report)
	case "csv":
		return rg.GenerateCSVReport(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport writes the full plain-text report.
func (rg *ReportGenerator) GenerateConsoleReport(report *Report) error {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString(rule + "\n")
	b.WriteString("COMMUNITY ENERGY BILL PROJECTION\n")
	b.WriteString(rule + "\n")
	if report.Input != nil && report.Input.Name != "" {
		fmt.Fprintf(&b, "Run: %s\n", report.Input.Name)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	if report.Input != nil {
		writeUtilitySection(&b, &report.Input.Utility)
		writeDataCenterSection(&b, &report.Input.DataCenter)
	}
	if report.Set != nil {
		writeTrajectorySection(&b, report.Set)
	}
	if report.Summary != nil && report.Set != nil {
		writeSummarySection(&b, report.Summary, report.Set)
		writeSavingsSection(&b, report.Summary, report.Set)
	}
	if report.Summary != nil && report.Input != nil {
		writeAdequacySection(&b, report.Summary, report.Input.TariffID)
	}
	if report.Input != nil {
		b.WriteString("ASSUMPTIONS\n")
		for _, line := range AssumptionLines(&report.Input.Assumptions) {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}

	_, err := io.WriteString(rg.Out, b.String())
	return err
}

func writeUtilitySection(b *strings.Builder, u *domain.Utility) {
	b.WriteString("UTILITY\n")
	name := u.Name
	if name == "" {
		name = "(unnamed)"
	}
	if u.State != "" {
		fmt.Fprintf(b, "  %-24s %s (%s)\n", "Name:", name, u.State)
	} else {
		fmt.Fprintf(b, "  %-24s %s\n", "Name:", name)
	}
	fmt.Fprintf(b, "  %-24s %d\n", "Residential customers:", u.ResidentialCustomers)
	fmt.Fprintf(b, "  %-24s %s/mo\n", "Current bill:", FormatCurrency(u.AvgMonthlyBill))
	fmt.Fprintf(b, "  %-24s %s MW\n", "System peak:", u.SystemPeakMW.StringFixed(0))
	fmt.Fprintf(b, "  %-24s %s\n", "Market:", strings.ToUpper(string(u.Market.Type)))
	if u.Market.CapacityPrice != nil {
		fmt.Fprintf(b, "  %-24s %s/MW-day\n", "Capacity price:", FormatCurrency(*u.Market.CapacityPrice))
	}
	b.WriteString("\n")
}

func writeDataCenterSection(b *strings.Builder, dc *domain.DataCenter) {
	b.WriteString("DATA CENTER\n")
	fmt.Fprintf(b, "  %-24s %s MW\n", "Nameplate capacity:", dc.CapacityMW.StringFixed(0))
	fmt.Fprintf(b, "  %-24s %s MW\n", "Onsite generation:", dc.OnsiteGenerationMW.StringFixed(0))
	fmt.Fprintf(b, "  %-24s %s\n", "Firm load factor:", FormatPercentage(dc.FirmLoadFactor.Mul(hundred)))
	fmt.Fprintf(b, "  %-24s %s\n", "Flex load factor:", FormatPercentage(dc.FlexLoadFactor.Mul(hundred)))
	b.WriteString("\n")
}

func writeTrajectorySection(b *strings.Builder, set *domain.TrajectorySet) {
	baseline, ok := set.Get(domain.ScenarioBaseline)
	if !ok || len(baseline.Points) == 0 {
		return
	}

	b.WriteString("MONTHLY BILL TRAJECTORIES\n")
	fmt.Fprintf(b, "  %-6s", "Year")
	for _, id := range domain.ScenarioOrder {
		fmt.Fprintf(b, "%19s", scenarioLabel(id))
	}
	b.WriteString("\n")

	for i, point := range baseline.Points {
		fmt.Fprintf(b, "  %-6d", point.Year)
		for _, id := range domain.ScenarioOrder {
			cell := "-"
			if t, ok := set.Get(id); ok && i < len(t.Points) {
				cell = FormatCurrency(t.Points[i].MonthlyBill)
			}
			fmt.Fprintf(b, "%19s", cell)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeSummarySection(b *strings.Builder, stats *domain.SummaryStats, set *domain.TrajectorySet) {
	b.WriteString("SCENARIO SUMMARY\n")
	finalYear := set.BaseYear + set.Horizon
	baselineFinal := stats.FinalYearBills[domain.ScenarioBaseline]

	for _, id := range domain.ScenarioOrder {
		final, ok := stats.FinalYearBills[id]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "  %s\n", scenarioLabel(id))
		fmt.Fprintf(b, "    %-22s %s/mo\n", fmt.Sprintf("Final bill (%d):", finalYear), FormatCurrency(final))
		if pct, ok := stats.PercentIncrease[id]; ok {
			fmt.Fprintf(b, "    %-22s %s\n", "Change vs today:", signedPercent(pct))
		}
		if id != domain.ScenarioBaseline {
			diff := stats.FinalYearDifference[id]
			if baselineFinal.GreaterThan(decimal.Zero) {
				pct := diff.Div(baselineFinal).Mul(hundred)
				fmt.Fprintf(b, "    %-22s %s/mo (%s)\n", "vs baseline:", signedCurrency(diff), signedPercent(pct))
			} else {
				fmt.Fprintf(b, "    %-22s %s/mo\n", "vs baseline:", signedCurrency(diff))
			}
			if year, ok := stats.PeakImpactYear[id]; ok {
				fmt.Fprintf(b, "    %-22s %s/mo in %d\n", "Peak impact:", FormatCurrency(stats.PeakImpactValue[id]), year)
			}
		}
		fmt.Fprintf(b, "    %-22s %s\n", "Cumulative cost:", FormatCurrency(stats.CumulativeCosts[id]))
	}
	b.WriteString("\n")
}

func writeSavingsSection(b *strings.Builder, stats *domain.SummaryStats, set *domain.TrajectorySet) {
	if len(stats.SavingsVsUnoptimized) == 0 {
		return
	}
	finalYear := set.BaseYear + set.Horizon
	b.WriteString("SAVINGS VS FIRM LOAD\n")
	for _, id := range []domain.ScenarioID{domain.ScenarioFlexible, domain.ScenarioDispatchable} {
		savings, ok := stats.SavingsVsUnoptimized[id]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "  %-20s %s/mo by %d\n", scenarioLabel(id)+":", signedCurrency(savings), finalYear)
	}
	b.WriteString("\n")
}

func writeAdequacySection(b *strings.Builder, stats *domain.SummaryStats, tariffID string) {
	if stats.RevenueAdequacyPct == nil {
		return
	}
	b.WriteString("TARIFF REVENUE ADEQUACY\n")
	if tariffID != "" {
		fmt.Fprintf(b, "  Large-load tariff: %s\n", tariffID)
	}
	fmt.Fprintf(b, "  Tariff revenue covers %s of incremental infrastructure cost\n", FormatPercentage(*stats.RevenueAdequacyPct))
	if stats.RevenueAdequacyPct.LessThan(hundred) {
		b.WriteString("  Shortfall is borne by the remaining ratepayers\n")
	}
	b.WriteString("\n")
}

// GenerateJSONReport writes the report as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = rg.Out.Write(append(data, '\n'))
	return err
}

// GenerateCSVReport writes the per-year bill matrix, one column per
// scenario keyed by scenario id.
func (rg *ReportGenerator) GenerateCSVReport(report *Report) error {
	if report.Set == nil {
		return fmt.Errorf("no trajectories to export")
	}
	baseline, ok := report.Set.Get(domain.ScenarioBaseline)
	if !ok || len(baseline.Points) == 0 {
		return fmt.Errorf("no trajectories to export")
	}

	writer := csv.NewWriter(rg.Out)
	header := []string{"Year"}
	for _, id := range domain.ScenarioOrder {
		header = append(header, string(id))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, point := range baseline.Points {
		row := []string{strconv.Itoa(point.Year)}
		for _, id := range domain.ScenarioOrder {
			cell := ""
			if t, ok := report.Set.Get(id); ok && i < len(t.Points) {
				cell = t.Points[i].MonthlyBill.StringFixed(2)
			}
			row = append(row, cell)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveInput writes a projection input as a YAML session file, the same
// shape the config loader reads back.
func SaveInput(input *domain.ProjectionInput, filename string) error {
	data, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", filename, err)
	}
	return nil
}

// FormatCurrency renders a dollar amount with two decimal places.
func FormatCurrency(value decimal.Decimal) string {
	if value.IsNegative() {
		return "-$" + value.Abs().StringFixed(2)
	}
	return "$" + value.StringFixed(2)
}

// FormatPercentage renders an already-scaled percent value.
func FormatPercentage(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

func signedCurrency(value decimal.Decimal) string {
	if value.IsNegative() {
		return FormatCurrency(value)
	}
	return "+" + FormatCurrency(value)
}

func signedPercent(value decimal.Decimal) string {
	if value.IsNegative() {
		return FormatPercentage(value)
	}
	return "+" + FormatPercentage(value)
}

func scenarioLabel(id domain.ScenarioID) string {
	if s, ok := reference.ScenarioByID(id); ok {
		return s.Name
	}
	return string(id)
}
