package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

const tableWidth = 100

// TableFormatter renders a comparison set as an aligned console table.
type TableFormatter struct{}

// Format renders the full comparison: one block of scenario rows per
// result, findings and assumptions at the end.
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("COMMUNITY BILL IMPACT COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", set.BaseName))
	sb.WriteString("\n")

	for i, result := range set.Results() {
		tf.writeResult(&sb, result, i == 0)
	}

	if len(set.Findings) > 0 {
		sb.WriteString("FINDINGS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, f := range set.Findings {
			sb.WriteString("  - " + f + "\n")
		}
		sb.WriteString("\n")
	}

	if len(set.Assumptions) > 0 {
		sb.WriteString("ASSUMPTIONS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, a := range set.Assumptions {
			sb.WriteString("  - " + a + "\n")
		}
	}

	return sb.String()
}

func (tf *TableFormatter) writeResult(sb *strings.Builder, result ComparisonResult, isBase bool) {
	header := result.Name
	if isBase {
		header += " (base)"
	}
	if result.State != "" {
		header += " [" + result.State + "]"
	}
	sb.WriteString(header + "\n")
	if result.Description != "" {
		sb.WriteString("  " + result.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("  Current bill: $%s/mo\n", result.CurrentBill.StringFixed(2)))

	sb.WriteString(fmt.Sprintf("  %-13s %10s %17s %11s  %s\n",
		"Scenario", "Final Bill", "vs Baseline", "Cumulative", "Verdict"))
	sb.WriteString("  " + strings.Repeat("-", tableWidth-2) + "\n")
	for _, row := range result.Rows {
		delta := "-"
		if row.Scenario != domain.ScenarioBaseline {
			delta = fmt.Sprintf("%s (%s%%)", signedMoney(row.DeltaVsBaseline), signed(row.PctVsBaseline, 1))
		}
		sb.WriteString(fmt.Sprintf("  %-13s %10s %17s %11s  %s\n",
			string(row.Scenario),
			"$"+row.FinalBill.StringFixed(2),
			delta,
			"$"+compactMoney(row.CumulativeCost),
			row.Verdict))
	}
	if !isBase && !result.FirmPctVsBase.IsZero() {
		sb.WriteString(fmt.Sprintf("  Firm exposure vs base: %s pts\n", signed(result.FirmPctVsBase, 1)))
	}
	sb.WriteString("\n")
}

// compactMoney abbreviates large dollar figures for table cells.
func compactMoney(d decimal.Decimal) string {
	abs := d.Abs()
	if abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	}
	if abs.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// FormatCompact renders a one-line-per-result summary for quick scans.
func (tf *TableFormatter) FormatCompact(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s\n", set.BaseName))
	for i, result := range set.Results() {
		marker := "  "
		if i == 0 {
			marker = "* "
		}
		sb.WriteString(fmt.Sprintf("%s%-28s firm %s%%  flex saves $%s/mo\n",
			marker,
			truncate(result.Name, 28),
			signed(result.FirmIncreasePct, 1),
			result.FlexSavings.StringFixed(2)))
	}

	return sb.String()
}

// truncate shortens a string to maxLen with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
