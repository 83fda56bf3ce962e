package output

import (
	"fmt"
	"strings"

	"github.com/gridbill/gridbill/internal/calculation"
)

// FormatSensitivityResult renders a single-parameter sweep as a console
// table.
func FormatSensitivityResult(result *calculation.SensitivityResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SENSITIVITY SWEEP: %s\n", parameterTitle(result.Parameter))
	b.WriteString(strings.Repeat("=", 64) + "\n")
	fmt.Fprintf(&b, "Scenario: %s\n\n", scenarioLabel(result.Scenario))

	fmt.Fprintf(&b, "  %-14s%14s%16s\n", "Value", "Final Bill", "vs Baseline")
	b.WriteString("  " + strings.Repeat("-", 44) + "\n")
	for _, point := range result.Points {
		fmt.Fprintf(&b, "  %-14s%14s%16s\n",
			point.Value.String(),
			FormatCurrency(point.FinalBill),
			signedCurrency(point.DeltaVsBaseline))
	}

	fmt.Fprintf(&b, "\nBill range: %s (%s to %s)\n",
		FormatCurrency(result.BillRange),
		FormatCurrency(result.MinBill),
		FormatCurrency(result.MaxBill))
	return b.String()
}

// FormatSensitivityMatrix renders a two-parameter sweep as a grid of
// final bills, rows by the first parameter and columns by the second.
func FormatSensitivityMatrix(matrix *calculation.SensitivityMatrix) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SENSITIVITY MATRIX: %s x %s\n", parameterTitle(matrix.RowParameter), parameterTitle(matrix.ColParameter))
	b.WriteString(strings.Repeat("=", 64) + "\n")
	fmt.Fprintf(&b, "Scenario: %s\n\n", scenarioLabel(matrix.Scenario))

	fmt.Fprintf(&b, "  %-14s", matrix.RowParameter+" \\")
	for _, col := range matrix.ColValues {
		fmt.Fprintf(&b, "%12s", col.String())
	}
	b.WriteString("\n")
	b.WriteString("  " + strings.Repeat("-", 14+12*len(matrix.ColValues)) + "\n")

	for r, rowValue := range matrix.RowValues {
		fmt.Fprintf(&b, "  %-14s", rowValue.String())
		for c := range matrix.ColValues {
			cell := "-"
			if r < len(matrix.Cells) && c < len(matrix.Cells[r]) {
				cell = FormatCurrency(matrix.Cells[r][c])
			}
			fmt.Fprintf(&b, "%12s", cell)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func parameterTitle(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}
