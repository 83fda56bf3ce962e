package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter renders a comparison set as CSV, one row per scenario per
// result.
type CSVFormatter struct{}

// Format generates CSV output for a comparison set.
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Name",
		"Type",
		"Scenario",
		"Final Bill",
		"Delta vs Baseline",
		"Pct vs Baseline",
		"Cumulative Cost",
		"Cumulative Delta",
		"Verdict",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, result := range set.Results() {
		resultType := "alternative"
		if i == 0 {
			resultType = "base"
		}
		for _, row := range result.Rows {
			record := []string{
				result.Name,
				resultType,
				string(row.Scenario),
				row.FinalBill.StringFixed(2),
				row.DeltaVsBaseline.StringFixed(2),
				row.PctVsBaseline.StringFixed(2),
				row.CumulativeCost.StringFixed(2),
				row.CumulativeDelta.StringFixed(2),
				row.Verdict,
			}
			if err := writer.Write(record); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
