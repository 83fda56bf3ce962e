package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/domain"
)

// fixtureComparison pairs the exact-number fixture with a worse
// alternative: the alternative's firm bill ends at 143 (+37.5%).
func fixtureComparison(t *testing.T) *ComparisonSet {
	t.Helper()
	mc := NewMetricsCalculator()
	base := mc.ResultFor(fixtureInput(), fixtureSet())

	altInput := fixtureInput()
	altInput.Name = "ERCOT Texas"
	altInput.ProfileID = "ercot-texas"
	altInput.Utility.State = "TX"
	altSet := fixtureSet()
	firm := altSet.Trajectories[domain.ScenarioUnoptimized]
	firm.Points[2].MonthlyBill = decimal.NewFromInt(143)
	altSet.Trajectories[domain.ScenarioUnoptimized] = firm
	alt := mc.CompareToBase(mc.ResultFor(altInput, altSet), base)

	set := &ComparisonSet{
		BaseName:     base.Name,
		BaseResult:   &base,
		Alternatives: []ComparisonResult{alt},
		Assumptions:  []string{"Projection horizon: 2 years from 2025"},
	}
	set.Findings = GenerateFindings(set)
	return set
}

func TestTableFormat(t *testing.T) {
	out := (&TableFormatter{}).Format(fixtureComparison(t))

	assert.Contains(t, out, "COMMUNITY BILL IMPACT COMPARISON")
	assert.Contains(t, out, "Base: Georgia Power")
	assert.Contains(t, out, "Georgia Power (base) [GA]")
	assert.Contains(t, out, "ERCOT Texas [TX]")
	assert.Contains(t, out, "Current bill: $130.00/mo")
	assert.Contains(t, out, "+$26.00 (+25.0%)")
	assert.Contains(t, out, "firm load adds +$39.00/mo (+37.5%) by 2027")
	assert.Contains(t, out, "curtailment saves $13.00/mo vs firm")
	assert.Contains(t, out, "Firm exposure vs base: +12.5 pts")
	assert.Contains(t, out, "FINDINGS")
	assert.Contains(t, out, "Highest firm exposure: ERCOT Texas at +37.5% by 2027")
	assert.Contains(t, out, "ASSUMPTIONS")
	assert.Contains(t, out, "- Projection horizon: 2 years from 2025")
}

func TestTableFormatBaselineRowHasNoDelta(t *testing.T) {
	out := (&TableFormatter{}).Format(fixtureComparison(t))

	var baselineRow string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "baseline") {
			baselineRow = line
			break
		}
	}
	require.NotEmpty(t, baselineRow)
	assert.Contains(t, baselineRow, " - ")
	assert.NotContains(t, baselineRow, "%")
}

func TestTableFormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(fixtureComparison(t))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "* "))
	assert.Contains(t, lines[1], "firm +25.0%")
	assert.Contains(t, lines[1], "flex saves $13.00/mo")
	assert.Contains(t, lines[2], "firm +37.5%")
}

func TestCompactMoney(t *testing.T) {
	assert.Equal(t, "950", compactMoney(decimal.NewFromInt(950)))
	assert.Equal(t, "25.7K", compactMoney(decimal.NewFromInt(25700)))
	assert.Equal(t, "1.23M", compactMoney(decimal.NewFromInt(1234567)))
	assert.Equal(t, "-4.1K", compactMoney(decimal.NewFromInt(-4080)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 28))
	long := strings.Repeat("x", 30)
	got := truncate(long, 28)
	assert.Len(t, got, 28)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCSVFormat(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(fixtureComparison(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 9)

	assert.Equal(t, []string{
		"Name", "Type", "Scenario", "Final Bill", "Delta vs Baseline",
		"Pct vs Baseline", "Cumulative Cost", "Cumulative Delta", "Verdict",
	}, records[0])

	first := records[1]
	assert.Equal(t, "Georgia Power", first[0])
	assert.Equal(t, "base", first[1])
	assert.Equal(t, "baseline", first[2])
	assert.Equal(t, "104.00", first[3])

	alt := records[5]
	assert.Equal(t, "ERCOT Texas", alt[0])
	assert.Equal(t, "alternative", alt[1])
}

func TestJSONFormat(t *testing.T) {
	set := fixtureComparison(t)

	pretty, err := (&JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"baseName\"")

	var decoded ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(pretty), &decoded))
	assert.Equal(t, "Georgia Power", decoded.BaseName)
	require.NotNil(t, decoded.BaseResult)
	assert.Len(t, decoded.BaseResult.Rows, 4)
	require.Len(t, decoded.Alternatives, 1)
	assert.True(t, decoded.Alternatives[0].FirmPctVsBase.Equal(decimal.NewFromFloat(12.5)))

	compact, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}

func TestRenderDispatch(t *testing.T) {
	set := fixtureComparison(t)

	table, err := Render(set, "")
	require.NoError(t, err)
	assert.Contains(t, table, "COMMUNITY BILL IMPACT COMPARISON")

	upper, err := Render(set, "TABLE")
	require.NoError(t, err)
	assert.Equal(t, table, upper)

	csvOut, err := Render(set, "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csvOut, "Name,Type,Scenario"))

	jsonOut, err := Render(set, "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(jsonOut, "{"))

	_, err = Render(set, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
