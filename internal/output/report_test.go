package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

func testSet() *domain.TrajectorySet {
	base := []float64{100, 102, 104}
	build := func(id domain.ScenarioID, bills []float64) domain.ScenarioTrajectory {
		t := domain.ScenarioTrajectory{Scenario: id}
		for i, bill := range bills {
			t.Points = append(t.Points, domain.TrajectoryPoint{
				Year:        2025 + i,
				MonthlyBill: decimal.NewFromFloat(bill),
				DCImpact:    decimal.NewFromFloat(bill - base[i]),
			})
		}
		return t
	}
	return &domain.TrajectorySet{
		Trajectories: map[domain.ScenarioID]domain.ScenarioTrajectory{
			domain.ScenarioBaseline:     build(domain.ScenarioBaseline, base),
			domain.ScenarioUnoptimized:  build(domain.ScenarioUnoptimized, []float64{100, 110, 130}),
			domain.ScenarioFlexible:     build(domain.ScenarioFlexible, []float64{100, 105, 117}),
			domain.ScenarioDispatchable: build(domain.ScenarioDispatchable, []float64{100, 104, 109.2}),
		},
		Horizon:  2,
		BaseYear: 2025,
	}
}

func makeReport() *Report {
	utility := reference.DefaultUtility()
	utility.AvgMonthlyBill = decimal.NewFromInt(100)
	input := &domain.ProjectionInput{
		Name:        "Model Run",
		Utility:     utility,
		DataCenter:  reference.DefaultDataCenter(),
		Assumptions: reference.DefaultAssumptions(),
	}
	set := testSet()
	summary := calculation.NewTrajectoryEngine().SummarizeTrajectories(set, &input.Utility, &input.DataCenter, nil)
	return NewReport(input, set, summary)
}

func TestGenerateConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	rg := &ReportGenerator{Out: &buf}

	require.NoError(t, rg.GenerateConsoleReport(makeReport()))
	out := buf.String()

	assert.Contains(t, out, "COMMUNITY ENERGY BILL PROJECTION")
	assert.Contains(t, out, "Run: Model Run")
	assert.Contains(t, out, "UTILITY")
	assert.Contains(t, out, "Model Utility")
	assert.Contains(t, out, "DATA CENTER")
	assert.Contains(t, out, "MONTHLY BILL TRAJECTORIES")
	assert.Contains(t, out, "Firm Load")
	assert.Contains(t, out, "Flex + Generation")

	assert.Contains(t, out, "SCENARIO SUMMARY")
	assert.Contains(t, out, "Final bill (2027):")
	assert.Contains(t, out, "$130.00")
	assert.Contains(t, out, "+$26.00/mo (+25.00%)")
	assert.Contains(t, out, "$26.00/mo in 2027")

	assert.Contains(t, out, "SAVINGS VS FIRM LOAD")
	assert.Contains(t, out, "+$13.00/mo by 2027")
	assert.Contains(t, out, "+$20.80/mo by 2027")

	assert.Contains(t, out, "ASSUMPTIONS")
	assert.Contains(t, out, "Projection horizon: 2 years from 2025")
	assert.NotContains(t, out, "TARIFF REVENUE ADEQUACY")
}

func TestGenerateConsoleReportAdequacy(t *testing.T) {
	report := makeReport()
	report.Input.TariffID = "georgia-power-ga"
	adequacy := decimal.RequireFromString("84.5")
	report.Summary.RevenueAdequacyPct = &adequacy

	var buf bytes.Buffer
	rg := &ReportGenerator{Out: &buf}
	require.NoError(t, rg.GenerateConsoleReport(report))
	out := buf.String()

	assert.Contains(t, out, "TARIFF REVENUE ADEQUACY")
	assert.Contains(t, out, "Large-load tariff: georgia-power-ga")
	assert.Contains(t, out, "covers 84.50%")
	assert.Contains(t, out, "Shortfall is borne by the remaining ratepayers")

	full := decimal.RequireFromString("112.3")
	report.Summary.RevenueAdequacyPct = &full
	buf.Reset()
	require.NoError(t, rg.GenerateConsoleReport(report))
	assert.Contains(t, buf.String(), "covers 112.30%")
	assert.NotContains(t, buf.String(), "Shortfall")
}

func TestGenerateCSVReport(t *testing.T) {
	var buf bytes.Buffer
	rg := &ReportGenerator{Out: &buf}

	require.NoError(t, rg.GenerateCSVReport(makeReport()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Year", "baseline", "unoptimized", "flexible", "dispatchable"}, records[0])
	assert.Equal(t, []string{"2025", "100.00", "100.00", "100.00", "100.00"}, records[1])
	assert.Equal(t, []string{"2027", "104.00", "130.00", "117.00", "109.20"}, records[3])
}

func TestGenerateCSVReportEmpty(t *testing.T) {
	rg := &ReportGenerator{Out: &bytes.Buffer{}}

	err := rg.GenerateCSVReport(&Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trajectories")
}

func TestGenerateJSONReport(t *testing.T) {
	var buf bytes.Buffer
	rg := &ReportGenerator{Out: &buf}

	require.NoError(t, rg.GenerateJSONReport(makeReport()))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	var parsed Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, 2025, parsed.Set.BaseYear)
	assert.Equal(t, 2, parsed.Set.Horizon)
	assert.Equal(t, "Model Run", parsed.Input.Name)
	assert.True(t, parsed.Summary.FinalYearBills[domain.ScenarioUnoptimized].Equal(decimal.NewFromInt(130)))
}

func TestGenerateHTMLReport(t *testing.T) {
	var buf bytes.Buffer
	rg := &ReportGenerator{Out: &buf}

	require.NoError(t, rg.GenerateHTMLReport(makeReport()))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Community Energy Bill Projection")
	assert.Contains(t, out, "Firm Load")
	assert.Contains(t, out, "border-top: 4px solid #DC2626")
	assert.Contains(t, out, "$130.00")
	assert.Contains(t, out, "+$26.00/mo vs baseline")
	assert.Contains(t, out, "Monthly Bill Trajectories")
	assert.Contains(t, out, "Assumptions")
}

func TestGenerateDispatch(t *testing.T) {
	report := makeReport()

	for _, format := range []string{"", "console", "CSV", "json", "html"} {
		var buf bytes.Buffer
		rg := &ReportGenerator{Out: &buf}
		require.NoError(t, rg.Generate(report, format), "format %q", format)
		assert.NotEmpty(t, buf.String())
	}

	rg := &ReportGenerator{Out: &bytes.Buffer{}}
	err := rg.Generate(report, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: xml")
}

func TestSaveInput(t *testing.T) {
	report := makeReport()
	path := filepath.Join(t.TempDir(), "session.yaml")

	require.NoError(t, SaveInput(report.Input, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Model Run")
	assert.Contains(t, string(data), "capacity_mw:")

	var loaded domain.ProjectionInput
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, "Model Run", loaded.Name)
	assert.True(t, loaded.Utility.SystemPeakMW.Equal(decimal.NewFromInt(4000)))
	assert.True(t, loaded.DataCenter.CapacityMW.Equal(decimal.NewFromInt(1000)))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-$26.00", FormatCurrency(decimal.NewFromInt(-26)))
	assert.Equal(t, "25.00%", FormatPercentage(decimal.NewFromInt(25)))
	assert.Equal(t, "+$26.00", signedCurrency(decimal.NewFromInt(26)))
	assert.Equal(t, "-$3.50", signedCurrency(decimal.RequireFromString("-3.5")))
	assert.Equal(t, "+25.00%", signedPercent(decimal.NewFromInt(25)))
	assert.Equal(t, "-3.30%", signedPercent(decimal.RequireFromString("-3.3")))
}

func TestAssumptionLines(t *testing.T) {
	a := reference.DefaultAssumptions()
	lines := AssumptionLines(&a)

	joined := strings.Join(lines, "\n")
	assert.Equal(t, "Projection horizon: 10 years from 2025", lines[0])
	assert.Contains(t, joined, "General inflation: 2.5% annually")
	assert.Contains(t, joined, "Baseline rate inflation: 2.5% annually")
	assert.Contains(t, joined, "Grid aging surcharge: 2% annually")
	assert.Contains(t, joined, "Combined baseline escalation: 4.5% annually")
	assert.Contains(t, joined, "Demand forecast: moderate (1x campus sizing)")
	assert.Contains(t, joined, "VRR curve")

	a.UseSupplyCurve = false
	a.Escalation.AgingEnabled = false
	joined = strings.Join(AssumptionLines(&a), "\n")
	assert.NotContains(t, joined, "Grid aging surcharge")
	assert.Contains(t, joined, "Combined baseline escalation: 2.5% annually")
	assert.Contains(t, joined, "Capacity prices held constant at market levels")
}

func TestFormatSensitivityResult(t *testing.T) {
	result := &calculation.SensitivityResult{
		Parameter: calculation.ParamCapacityPrice,
		Scenario:  domain.ScenarioUnoptimized,
		Points: []calculation.SensitivityPoint{
			{Value: decimal.NewFromInt(100), FinalBill: decimal.RequireFromString("165.10"), DeltaVsBaseline: decimal.RequireFromString("25.10")},
			{Value: decimal.NewFromInt(300), FinalBill: decimal.RequireFromString("177.50"), DeltaVsBaseline: decimal.RequireFromString("37.50")},
		},
		MinBill:   decimal.RequireFromString("165.10"),
		MaxBill:   decimal.RequireFromString("177.50"),
		BillRange: decimal.RequireFromString("12.40"),
	}

	out := FormatSensitivityResult(result)
	assert.Contains(t, out, "SENSITIVITY SWEEP: CAPACITY PRICE")
	assert.Contains(t, out, "Scenario: Firm Load")
	assert.Contains(t, out, "$165.10")
	assert.Contains(t, out, "+$37.50")
	assert.Contains(t, out, "Bill range: $12.40 ($165.10 to $177.50)")
}

func TestFormatSensitivityMatrix(t *testing.T) {
	matrix := &calculation.SensitivityMatrix{
		RowParameter: calculation.ParamDataCenterMW,
		ColParameter: calculation.ParamCapacityPrice,
		Scenario:     domain.ScenarioFlexible,
		RowValues:    []decimal.Decimal{decimal.NewFromInt(500), decimal.NewFromInt(1000)},
		ColValues:    []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(300)},
		Cells: [][]decimal.Decimal{
			{decimal.RequireFromString("150.00"), decimal.RequireFromString("155.00")},
			{decimal.RequireFromString("160.00"), decimal.RequireFromString("170.00")},
		},
	}

	out := FormatSensitivityMatrix(matrix)
	assert.Contains(t, out, "SENSITIVITY MATRIX: DC CAPACITY MW x CAPACITY PRICE")
	assert.Contains(t, out, "Scenario: Flexible Load")
	assert.Contains(t, out, "$170.00")
	assert.Contains(t, out, "500")
}
