package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Sweepable parameter names accepted by the sensitivity analyzer.
const (
	ParamCapacityPrice   = "capacity_price"
	ParamDataCenterMW    = "dc_capacity_mw"
	ParamFlexCoincidence = "flex_coincidence"
	ParamInflation       = "inflation"
)

// SensitivityParameter describes one swept axis.
type SensitivityParameter struct {
	Name  string          `json:"name"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Steps int             `json:"steps"`
}

// SensitivityPoint is the outcome at one parameter value.
type SensitivityPoint struct {
	Value           decimal.Decimal `json:"value"`
	FinalBill       decimal.Decimal `json:"finalBill"`
	DeltaVsBaseline decimal.Decimal `json:"deltaVsBaseline"`
}

// SensitivityResult is a single-parameter sweep.
type SensitivityResult struct {
	Parameter string             `json:"parameter"`
	Scenario  domain.ScenarioID  `json:"scenario"`
	Points    []SensitivityPoint `json:"points"`
	MinBill   decimal.Decimal    `json:"minBill"`
	MaxBill   decimal.Decimal    `json:"maxBill"`
	BillRange decimal.Decimal    `json:"billRange"`
}

// SensitivityMatrix is a two-parameter sweep; Cells[r][c] holds the final
// bill at (RowValues[r], ColValues[c]).
type SensitivityMatrix struct {
	RowParameter string              `json:"rowParameter"`
	ColParameter string              `json:"colParameter"`
	Scenario     domain.ScenarioID   `json:"scenario"`
	RowValues    []decimal.Decimal   `json:"rowValues"`
	ColValues    []decimal.Decimal   `json:"colValues"`
	Cells        [][]decimal.Decimal `json:"cells"`
}

// SensitivityAnalyzer sweeps projection inputs and reports final-year
// bills.
type SensitivityAnalyzer struct {
	engine *TrajectoryEngine
}

// NewSensitivityAnalyzer creates an analyzer on a fresh engine.
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: NewTrajectoryEngine()}
}

// NewSensitivityAnalyzerWithEngine reuses an existing engine.
func NewSensitivityAnalyzerWithEngine(engine *TrajectoryEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// parameterValues spaces steps values evenly across [min, max].
func parameterValues(p SensitivityParameter) []decimal.Decimal {
	if p.Steps <= 1 {
		return []decimal.Decimal{p.Min}
	}
	span := p.Max.Sub(p.Min)
	divisor := decimal.NewFromInt(int64(p.Steps - 1))
	values := make([]decimal.Decimal, 0, p.Steps)
	for i := 0; i < p.Steps; i++ {
		values = append(values, p.Min.Add(span.Mul(decimal.NewFromInt(int64(i))).Div(divisor)))
	}
	return values
}

// applyParameter returns copies of the inputs with one parameter replaced.
func applyParameter(name string, value decimal.Decimal, utility *domain.Utility, dc *domain.DataCenter, assumptions *domain.GlobalAssumptions) (*domain.Utility, *domain.DataCenter, *domain.GlobalAssumptions, error) {
	u := *utility
	d := *dc
	a := *assumptions

	switch name {
	case ParamCapacityPrice:
		price := value
		u.Market.CapacityPrice = &price
	case ParamDataCenterMW:
		d.CapacityMW = value
	case ParamFlexCoincidence:
		d.FlexPeakCoincidence = value
	case ParamInflation:
		a.GeneralInflation = value
		a.Escalation.InflationRate = value
	default:
		return nil, nil, nil, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return &u, &d, &a, nil
}

// AnalyzeSingleParameter sweeps one parameter and records the scenario's
// final-year bill and its delta against the baseline at each value.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(ctx context.Context, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff, assumptions *domain.GlobalAssumptions, scenario domain.ScenarioID, parameter SensitivityParameter) (*SensitivityResult, error) {
	if !domain.ValidScenarioID(scenario) {
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}

	values := parameterValues(parameter)
	points := make([]SensitivityPoint, 0, len(values))

	var minBill, maxBill decimal.Decimal
	for i, value := range values {
		u, d, a, err := applyParameter(parameter.Name, value, utility, dc, assumptions)
		if err != nil {
			return nil, err
		}

		trajectory, err := sa.engine.ProjectScenario(ctx, scenario, u, d, tariff, a)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%s: %w", parameter.Name, value, err)
		}
		baseline := sa.engine.ProjectBaseline(u, a)

		final := trajectory.FinalBill()
		points = append(points, SensitivityPoint{
			Value:           value,
			FinalBill:       final,
			DeltaVsBaseline: final.Sub(baseline.FinalBill()),
		})

		if i == 0 || final.LessThan(minBill) {
			minBill = final
		}
		if i == 0 || final.GreaterThan(maxBill) {
			maxBill = final
		}
	}

	return &SensitivityResult{
		Parameter: parameter.Name,
		Scenario:  scenario,
		Points:    points,
		MinBill:   minBill,
		MaxBill:   maxBill,
		BillRange: maxBill.Sub(minBill),
	}, nil
}

// AnalyzeMatrix sweeps two parameters and fills a final-bill grid.
func (sa *SensitivityAnalyzer) AnalyzeMatrix(ctx context.Context, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff, assumptions *domain.GlobalAssumptions, scenario domain.ScenarioID, row, col SensitivityParameter) (*SensitivityMatrix, error) {
	if !domain.ValidScenarioID(scenario) {
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}

	rowValues := parameterValues(row)
	colValues := parameterValues(col)
	cells := make([][]decimal.Decimal, len(rowValues))

	for r, rowValue := range rowValues {
		cells[r] = make([]decimal.Decimal, len(colValues))
		u, d, a, err := applyParameter(row.Name, rowValue, utility, dc, assumptions)
		if err != nil {
			return nil, err
		}
		for c, colValue := range colValues {
			u2, d2, a2, err := applyParameter(col.Name, colValue, u, d, a)
			if err != nil {
				return nil, err
			}
			trajectory, err := sa.engine.ProjectScenario(ctx, scenario, u2, d2, tariff, a2)
			if err != nil {
				return nil, fmt.Errorf("sweep %s=%s %s=%s: %w", row.Name, rowValue, col.Name, colValue, err)
			}
			cells[r][c] = trajectory.FinalBill()
		}
	}

	return &SensitivityMatrix{
		RowParameter: row.Name,
		ColParameter: col.Name,
		Scenario:     scenario,
		RowValues:    rowValues,
		ColValues:    colValues,
		Cells:        cells,
	}, nil
}
