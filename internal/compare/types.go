// Package compare runs projection inputs side by side: utility profiles
// against each other, or what-if template variants against an unmodified
// base. Results reduce to per-scenario rows with verdict lines and render
// as table, CSV, or JSON.
package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ScenarioRow is one scenario's headline numbers within a comparison.
type ScenarioRow struct {
	Scenario        domain.ScenarioID `json:"scenario"`
	FinalBill       decimal.Decimal   `json:"finalBill"`
	DeltaVsBaseline decimal.Decimal   `json:"deltaVsBaseline"`
	PctVsBaseline   decimal.Decimal   `json:"pctVsBaseline"`
	CumulativeCost  decimal.Decimal   `json:"cumulativeCost"`
	CumulativeDelta decimal.Decimal   `json:"cumulativeDelta"`
	Verdict         string            `json:"verdict"`
}

// ComparisonResult is one projected input, a profile or a what-if
// variant, reduced to its scenario rows.
type ComparisonResult struct {
	Name        string          `json:"name"`
	ProfileID   string          `json:"profileId,omitempty"`
	State       string          `json:"state,omitempty"`
	Description string          `json:"description,omitempty"`
	CurrentBill decimal.Decimal `json:"currentBill"`
	FinalYear   int             `json:"finalYear"`
	Rows        []ScenarioRow   `json:"rows"`

	// FirmIncreasePct is the unoptimized row's percent increase, the
	// headline exposure number used to rank results.
	FirmIncreasePct decimal.Decimal `json:"firmIncreasePct"`
	// FlexSavings is the final-year monthly saving of flexible vs firm
	// operation.
	FlexSavings decimal.Decimal `json:"flexSavings"`
	// FirmPctVsBase compares this result's firm increase to the base
	// result's, in percentage points.
	FirmPctVsBase decimal.Decimal `json:"firmPctVsBase"`
}

// Row returns the row for a scenario id and whether it exists.
func (cr *ComparisonResult) Row(id domain.ScenarioID) (ScenarioRow, bool) {
	for _, row := range cr.Rows {
		if row.Scenario == id {
			return row, true
		}
	}
	return ScenarioRow{}, false
}

// ComparisonSet is a collection of compared results with the shared
// assumptions behind them.
type ComparisonSet struct {
	BaseName     string             `json:"baseName"`
	BaseResult   *ComparisonResult  `json:"baseResult"`
	Alternatives []ComparisonResult `json:"alternatives"`
	Findings     []string           `json:"findings"`
	Assumptions  []string           `json:"assumptions"`
}

// Results returns the base and alternatives as one ordered slice.
func (cs *ComparisonSet) Results() []ComparisonResult {
	results := make([]ComparisonResult, 0, len(cs.Alternatives)+1)
	if cs.BaseResult != nil {
		results = append(results, *cs.BaseResult)
	}
	results = append(results, cs.Alternatives...)
	return results
}

// MetricsCalculator reduces trajectory sets to comparison rows.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator.
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// ResultFor reduces one projection run to its comparison result.
func (mc *MetricsCalculator) ResultFor(input *domain.ProjectionInput, set *domain.TrajectorySet) ComparisonResult {
	result := ComparisonResult{
		Name:        input.Name,
		ProfileID:   input.ProfileID,
		State:       input.Utility.State,
		CurrentBill: input.Utility.AvgMonthlyBill,
		FinalYear:   set.BaseYear + set.Horizon,
		Rows:        make([]ScenarioRow, 0, len(domain.ScenarioOrder)),
	}

	baseline, ok := set.Get(domain.ScenarioBaseline)
	if !ok {
		return result
	}
	baselineFinal := baseline.FinalBill()
	baselineCumulative := baseline.CumulativeCost()

	firm, _ := set.Get(domain.ScenarioUnoptimized)
	firmFinal := firm.FinalBill()

	for _, id := range domain.ScenarioOrder {
		trajectory, ok := set.Get(id)
		if !ok {
			continue
		}
		final := trajectory.FinalBill()
		row := ScenarioRow{
			Scenario:        id,
			FinalBill:       final,
			DeltaVsBaseline: final.Sub(baselineFinal),
			CumulativeCost:  trajectory.CumulativeCost(),
		}
		row.CumulativeDelta = row.CumulativeCost.Sub(baselineCumulative)
		if baselineFinal.GreaterThan(decimal.Zero) {
			row.PctVsBaseline = row.DeltaVsBaseline.Div(baselineFinal).Mul(hundred)
		}
		row.Verdict = verdictFor(id, row, firmFinal, result.FinalYear)
		result.Rows = append(result.Rows, row)
	}

	if firmRow, ok := result.Row(domain.ScenarioUnoptimized); ok {
		result.FirmIncreasePct = firmRow.PctVsBaseline
	}
	if flexRow, ok := result.Row(domain.ScenarioFlexible); ok {
		result.FlexSavings = firmFinal.Sub(flexRow.FinalBill)
	}
	return result
}

// CompareToBase fills the cross-result fields on an alternative.
func (mc *MetricsCalculator) CompareToBase(result, base ComparisonResult) ComparisonResult {
	result.FirmPctVsBase = result.FirmIncreasePct.Sub(base.FirmIncreasePct)
	return result
}

// verdictFor writes the one-line judgment for a scenario row.
func verdictFor(id domain.ScenarioID, row ScenarioRow, firmFinal decimal.Decimal, finalYear int) string {
	switch id {
	case domain.ScenarioBaseline:
		return "no data-center load; bill follows escalation"
	case domain.ScenarioUnoptimized:
		return fmt.Sprintf("firm load adds %s/mo (%s%%) by %d",
			signedMoney(row.DeltaVsBaseline), signed(row.PctVsBaseline, 1), finalYear)
	case domain.ScenarioFlexible:
		return savingsVerdict("curtailment", firmFinal.Sub(row.FinalBill))
	case domain.ScenarioDispatchable:
		return savingsVerdict("onsite dispatch", firmFinal.Sub(row.FinalBill))
	}
	return ""
}

func savingsVerdict(action string, saving decimal.Decimal) string {
	if saving.IsNegative() {
		return fmt.Sprintf("%s costs $%s/mo more than firm", action, saving.Abs().StringFixed(2))
	}
	return fmt.Sprintf("%s saves $%s/mo vs firm", action, saving.StringFixed(2))
}

// signed renders a number with an explicit sign for display.
func signed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

// signedMoney renders a currency delta with an explicit sign.
func signedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}

// GenerateFindings writes the headline takeaways for a comparison set.
func GenerateFindings(set *ComparisonSet) []string {
	findings := []string{}
	results := set.Results()
	if len(results) < 2 {
		return findings
	}

	least := results[0]
	most := results[0]
	for _, r := range results[1:] {
		if r.FirmIncreasePct.LessThan(least.FirmIncreasePct) {
			least = r
		}
		if r.FirmIncreasePct.GreaterThan(most.FirmIncreasePct) {
			most = r
		}
	}
	findings = append(findings, fmt.Sprintf("Lowest firm exposure: %s at %s%% by %d",
		least.Name, signed(least.FirmIncreasePct, 1), least.FinalYear))
	findings = append(findings, fmt.Sprintf("Highest firm exposure: %s at %s%% by %d",
		most.Name, signed(most.FirmIncreasePct, 1), most.FinalYear))

	bestFlex := results[0]
	for _, r := range results[1:] {
		if r.FlexSavings.GreaterThan(bestFlex.FlexSavings) {
			bestFlex = r
		}
	}
	if bestFlex.FlexSavings.GreaterThan(decimal.Zero) {
		findings = append(findings, fmt.Sprintf("Flexibility helps most at %s, saving $%s/mo vs firm",
			bestFlex.Name, bestFlex.FlexSavings.StringFixed(2)))
	}

	return findings
}

// AssumptionNotes renders the shared assumptions behind a comparison.
func AssumptionNotes(a *domain.GlobalAssumptions) []string {
	notes := []string{
		fmt.Sprintf("Projection horizon: %d years from %d", a.Horizon(), a.BaseYear),
		fmt.Sprintf("General inflation: %s%% annually", a.GeneralInflation.Mul(hundred).StringFixed(1)),
		fmt.Sprintf("Baseline escalation: %s%% annually", a.Escalation.BaselineGrowthRate().Mul(hundred).StringFixed(1)),
		"Construction lead time: 2 years; first online year phases in at half strength",
		"Large-load tariff revenue credited against infrastructure costs",
	}
	if a.UseSupplyCurve {
		notes = append(notes, "Capacity prices follow the VRR curve as reserve margins tighten")
	}
	return notes
}
