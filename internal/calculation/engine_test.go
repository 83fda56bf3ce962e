package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// TestLogger captures log lines for assertions.
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+fmt.Sprintf(format, args...))
}

func defaultInputs() (domain.Utility, domain.DataCenter, domain.GlobalAssumptions) {
	return reference.DefaultUtility(), reference.DefaultDataCenter(), reference.DefaultAssumptions()
}

func TestProjectBaseline(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, _, assumptions := defaultInputs()

	baseline := engine.ProjectBaseline(&utility, &assumptions)

	require.Len(t, baseline.Points, assumptions.ProjectionYears+1, "horizon N means N+1 points")
	assert.True(t, baseline.Points[0].MonthlyBill.Equal(decimal.NewFromInt(130)), "year zero is the present bill")
	assert.Equal(t, reference.BaseYear, baseline.Points[0].Year)

	// Both toggles on: 2.5% + 2.0% compounding.
	wantYear1 := decimal.NewFromInt(130).Mul(decimal.NewFromFloat(1.045))
	assert.True(t, baseline.Points[1].MonthlyBill.Equal(wantYear1), "got %s", baseline.Points[1].MonthlyBill)

	for i := 1; i < len(baseline.Points); i++ {
		assert.True(t, baseline.Points[i].MonthlyBill.GreaterThan(baseline.Points[i-1].MonthlyBill),
			"bills must increase year over year when escalation is on")
		assert.True(t, baseline.Points[i].DCImpact.IsZero())
	}
}

func TestProjectBaselineFlatWithTogglesOff(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, _, assumptions := defaultInputs()
	assumptions.Escalation.InflationEnabled = false
	assumptions.Escalation.AgingEnabled = false

	baseline := engine.ProjectBaseline(&utility, &assumptions)
	for _, point := range baseline.Points {
		assert.True(t, point.MonthlyBill.Equal(decimal.NewFromInt(130)),
			"year %d should stay flat, got %s", point.Year, point.MonthlyBill)
	}
}

func TestProjectScenarioLeadTimeAndPhaseIn(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	ctx := context.Background()

	baseline := engine.ProjectBaseline(&utility, &assumptions)
	firm, err := engine.ProjectScenario(ctx, domain.ScenarioUnoptimized, &utility, &dc, nil, &assumptions)
	require.NoError(t, err)
	require.Len(t, firm.Points, assumptions.ProjectionYears+1)

	// Two construction years track the baseline exactly.
	for year := 0; year < 2; year++ {
		assert.True(t, firm.Points[year].MonthlyBill.Equal(baseline.Points[year].MonthlyBill))
		assert.True(t, firm.Points[year].DCImpact.IsZero())
	}

	// Year two phases in at half strength: base allocation, no escalation.
	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      dc.CapacityMW,
		LoadFactor:      dc.FirmLoadFactor,
		PeakCoincidence: dc.FirmPeakCoincidence,
		Allocation:      utility.BaseResidentialAlloc,
	})
	wantYearTwo := impact.PerCustomerMonthly.Mul(decimal.NewFromFloat(0.5))
	assert.True(t, firm.Points[2].DCImpact.Equal(wantYearTwo),
		"want %s got %s", wantYearTwo, firm.Points[2].DCImpact)

	// From year three on the full impact lands and keeps growing.
	assert.True(t, firm.Points[3].DCImpact.GreaterThan(firm.Points[2].DCImpact))
}

func TestScenarioOrderingProperty(t *testing.T) {
	engine := NewTrajectoryEngine()
	ctx := context.Background()

	type orderingCase struct {
		name    string
		utility domain.Utility
		dc      domain.DataCenter
	}

	defUtility, defDC, _ := defaultInputs()
	cases := []orderingCase{{"regulated default", defUtility, defDC}}
	for _, id := range []string{"aep-ohio", "ercot-texas"} {
		profile, ok := reference.ProfileByID(id)
		require.True(t, ok, id)
		cases = append(cases, orderingCase{
			name:    id,
			utility: reference.UtilityFromProfile(&profile),
			dc:      reference.DataCenterForProfile(&profile, domain.ForecastModerate),
		})
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assumptions := reference.DefaultAssumptions()
			set, err := engine.ProjectAll(ctx, &tc.utility, &tc.dc, nil, &assumptions)
			require.NoError(t, err)

			firm, _ := set.Get(domain.ScenarioUnoptimized)
			flexible, _ := set.Get(domain.ScenarioFlexible)
			dispatchable, _ := set.Get(domain.ScenarioDispatchable)
			require.Len(t, firm.Points, assumptions.ProjectionYears+1)

			for y := range firm.Points {
				assert.True(t, dispatchable.Points[y].MonthlyBill.LessThanOrEqual(flexible.Points[y].MonthlyBill),
					"year %d: dispatchable %s > flexible %s", y,
					dispatchable.Points[y].MonthlyBill, flexible.Points[y].MonthlyBill)
				assert.True(t, flexible.Points[y].MonthlyBill.LessThanOrEqual(firm.Points[y].MonthlyBill),
					"year %d: flexible %s > firm %s", y,
					flexible.Points[y].MonthlyBill, firm.Points[y].MonthlyBill)
			}
		})
	}
}

func TestProjectAllScenarios(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()

	set, err := engine.ProjectAll(context.Background(), &utility, &dc, nil, &assumptions)
	require.NoError(t, err)

	require.Len(t, set.Trajectories, 4)
	assert.Equal(t, assumptions.ProjectionYears, set.Horizon)
	assert.Equal(t, reference.BaseYear, set.BaseYear)
	for _, id := range domain.ScenarioOrder {
		trajectory, ok := set.Get(id)
		require.True(t, ok, "missing %s", id)
		assert.Len(t, trajectory.Points, assumptions.ProjectionYears+1)
		assert.Equal(t, id, trajectory.Scenario)
	}
}

func TestProjectScenarioUnknownID(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()

	_, err := engine.ProjectScenario(context.Background(), domain.ScenarioID("bogus"), &utility, &dc, nil, &assumptions)
	assert.Error(t, err)
}

func TestProjectScenarioCancelled(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.ProjectScenario(ctx, domain.ScenarioUnoptimized, &utility, &dc, nil, &assumptions)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDebugLogging(t *testing.T) {
	logger := &TestLogger{}
	engine := NewTrajectoryEngine()
	engine.Logger = logger
	engine.Debug = true
	utility, dc, assumptions := defaultInputs()

	_, err := engine.ProjectScenario(context.Background(), domain.ScenarioFlexible, &utility, &dc, nil, &assumptions)
	require.NoError(t, err)
	assert.NotEmpty(t, logger.messages, "debug mode should emit per-year lines")
}

func TestSupplyCurvePriceResolution(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, _, assumptions := defaultInputs()
	utility.Market = reference.PJMMarket()
	utility.SystemPeakMW = decimal.NewFromInt(12000)
	utility.GenerationCapacityMW = decimal.NewFromInt(13800)

	// 1000 MW added leaves (13800-12000-1000)/13800 = 5.8% margin: the
	// scarcity segment prices at 320 * 1.50.
	price := engine.capacityPriceForYear(&utility, decimal.NewFromInt(1000), &assumptions)
	assert.True(t, price.Equal(decimal.NewFromInt(480)), "got %s", price)

	// Curve disabled falls back to the static market price.
	assumptions.UseSupplyCurve = false
	price = engine.capacityPriceForYear(&utility, decimal.NewFromInt(1000), &assumptions)
	assert.True(t, price.Equal(decimal.NewFromFloat(269.92)), "got %s", price)

	// No generation data also falls back.
	assumptions.UseSupplyCurve = true
	utility.GenerationCapacityMW = decimal.Zero
	price = engine.capacityPriceForYear(&utility, decimal.NewFromInt(1000), &assumptions)
	assert.True(t, price.Equal(decimal.NewFromFloat(269.92)), "got %s", price)
}

func TestSummarizeTrajectories(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	ctx := context.Background()

	set, err := engine.ProjectAll(ctx, &utility, &dc, nil, &assumptions)
	require.NoError(t, err)

	stats := engine.SummarizeTrajectories(set, &utility, &dc, nil)

	assert.True(t, stats.CurrentMonthlyBill.Equal(decimal.NewFromInt(130)))
	require.Len(t, stats.FinalYearBills, 4)

	firm, _ := set.Get(domain.ScenarioUnoptimized)
	flexible, _ := set.Get(domain.ScenarioFlexible)
	baseline, _ := set.Get(domain.ScenarioBaseline)

	wantSavings := firm.FinalBill().Sub(flexible.FinalBill())
	assert.True(t, stats.SavingsVsUnoptimized[domain.ScenarioFlexible].Equal(wantSavings))

	wantDiff := firm.FinalBill().Sub(baseline.FinalBill())
	assert.True(t, stats.FinalYearDifference[domain.ScenarioUnoptimized].Equal(wantDiff))

	_, hasBaselineDiff := stats.FinalYearDifference[domain.ScenarioBaseline]
	assert.False(t, hasBaselineDiff, "baseline has no difference against itself")

	// (1.045^10 - 1) * 100
	assert.InDelta(t, 55.297, stats.PercentIncrease[domain.ScenarioBaseline].InexactFloat64(), 0.01)

	assert.Nil(t, stats.RevenueAdequacyPct, "no tariff selected")
}

func TestRevenueAdequacy(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	ctx := context.Background()

	tariff := &domain.Tariff{
		PeakDemandCharge:    decimal.NewFromFloat(9.50),
		OffPeakDemandCharge: decimal.NewFromFloat(4.00),
		EnergyRatePeak:      decimal.NewFromFloat(0.052),
	}

	set, err := engine.ProjectAll(ctx, &utility, &dc, tariff, &assumptions)
	require.NoError(t, err)

	stats := engine.SummarizeTrajectories(set, &utility, &dc, tariff)
	require.NotNil(t, stats.RevenueAdequacyPct)
	assert.True(t, stats.RevenueAdequacyPct.GreaterThan(decimalZero))

	// A zero-capacity campus has no incremental cost: the ratio must stay
	// nil rather than divide by zero.
	dc.CapacityMW = decimal.Zero
	dc.OnsiteGenerationMW = decimal.Zero
	set, err = engine.ProjectAll(ctx, &utility, &dc, tariff, &assumptions)
	require.NoError(t, err)
	stats = engine.SummarizeTrajectories(set, &utility, &dc, tariff)
	assert.Nil(t, stats.RevenueAdequacyPct)
}
