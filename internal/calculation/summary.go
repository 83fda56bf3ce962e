package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// SummarizeTrajectories reduces a trajectory set to the headline numbers:
// final bills, differences against baseline, savings against the firm
// scenario, cumulative costs, peak impact years, and the tariff revenue
// adequacy ratio when a tariff is selected.
func (te *TrajectoryEngine) SummarizeTrajectories(set *domain.TrajectorySet, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff) *domain.SummaryStats {
	stats := &domain.SummaryStats{
		CurrentMonthlyBill:   utility.AvgMonthlyBill,
		FinalYearBills:       make(map[domain.ScenarioID]decimal.Decimal),
		FinalYearDifference:  make(map[domain.ScenarioID]decimal.Decimal),
		PercentIncrease:      make(map[domain.ScenarioID]decimal.Decimal),
		SavingsVsUnoptimized: make(map[domain.ScenarioID]decimal.Decimal),
		CumulativeCosts:      make(map[domain.ScenarioID]decimal.Decimal),
		CumulativeDelta:      make(map[domain.ScenarioID]decimal.Decimal),
		PeakImpactYear:       make(map[domain.ScenarioID]int),
		PeakImpactValue:      make(map[domain.ScenarioID]decimal.Decimal),
	}

	baseline, ok := set.Get(domain.ScenarioBaseline)
	if !ok {
		return stats
	}
	baselineFinal := baseline.FinalBill()
	baselineCumulative := baseline.CumulativeCost()

	for _, id := range domain.ScenarioOrder {
		trajectory, ok := set.Get(id)
		if !ok || len(trajectory.Points) == 0 {
			continue
		}

		final := trajectory.FinalBill()
		stats.FinalYearBills[id] = final
		stats.CumulativeCosts[id] = trajectory.CumulativeCost()

		first := trajectory.Points[0].MonthlyBill
		if first.GreaterThan(decimalZero) {
			stats.PercentIncrease[id] = final.Sub(first).Div(first).Mul(decimalHundred)
		}

		if id == domain.ScenarioBaseline {
			continue
		}
		stats.FinalYearDifference[id] = final.Sub(baselineFinal)
		stats.CumulativeDelta[id] = trajectory.CumulativeCost().Sub(baselineCumulative)
		year, value := trajectory.PeakImpact()
		stats.PeakImpactYear[id] = year
		stats.PeakImpactValue[id] = value
	}

	if unoptimized, ok := set.Get(domain.ScenarioUnoptimized); ok {
		firmFinal := unoptimized.FinalBill()
		for _, id := range []domain.ScenarioID{domain.ScenarioFlexible, domain.ScenarioDispatchable} {
			if trajectory, ok := set.Get(id); ok {
				stats.SavingsVsUnoptimized[id] = firmFinal.Sub(trajectory.FinalBill())
			}
		}
	}

	if tariff != nil && dc != nil {
		stats.RevenueAdequacyPct = te.revenueAdequacy(utility, dc, tariff)
	}
	return stats
}

// revenueAdequacy compares the annual tariff revenue from firm operation
// against the gross incremental infrastructure cost. Nil when the
// incremental cost is zero; at or above 100% the tariff fully recovers the
// buildout the load causes.
func (te *TrajectoryEngine) revenueAdequacy(utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff) *decimal.Decimal {
	rates := reference.RatesFromTariff(tariff, utility.MarginalEnergyCost)
	revenue := te.DataCenterRevenue(rates, dc.CapacityMW, dc.FirmLoadFactor, dc.FirmPeakCoincidence)
	impact := te.NetResidentialImpact(ImpactInput{
		Utility:         utility,
		Rates:           rates,
		CapacityMW:      dc.CapacityMW,
		LoadFactor:      dc.FirmLoadFactor,
		PeakCoincidence: dc.FirmPeakCoincidence,
		Allocation:      utility.BaseResidentialAlloc,
		CapacityPrice:   utility.CapacityPriceOrZero(),
	})
	if !impact.GrossCost.GreaterThan(decimalZero) {
		return nil
	}
	pct := revenue.PerYear.Div(impact.GrossCost).Mul(decimalHundred)
	return &pct
}
