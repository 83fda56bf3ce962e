package domain

import (
	"github.com/shopspring/decimal"
)

// TrajectoryPoint is one projected year of one scenario.
type TrajectoryPoint struct {
	Year        int             `json:"year"`
	MonthlyBill decimal.Decimal `json:"monthlyBill"`
	DCImpact    decimal.Decimal `json:"dcImpact"`
}

// ScenarioTrajectory is an ordered series of projected monthly bills for
// one scenario. A trajectory over an N-year horizon always holds N+1
// points; point zero is the present.
type ScenarioTrajectory struct {
	Scenario ScenarioID        `json:"scenario"`
	Points   []TrajectoryPoint `json:"points"`
}

// FinalBill returns the last projected monthly bill, zero when empty.
func (st *ScenarioTrajectory) FinalBill() decimal.Decimal {
	if len(st.Points) == 0 {
		return decimal.Zero
	}
	return st.Points[len(st.Points)-1].MonthlyBill
}

// CumulativeCost sums monthly bills across all points times twelve,
// the total a customer pays over the horizon.
func (st *ScenarioTrajectory) CumulativeCost() decimal.Decimal {
	total := decimal.Zero
	for _, p := range st.Points {
		total = total.Add(p.MonthlyBill)
	}
	return total.Mul(decimal.NewFromInt(12))
}

// PeakImpact returns the year and value of the largest DC impact
// component. Zero-impact trajectories report the first year.
func (st *ScenarioTrajectory) PeakImpact() (int, decimal.Decimal) {
	if len(st.Points) == 0 {
		return 0, decimal.Zero
	}
	year := st.Points[0].Year
	peak := st.Points[0].DCImpact
	for _, p := range st.Points[1:] {
		if p.DCImpact.GreaterThan(peak) {
			year = p.Year
			peak = p.DCImpact
		}
	}
	return year, peak
}

// TrajectorySet holds all four scenario trajectories for one projection
// run, keyed by scenario id.
type TrajectorySet struct {
	Trajectories map[ScenarioID]ScenarioTrajectory `json:"trajectories"`
	Horizon      int                               `json:"horizon"`
	BaseYear     int                               `json:"baseYear"`
}

// Get returns the trajectory for id and whether it exists.
func (ts *TrajectorySet) Get(id ScenarioID) (ScenarioTrajectory, bool) {
	t, ok := ts.Trajectories[id]
	return t, ok
}

// ImpactBreakdown records the components behind one year's net
// residential impact, for reporting and debugging.
type ImpactBreakdown struct {
	GrossCost          decimal.Decimal `json:"grossCost"`
	RevenueOffset      decimal.Decimal `json:"revenueOffset"`
	NetImpact          decimal.Decimal `json:"netImpact"`
	AdjustedAllocation decimal.Decimal `json:"adjustedAllocation"`
	CapacityCredit     decimal.Decimal `json:"capacityCredit"`
	CapacityPriceUsed  decimal.Decimal `json:"capacityPriceUsed"`
	PerCustomerMonthly decimal.Decimal `json:"perCustomerMonthly"`
	IsFlexible         bool            `json:"isFlexible"`
}

// AllocationBreakdown records the share components behind the residential
// allocation for one projection year.
type AllocationBreakdown struct {
	Allocation      decimal.Decimal `json:"allocation"`
	VolumetricShare decimal.Decimal `json:"volumetricShare"`
	DemandShare     decimal.Decimal `json:"demandShare"`
	CustomerShare   decimal.Decimal `json:"customerShare"`
}

// SummaryStats are the headline comparison numbers derived from a
// trajectory set.
type SummaryStats struct {
	CurrentMonthlyBill   decimal.Decimal                `json:"currentMonthlyBill"`
	FinalYearBills       map[ScenarioID]decimal.Decimal `json:"finalYearBills"`
	FinalYearDifference  map[ScenarioID]decimal.Decimal `json:"finalYearDifference"`
	PercentIncrease      map[ScenarioID]decimal.Decimal `json:"percentIncrease"`
	SavingsVsUnoptimized map[ScenarioID]decimal.Decimal `json:"savingsVsUnoptimized"`
	CumulativeCosts      map[ScenarioID]decimal.Decimal `json:"cumulativeCosts"`
	CumulativeDelta      map[ScenarioID]decimal.Decimal `json:"cumulativeDelta"`
	PeakImpactYear       map[ScenarioID]int             `json:"peakImpactYear"`
	PeakImpactValue      map[ScenarioID]decimal.Decimal `json:"peakImpactValue"`

	// RevenueAdequacyPct is tariff revenue over incremental infrastructure
	// cost, as a percent; nil when the incremental cost is zero.
	RevenueAdequacyPct *decimal.Decimal `json:"revenueAdequacyPct"`
}
