package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/reference"
)

func TestResidentialAllocationYearZero(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()

	alloc := engine.ResidentialAllocation(&utility, decimal.NewFromInt(1000), decimal.NewFromFloat(0.80), decimal.NewFromInt(1), 0)

	// No phase-in and no regulatory lag in the first online year: the
	// allocation is the utility's base figure.
	assert.True(t, alloc.Allocation.Equal(decimal.NewFromFloat(0.40)), "got %s", alloc.Allocation)
	assert.InDelta(t, 0.35, alloc.VolumetricShare.InexactFloat64(), 1e-9, "pre-DC energy only")
	assert.InDelta(t, 0.45, alloc.DemandShare.InexactFloat64(), 1e-9, "pre-DC peak only")
	assert.InDelta(t, float64(560000)/650001, alloc.CustomerShare.InexactFloat64(), 1e-9)
}

func TestResidentialAllocationMature(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()

	alloc := engine.ResidentialAllocation(&utility, decimal.NewFromInt(1000), decimal.NewFromFloat(0.80), decimal.NewFromInt(1), 10)

	// Fully phased in: volumetric 7,000,000/27,008,000, demand 1800/5000,
	// blended 40/40/20 with the customer share.
	assert.InDelta(t, 0.25918, alloc.VolumetricShare.InexactFloat64(), 1e-4)
	assert.InDelta(t, 0.36, alloc.DemandShare.InexactFloat64(), 1e-9)
	assert.InDelta(t, 0.41998, alloc.Allocation.InexactFloat64(), 1e-4)
}

func TestResidentialAllocationClamped(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()
	// A giant load crushes the volumetric and demand shares.
	alloc := engine.ResidentialAllocation(&utility, decimal.NewFromInt(50000), decimal.NewFromFloat(0.95), decimal.NewFromInt(1), 10)
	assert.True(t, alloc.Allocation.GreaterThanOrEqual(decimal.NewFromFloat(0.15)))
	assert.True(t, alloc.Allocation.LessThanOrEqual(decimal.NewFromFloat(0.50)))
}

func TestDataCenterRevenue(t *testing.T) {
	engine := NewTrajectoryEngine()
	rates := reference.GenericRates()

	revenue := engine.DataCenterRevenue(rates, decimal.NewFromInt(1000), decimal.NewFromFloat(0.80), decimal.NewFromInt(1))

	assert.True(t, revenue.CPDemandRevenue.Equal(decimal.NewFromInt(65160000)), "got %s", revenue.CPDemandRevenue)
	assert.True(t, revenue.NCPDemandRevenue.Equal(decimal.NewFromInt(43440000)), "got %s", revenue.NCPDemandRevenue)
	assert.True(t, revenue.EnergyMargin.Equal(decimal.NewFromInt(34199040)), "got %s", revenue.EnergyMargin)
	assert.True(t, revenue.PerYear.Equal(decimal.NewFromInt(142799040)))
}

func TestNetResidentialImpactFirm(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()

	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      decimal.NewFromInt(1000),
		LoadFactor:      decimal.NewFromFloat(0.80),
		PeakCoincidence: decimal.NewFromInt(1),
		Allocation:      decimal.NewFromFloat(0.40),
	})

	// 25M infra + 84.84M net capacity, less 37.757M revenue offset.
	assert.True(t, impact.GrossCost.Equal(decimal.NewFromInt(109840000)), "got %s", impact.GrossCost)
	assert.True(t, impact.RevenueOffset.Equal(decimal.NewFromInt(37757184)), "got %s", impact.RevenueOffset)
	assert.True(t, impact.NetImpact.Equal(decimal.NewFromInt(72082816)), "got %s", impact.NetImpact)
	assert.False(t, impact.IsFlexible)
	assert.True(t, impact.CapacityCredit.IsZero())
	assert.InDelta(t, 4.29064, impact.PerCustomerMonthly.InexactFloat64(), 1e-4)
}

func TestNetResidentialImpactFlexibleCredits(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()

	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      decimal.NewFromInt(1000),
		LoadFactor:      decimal.NewFromFloat(0.95),
		PeakCoincidence: decimal.NewFromFloat(0.75),
		Allocation:      decimal.NewFromFloat(0.40),
		IncludeCredits:  true,
	})

	assert.True(t, impact.IsFlexible)
	// Curtailable 250 MW at $150k and the 0.80 non-market multiplier.
	assert.True(t, impact.CapacityCredit.Equal(decimal.NewFromInt(30000000)), "got %s", impact.CapacityCredit)
	assert.True(t, impact.NetImpact.Equal(decimal.NewFromInt(9172344)), "got %s", impact.NetImpact)
	assert.InDelta(t, 0.54597, impact.PerCustomerMonthly.InexactFloat64(), 1e-4)
}

func TestNetResidentialImpactDispatchableRelief(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()

	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      decimal.NewFromInt(1000),
		LoadFactor:      decimal.NewFromFloat(0.95),
		PeakCoincidence: decimal.NewFromFloat(0.75),
		Allocation:      decimal.NewFromFloat(0.40),
		IncludeCredits:  true,
		OnsiteMW:        decimal.NewFromInt(200),
	})

	// Onsite generation drops the billed peak to 550 MW and adds a
	// generation credit; the net impact turns into bill relief.
	assert.True(t, impact.NetImpact.Equal(decimal.NewFromInt(-41295656)), "got %s", impact.NetImpact)
	assert.True(t, impact.PerCustomerMonthly.LessThan(decimalZero))
}

func TestNetResidentialImpactCapacityMarketPrice(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()
	utility.Market = reference.PJMMarket()

	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      decimal.NewFromInt(1000),
		LoadFactor:      decimal.NewFromFloat(0.80),
		PeakCoincidence: decimal.NewFromInt(1),
		Allocation:      decimal.NewFromFloat(0.40),
		CapacityPrice:   decimal.NewFromFloat(269.92),
	})

	// Base capacity cost blends the embedded figure with the market price:
	// 150000*0.5 + 269.92*365*0.5*0.5 = 99,630.2 per MW-year.
	wantBase := decimal.NewFromFloat(99630.2)
	wantCapacity := wantBase.Sub(decimal.NewFromInt(65160)).Mul(decimal.NewFromInt(1000))
	wantGross := decimal.NewFromInt(25000000).Add(wantCapacity)
	assert.True(t, impact.GrossCost.Equal(wantGross), "want %s got %s", wantGross, impact.GrossCost)

	// Price above $100/MW-day bumps the residential allocation, capped at
	// 1.15x: 1 + 169.92/1000 = 1.16992 -> 1.15.
	assert.True(t, impact.AdjustedAllocation.Equal(decimal.NewFromFloat(0.40).Mul(decimal.NewFromFloat(1.15))),
		"got %s", impact.AdjustedAllocation)
}

func TestNetResidentialImpactERCOT(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()
	utility.Market = reference.ERCOTMarket()
	utility.BaseResidentialAlloc = decimal.NewFromFloat(0.30)

	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      decimal.NewFromInt(1000),
		LoadFactor:      decimal.NewFromFloat(0.80),
		PeakCoincidence: decimal.NewFromInt(1),
		Allocation:      decimal.NewFromFloat(0.30),
	})

	// 4CP transmission (66M) + interconnection share (5.25M) + distribution
	// (7.5M) + capacity at the halved ERCOT base (9.84M).
	assert.True(t, impact.GrossCost.Equal(decimal.NewFromInt(88590000)), "got %s", impact.GrossCost)
	// Energy margin flows through at 90% in the energy-only market.
	wantOffset := decimal.NewFromInt(34199040).Mul(decimal.NewFromFloat(0.90)).
		Add(decimal.NewFromInt(43440000).Mul(decimal.NewFromFloat(0.20)))
	assert.True(t, impact.RevenueOffset.Equal(wantOffset), "got %s", impact.RevenueOffset)
	// 4CP exposure cuts the residential allocation by 30%.
	assert.True(t, impact.AdjustedAllocation.Equal(decimal.NewFromFloat(0.21)), "got %s", impact.AdjustedAllocation)
}

func TestNetResidentialImpactZeroCustomers(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility := reference.DefaultUtility()
	utility.ResidentialCustomers = 0

	impact := engine.NetResidentialImpact(ImpactInput{
		Utility:         &utility,
		Rates:           reference.GenericRates(),
		CapacityMW:      decimal.NewFromInt(1000),
		LoadFactor:      decimal.NewFromFloat(0.80),
		PeakCoincidence: decimal.NewFromInt(1),
		Allocation:      decimal.NewFromFloat(0.40),
	})

	require.False(t, impact.NetImpact.IsZero(), "system cost is still real")
	assert.True(t, impact.PerCustomerMonthly.IsZero(), "no customers means no per-customer impact")
}
