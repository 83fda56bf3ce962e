package reference

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/domain"
)

func TestProfileLookup(t *testing.T) {
	p, ok := ProfileByID("dominion-virginia")
	require.True(t, ok, "dominion-virginia should exist")
	assert.Equal(t, "Dominion Energy Virginia", p.Name)
	assert.Equal(t, int64(2500000), p.ResidentialCustomers)
	assert.True(t, p.Market.HasCapacityMarket, "Dominion is in PJM")
	assert.True(t, p.Market.UtilityOwnsGeneration, "Dominion owns generation")
	assert.True(t, p.Market.BaseResidentialAlloc.Equal(decimal.NewFromFloat(0.35)))

	_, ok = ProfileByID("no-such-utility")
	assert.False(t, ok, "unknown ids must report not found, not error")
}

func TestProfileCatalogShape(t *testing.T) {
	all := Profiles()
	require.Len(t, all, 14)

	seen := make(map[string]bool)
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate profile id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, p.SystemPeakMW.GreaterThan(decimal.Zero), "%s peak must be positive", p.ID)
		assert.True(t, p.AvgMonthlyBill.GreaterThan(decimal.Zero), "%s bill must be positive", p.ID)
		alloc := p.Market.BaseResidentialAlloc
		assert.True(t, alloc.GreaterThan(decimal.Zero) && alloc.LessThan(decimal.NewFromInt(1)),
			"%s allocation must stay in (0,1)", p.ID)
	}
}

func TestMarketPresets(t *testing.T) {
	pjm := PJMMarket()
	require.NotNil(t, pjm.CapacityPrice)
	assert.True(t, pjm.CapacityPrice.Equal(decimal.NewFromFloat(269.92)))
	assert.True(t, pjm.HasCapacityMarket)

	ercot := ERCOTMarket()
	assert.False(t, ercot.HasCapacityMarket)
	assert.Nil(t, ercot.CapacityPrice)

	miso := MISOMarket()
	require.NotNil(t, miso.CapacityPrice)
	assert.True(t, miso.CapacityPrice.Equal(decimal.NewFromFloat(30.00)))

	assert.Equal(t, domain.MarketRegulated, MarketByType(domain.MarketType("bogus")).Type,
		"unknown market types fall back to regulated")
}

func TestMarketAdjustedAllocation(t *testing.T) {
	// PJM's 2024 price is ~9x the historical level, so the adjustment
	// saturates at the 0.10 cap times the pass-through.
	pjm, ok := ProfileByID("aep-ohio")
	require.True(t, ok)
	got := MarketAdjustedAllocation(&pjm)
	want := decimal.NewFromFloat(0.35).Add(decimal.NewFromFloat(0.10).Mul(decimal.NewFromFloat(0.50)))
	assert.True(t, got.Equal(want), "want %s got %s", want, got)

	// ERCOT shaves allocation by 15% for 4CP exposure.
	ercot, ok := ProfileByID("ercot-texas")
	require.True(t, ok)
	got = MarketAdjustedAllocation(&ercot)
	want = decimal.NewFromFloat(0.30).Mul(decimal.NewFromFloat(0.85))
	assert.True(t, got.Equal(want), "want %s got %s", want, got)

	// MISO's $30 price is exactly the historical anchor: no adjustment.
	miso := domain.UtilityProfile{Market: MISOMarket()}
	got = MarketAdjustedAllocation(&miso)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.38)), "got %s", got)

	assert.True(t, MarketAdjustedAllocation(nil).Equal(decimal.NewFromFloat(0.40)))
}

func TestVRRMonotonicity(t *testing.T) {
	curve := VRRCurve()

	margins := []float64{0.40, 0.30, 0.25, 0.22, 0.20, 0.16, 0.15, 0.13, 0.12, 0.10, 0.08, 0.06, 0.05, 0.02, 0.0, -0.05, -0.50}
	prev := decimal.Zero
	for i, m := range margins {
		mult := curve.MultiplierFor(decimal.NewFromFloat(m))
		if i > 0 {
			assert.True(t, mult.GreaterThanOrEqual(prev),
				"multiplier must not decrease as margin falls: margin=%v mult=%s prev=%s", m, mult, prev)
		}
		prev = mult
	}
}

func TestVRRClampAndCalibration(t *testing.T) {
	curve := VRRCurve()

	// Negative margins clamp to the emergency segment.
	assert.True(t, curve.MultiplierFor(decimal.NewFromFloat(-0.2)).Equal(decimal.NewFromInt(2)))
	assert.True(t, curve.MultiplierFor(decimal.NewFromFloat(-0.001)).Equal(decimal.NewFromInt(2)))

	// The 12-15% band reproduces the 2024 PJM clearing level.
	price := curve.PriceFor(decimal.NewFromFloat(0.13))
	assert.True(t, price.Equal(decimal.NewFromInt(272)), "320 x 0.85 = 272, got %s", price)

	// Healthy surplus clears cheap.
	assert.True(t, curve.PriceFor(decimal.NewFromFloat(0.30)).Equal(decimal.NewFromInt(96)))
}

func TestUtilityFromProfile(t *testing.T) {
	p, ok := ProfileByID("georgia-power")
	require.True(t, ok)
	u := UtilityFromProfile(&p)

	assert.Equal(t, "georgia-power", u.ProfileID)
	assert.Equal(t, int64(2400000), u.ResidentialCustomers)
	assert.True(t, u.AvgMonthlyBill.Equal(decimal.NewFromInt(153)))
	assert.True(t, u.SystemPeakMW.Equal(decimal.NewFromInt(17100)))
	assert.True(t, u.GenerationCapacityMW.Equal(decimal.NewFromInt(17100).Mul(decimal.NewFromFloat(1.15))))
	// Fields profiles do not report keep model defaults.
	assert.Equal(t, int64(85000), u.CommercialCustomers)
	assert.True(t, u.PreDCSystemEnergyGWh.Equal(decimal.NewFromInt(20000)))

	def := UtilityFromProfile(nil)
	assert.Equal(t, int64(560000), def.ResidentialCustomers)
}

func TestDataCenterForProfile(t *testing.T) {
	p, ok := ProfileByID("ercot-texas")
	require.True(t, ok)

	dc := DataCenterForProfile(&p, domain.ForecastModerate)
	assert.True(t, dc.CapacityMW.Equal(decimal.NewFromInt(3000)))
	assert.True(t, dc.OnsiteGenerationMW.Equal(decimal.NewFromInt(600)), "onsite sizes at 20%% of capacity")

	dc = DataCenterForProfile(&p, domain.ForecastAccelerated)
	assert.True(t, dc.CapacityMW.Equal(decimal.NewFromInt(4500)))

	dc = DataCenterForProfile(&p, domain.ForecastConstrained)
	assert.True(t, dc.CapacityMW.Equal(decimal.NewFromInt(1800)))

	dc = DataCenterForProfile(nil, domain.ForecastModerate)
	assert.True(t, dc.CapacityMW.Equal(decimal.NewFromInt(1000)))
}

func TestAggregateFlexibility(t *testing.T) {
	shares := decimal.Zero
	for _, w := range WorkloadClasses() {
		shares = shares.Add(w.Share)
	}
	assert.True(t, shares.Equal(decimal.NewFromInt(1)), "workload shares must sum to 1, got %s", shares)

	flex := AggregateFlexibility()
	// 0.35*0.70 + 0.25*0.60 + 0.20*0.15 + 0.10*0.50 + 0.10*0.05 = 0.48
	assert.True(t, flex.Equal(decimal.NewFromFloat(0.48)), "got %s", flex)
}

func TestRatesFromTariff(t *testing.T) {
	generic := RatesFromTariff(nil, decimal.Zero)
	assert.True(t, generic.CPChargePerMWMonth.Equal(decimal.NewFromInt(5430)))
	assert.True(t, generic.EnergyMarginPerMWh.Equal(decimal.NewFromFloat(4.88)))

	tariff := &domain.Tariff{
		PeakDemandCharge:    decimal.NewFromFloat(12.50),
		OffPeakDemandCharge: decimal.NewFromFloat(4.00),
		EnergyRatePeak:      decimal.NewFromFloat(0.052),
	}
	rates := RatesFromTariff(tariff, decimal.NewFromFloat(0.045))
	assert.True(t, rates.CPChargePerMWMonth.Equal(decimal.NewFromInt(12500)))
	assert.True(t, rates.NCPChargePerMWMonth.Equal(decimal.NewFromInt(4000)))
	assert.True(t, rates.EnergyMarginPerMWh.Equal(decimal.NewFromInt(7)), "got %s", rates.EnergyMarginPerMWh)

	// Energy rate below marginal cost floors the margin at zero.
	cheap := &domain.Tariff{EnergyRatePeak: decimal.NewFromFloat(0.02)}
	rates = RatesFromTariff(cheap, decimal.NewFromFloat(0.045))
	assert.True(t, rates.EnergyMarginPerMWh.IsZero())
}
