package tariff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/domain"
)

// Hand-checked against the reference load: demand 10*600000 + 4*300000 =
// $7.2M, energy 0.05*140.16M + 0.03*210.24M = $13.3152M, fuel 0.01*350.4M
// = $3.504M. Total $24.0192M over 350.4M kWh.
func TestBlendedRateWorkedExample(t *testing.T) {
	entry := domain.Tariff{
		PeakDemandCharge:    decimal.NewFromInt(10),
		OffPeakDemandCharge: decimal.NewFromInt(4),
		EnergyRatePeak:      decimal.NewFromFloat(0.05),
		EnergyRateOffPeak:   decimal.NewFromFloat(0.03),
		FuelAdjPerKWh:       decimal.NewFromFloat(0.01),
	}

	blended := BlendedRate(&entry)
	assert.InDelta(t, 0.0685479452, blended.InexactFloat64(), 1e-9)

	annual := AnnualCostM(blended)
	assert.True(t, annual.Equal(decimal.RequireFromString("288.23")), "got %s", annual)
}

func TestBlendedRateDemandOnly(t *testing.T) {
	entry := domain.Tariff{PeakDemandCharge: decimal.NewFromInt(10)}
	assert.InDelta(t, 0.0171232877, BlendedRate(&entry).InexactFloat64(), 1e-9)
}

func TestEnrichDerivedFlags(t *testing.T) {
	entry := domain.Tariff{
		PeakDemandCharge:  decimal.NewFromInt(10),
		EnergyRatePeak:    decimal.NewFromFloat(0.05),
		EnergyRateOffPeak: decimal.NewFromFloat(0.03),
		FuelAdjPerKWh:     decimal.NewFromFloat(0.004),
	}
	Enrich(&entry)
	assert.True(t, entry.Protections.FuelAdjustment)
	assert.True(t, entry.Protections.TOUDifferential)
	assert.True(t, entry.BlendedRatePerKWh.IsPositive())
	assert.True(t, entry.AnnualCostM.IsPositive())

	flat := domain.Tariff{
		EnergyRatePeak:    decimal.NewFromFloat(0.04),
		EnergyRateOffPeak: decimal.NewFromFloat(0.04),
	}
	Enrich(&flat)
	assert.False(t, flat.Protections.FuelAdjustment)
	assert.False(t, flat.Protections.TOUDifferential)
}

func TestCatalogBlendedGeorgia(t *testing.T) {
	entry, ok := ByID("georgia-power-ga")
	require.True(t, ok)

	// $9.975M demand + $15.27744M energy + $3.1536M fuel, $28.40604M monthly.
	assert.InDelta(t, 0.0810686130, entry.BlendedRatePerKWh.InexactFloat64(), 1e-9)
	assert.True(t, entry.AnnualCostM.Equal(decimal.RequireFromString("340.87")), "got %s", entry.AnnualCostM)
}
