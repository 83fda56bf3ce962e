package tariff

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Reference load for comparing tariffs: a 600 MW data center at 80% load
// factor, 350.4 GWh a month split 40% peak / 60% off-peak, billed on full
// demand at peak and half demand off-peak.
var (
	referenceMonthlyKWh = decimal.NewFromInt(350400000)
	referencePeakKWh    = decimal.NewFromInt(140160000)
	referenceOffPeakKWh = decimal.NewFromInt(210240000)
	referenceAnnualKWh  = decimal.NewFromInt(4204800000)
	referenceDemandKW   = decimal.NewFromInt(600000)
	offPeakBillingShare = decimal.NewFromFloat(0.5)
	perMillion          = decimal.NewFromInt(1000000)
)

// BlendedRate is the all-in $/kWh the reference data center would pay on
// this tariff, demand charges included.
func BlendedRate(t *domain.Tariff) decimal.Decimal {
	demand := t.PeakDemandCharge.Mul(referenceDemandKW).
		Add(t.OffPeakDemandCharge.Mul(referenceDemandKW).Mul(offPeakBillingShare))
	energy := t.EnergyRatePeak.Mul(referencePeakKWh).
		Add(t.EnergyRateOffPeak.Mul(referenceOffPeakKWh))
	fuel := t.FuelAdjPerKWh.Mul(referenceMonthlyKWh)
	return demand.Add(energy).Add(fuel).Div(referenceMonthlyKWh)
}

// AnnualCostM converts a blended rate into the reference load's annual
// cost in millions of dollars.
func AnnualCostM(blended decimal.Decimal) decimal.Decimal {
	return blended.Mul(referenceAnnualKWh).Div(perMillion).Round(2)
}

// Enrich computes the derived fields on a tariff in place. The fuel and
// TOU protection flags follow from the rate structure rather than being
// declared per entry.
func Enrich(t *domain.Tariff) {
	t.BlendedRatePerKWh = BlendedRate(t)
	t.AnnualCostM = AnnualCostM(t.BlendedRatePerKWh)
	t.ProtectionScore = ProtectionScore(t)
	t.ProtectionRating = ProtectionRating(t.ProtectionScore)
	t.Protections.FuelAdjustment = t.FuelAdjPerKWh.IsPositive()
	t.Protections.TOUDifferential = t.EnergyRateOffPeak.IsPositive() &&
		!t.EnergyRatePeak.Equal(t.EnergyRateOffPeak)
}
