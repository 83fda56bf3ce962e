package reference

import (
	"github.com/shopspring/decimal"
)

// SupplyCurvePoint is one segment of the capacity-market supply curve: a
// reserve-margin threshold and the price multiplier applied to CONE for
// margins at or above it (and below the previous segment's threshold).
type SupplyCurvePoint struct {
	MarginAtLeast decimal.Decimal `json:"marginAtLeast"`
	Multiplier    decimal.Decimal `json:"multiplier"`
}

// SupplyCurve maps reserve margin to a capacity-price multiplier against
// a cost-of-new-entry anchor. Segments are ordered by descending margin
// with ascending multipliers; the emergency multiplier covers everything
// below the last threshold, negative margins included.
type SupplyCurve struct {
	ConePerMWDay        decimal.Decimal    `json:"conePerMWDay"`
	Points              []SupplyCurvePoint `json:"points"`
	EmergencyMultiplier decimal.Decimal    `json:"emergencyMultiplier"`
}

// VRRCurve returns the standard variable-resource-requirement curve.
// Anchored at CONE $320/MW-day; the 0.85 multiplier in the 12-15% band
// reproduces the 2024 PJM clearing level of ~$270/MW-day.
func VRRCurve() SupplyCurve {
	return SupplyCurve{
		ConePerMWDay: decimal.NewFromInt(320),
		Points: []SupplyCurvePoint{
			{MarginAtLeast: decimal.NewFromFloat(0.25), Multiplier: decimal.NewFromFloat(0.30)},
			{MarginAtLeast: decimal.NewFromFloat(0.20), Multiplier: decimal.NewFromFloat(0.50)},
			{MarginAtLeast: decimal.NewFromFloat(0.15), Multiplier: decimal.NewFromFloat(0.70)},
			{MarginAtLeast: decimal.NewFromFloat(0.12), Multiplier: decimal.NewFromFloat(0.85)},
			{MarginAtLeast: decimal.NewFromFloat(0.08), Multiplier: decimal.NewFromFloat(1.20)},
			{MarginAtLeast: decimal.NewFromFloat(0.05), Multiplier: decimal.NewFromFloat(1.50)},
			{MarginAtLeast: decimal.Zero, Multiplier: decimal.NewFromFloat(1.75)},
		},
		EmergencyMultiplier: decimal.NewFromInt(2),
	}
}

// MultiplierFor scans the ordered segments and returns the multiplier for
// the first segment whose threshold the margin meets. Margins below every
// threshold, including negative margins, clamp to the emergency segment.
func (sc SupplyCurve) MultiplierFor(reserveMargin decimal.Decimal) decimal.Decimal {
	for _, p := range sc.Points {
		if reserveMargin.GreaterThanOrEqual(p.MarginAtLeast) {
			return p.Multiplier
		}
	}
	return sc.EmergencyMultiplier
}

// PriceFor returns the clearing price in $/MW-day for a reserve margin.
func (sc SupplyCurve) PriceFor(reserveMargin decimal.Decimal) decimal.Decimal {
	return sc.ConePerMWDay.Mul(sc.MultiplierFor(reserveMargin))
}
