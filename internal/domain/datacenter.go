package domain

import (
	"github.com/shopspring/decimal"
)

// DataCenter holds the load assumptions for a proposed data center.
// Firm operation runs at full peak coincidence; flexible operation curtails
// during system peaks and may be paired with onsite generation.
type DataCenter struct {
	CapacityMW          decimal.Decimal `yaml:"capacity_mw" json:"capacityMW"`
	FirmLoadFactor      decimal.Decimal `yaml:"firm_load_factor" json:"firmLoadFactor"`
	FirmPeakCoincidence decimal.Decimal `yaml:"firm_peak_coincidence" json:"firmPeakCoincidence"`
	FlexLoadFactor      decimal.Decimal `yaml:"flex_load_factor" json:"flexLoadFactor"`
	FlexPeakCoincidence decimal.Decimal `yaml:"flex_peak_coincidence" json:"flexPeakCoincidence"`
	OnsiteGenerationMW  decimal.Decimal `yaml:"onsite_generation_mw" json:"onsiteGenerationMW"`
}

// CurtailableMW is the capacity sheddable during system peaks under
// flexible operation.
func (dc *DataCenter) CurtailableMW() decimal.Decimal {
	one := decimal.NewFromInt(1)
	curtailable := dc.CapacityMW.Mul(one.Sub(dc.FlexPeakCoincidence))
	if curtailable.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return curtailable
}

// OnsiteShareOfCapacity returns onsite generation as a fraction of
// nameplate capacity, zero when capacity is zero.
func (dc *DataCenter) OnsiteShareOfCapacity() decimal.Decimal {
	if dc.CapacityMW.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return dc.OnsiteGenerationMW.Div(dc.CapacityMW)
}

// ForecastScenario enumerates market-growth outlooks that scale a
// profile's default data-center size.
type ForecastScenario string

const (
	ForecastConstrained ForecastScenario = "constrained"
	ForecastModerate    ForecastScenario = "moderate"
	ForecastAccelerated ForecastScenario = "accelerated"
)

// ValidForecast reports whether f names a known forecast scenario.
func ValidForecast(f ForecastScenario) bool {
	switch f {
	case ForecastConstrained, ForecastModerate, ForecastAccelerated:
		return true
	}
	return false
}
