package domain

import (
	"github.com/shopspring/decimal"
)

// MarketType enumerates the wholesale market structures the model
// distinguishes. Each carries its own cost-allocation behavior.
type MarketType string

const (
	MarketRegulated MarketType = "regulated"
	MarketPJM       MarketType = "pjm"
	MarketERCOT     MarketType = "ercot"
	MarketMISO      MarketType = "miso"
	MarketSPP       MarketType = "spp"
)

// ValidMarketType reports whether t names a known market structure.
func ValidMarketType(t MarketType) bool {
	switch t {
	case MarketRegulated, MarketPJM, MarketERCOT, MarketMISO, MarketSPP:
		return true
	}
	return false
}

// MarketStructure captures how a market allocates infrastructure and
// capacity costs to residential ratepayers.
type MarketStructure struct {
	Type                    MarketType       `yaml:"type" json:"type"`
	HasCapacityMarket       bool             `yaml:"has_capacity_market" json:"hasCapacityMarket"`
	BaseResidentialAlloc    decimal.Decimal  `yaml:"base_residential_allocation" json:"baseResidentialAllocation"`
	CapacityCostPassThrough decimal.Decimal  `yaml:"capacity_cost_pass_through" json:"capacityCostPassThrough"`
	TransmissionAllocation  decimal.Decimal  `yaml:"transmission_allocation" json:"transmissionAllocation"`
	UtilityOwnsGeneration   bool             `yaml:"utility_owns_generation" json:"utilityOwnsGeneration"`
	CapacityPrice           *decimal.Decimal `yaml:"capacity_price,omitempty" json:"capacityPrice,omitempty"` // $/MW-day
	Notes                   string           `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// UtilityProfile is an immutable reference record supplying defaults for a
// Utility. Looked up by identifier; never mutated.
type UtilityProfile struct {
	ID                   string          `yaml:"id" json:"id"`
	Name                 string          `yaml:"name" json:"name"`
	ShortName            string          `yaml:"short_name" json:"shortName"`
	State                string          `yaml:"state" json:"state"`
	Region               string          `yaml:"region" json:"region"`
	ResidentialCustomers int64           `yaml:"residential_customers" json:"residentialCustomers"`
	TotalCustomers       int64           `yaml:"total_customers" json:"totalCustomers"`
	SystemPeakMW         decimal.Decimal `yaml:"system_peak_mw" json:"systemPeakMW"`
	AvgMonthlyBill       decimal.Decimal `yaml:"avg_monthly_bill" json:"avgMonthlyBill"`
	AvgMonthlyUsageKWh   decimal.Decimal `yaml:"avg_monthly_usage_kwh" json:"avgMonthlyUsageKWh"`
	Market               MarketStructure `yaml:"market" json:"market"`
	HasDCActivity        bool            `yaml:"has_dc_activity" json:"hasDCActivity"`
	DCNotes              string          `yaml:"dc_notes,omitempty" json:"dcNotes,omitempty"`
	DefaultDataCenterMW  decimal.Decimal `yaml:"default_dc_mw" json:"defaultDataCenterMW"`
}

// Utility is the mutable per-session configuration the engine projects
// against. A fresh one is built from a profile (or the model defaults) and
// then edited field by field.
type Utility struct {
	ProfileID            string          `yaml:"profile_id,omitempty" json:"profileId,omitempty"`
	Name                 string          `yaml:"name,omitempty" json:"name,omitempty"`
	State                string          `yaml:"state,omitempty" json:"state,omitempty"`
	ResidentialCustomers int64           `yaml:"residential_customers" json:"residentialCustomers"`
	CommercialCustomers  int64           `yaml:"commercial_customers" json:"commercialCustomers"`
	IndustrialCustomers  int64           `yaml:"industrial_customers" json:"industrialCustomers"`
	AvgMonthlyBill       decimal.Decimal `yaml:"avg_monthly_bill" json:"avgMonthlyBill"`
	PreDCSystemEnergyGWh decimal.Decimal `yaml:"pre_dc_system_energy_gwh" json:"preDCSystemEnergyGWh"`
	ResidentialEnergy    decimal.Decimal `yaml:"residential_energy_share" json:"residentialEnergyShare"`
	SystemPeakMW         decimal.Decimal `yaml:"system_peak_mw" json:"systemPeakMW"`
	GenerationCapacityMW decimal.Decimal `yaml:"generation_capacity_mw" json:"generationCapacityMW"`
	BaseResidentialAlloc decimal.Decimal `yaml:"base_residential_allocation" json:"baseResidentialAllocation"`
	MarginalEnergyCost   decimal.Decimal `yaml:"marginal_energy_cost_per_kwh" json:"marginalEnergyCostPerKWh"`
	Market               MarketStructure `yaml:"market" json:"market"`
}

// TotalCustomerCount sums all customer classes. The +1 keeps downstream
// share math defined for a utility with no customers at all.
func (u *Utility) TotalCustomerCount() int64 {
	return u.ResidentialCustomers + u.CommercialCustomers + u.IndustrialCustomers + 1
}

// ReserveMargin returns (generation - peak) / generation, the fraction of
// generation capacity held in reserve. Zero generation yields zero margin.
func (u *Utility) ReserveMargin() decimal.Decimal {
	if u.GenerationCapacityMW.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return u.GenerationCapacityMW.Sub(u.SystemPeakMW).Div(u.GenerationCapacityMW)
}

// ReserveMarginAfter returns the reserve margin once addedMW of firm load
// has been connected.
func (u *Utility) ReserveMarginAfter(addedMW decimal.Decimal) decimal.Decimal {
	if u.GenerationCapacityMW.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return u.GenerationCapacityMW.Sub(u.SystemPeakMW).Sub(addedMW).Div(u.GenerationCapacityMW)
}

// CapacityPriceOrZero returns the market's capacity price, or zero when
// the market has none.
func (u *Utility) CapacityPriceOrZero() decimal.Decimal {
	if u.Market.CapacityPrice == nil {
		return decimal.Zero
	}
	return *u.Market.CapacityPrice
}
