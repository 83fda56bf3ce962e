package domain

import (
	"github.com/shopspring/decimal"
)

// TariffStatus tracks where a tariff sits in the regulatory process.
type TariffStatus string

const (
	TariffActive   TariffStatus = "active"
	TariffPending  TariffStatus = "pending"
	TariffProposed TariffStatus = "proposed"
)

// TariffProtections are the ratepayer-protection mechanisms a large-load
// tariff may carry. These feed the protection score.
type TariffProtections struct {
	DemandRatchet      bool            `yaml:"demand_ratchet" json:"demandRatchet"`
	RatchetPct         decimal.Decimal `yaml:"ratchet_pct" json:"ratchetPct"`
	CIACRequired       bool            `yaml:"ciac_required" json:"ciacRequired"`
	TakeOrPay          bool            `yaml:"take_or_pay" json:"takeOrPay"`
	ExitFee            bool            `yaml:"exit_fee" json:"exitFee"`
	CreditRequirements bool            `yaml:"credit_requirements" json:"creditRequirements"`
	Collateral         bool            `yaml:"collateral" json:"collateral"`
	FuelAdjustment     bool            `yaml:"fuel_adjustment_clause" json:"fuelAdjustmentClause"`
	TOUDifferential    bool            `yaml:"tou_differential" json:"touDifferential"`
}

// Tariff is a static large-load rate structure for one utility. Derived
// fields (blended rate, annual cost, protection score) are computed when
// the catalog is built.
type Tariff struct {
	ID            string          `yaml:"id" json:"id"`
	Utility       string          `yaml:"utility" json:"utility"`
	UtilityShort  string          `yaml:"utility_short" json:"utilityShort"`
	State         string          `yaml:"state" json:"state"`
	Region        string          `yaml:"region" json:"region"`
	ISORTO        string          `yaml:"iso_rto" json:"isoRTO"`
	TariffName    string          `yaml:"tariff_name" json:"tariffName"`
	RateSchedule  string          `yaml:"rate_schedule" json:"rateSchedule"`
	EffectiveDate string          `yaml:"effective_date" json:"effectiveDate"`
	Status        TariffStatus    `yaml:"status" json:"status"`
	MinLoadMW     decimal.Decimal `yaml:"min_load_mw" json:"minLoadMW"`
	VoltageLevel  string          `yaml:"voltage_level" json:"voltageLevel"`

	// Demand charges in $/kW-month.
	PeakDemandCharge    decimal.Decimal `yaml:"peak_demand_charge" json:"peakDemandCharge"`
	OffPeakDemandCharge decimal.Decimal `yaml:"off_peak_demand_charge" json:"offPeakDemandCharge"`

	// Energy rates in $/kWh.
	EnergyRatePeak    decimal.Decimal `yaml:"energy_rate_peak" json:"energyRatePeak"`
	EnergyRateOffPeak decimal.Decimal `yaml:"energy_rate_off_peak" json:"energyRateOffPeak"`
	FuelAdjPerKWh     decimal.Decimal `yaml:"fuel_adjustment_per_kwh" json:"fuelAdjustmentPerKWh"`

	InitialTermYears     int `yaml:"initial_term_years" json:"initialTermYears"`
	TerminationNoticeMos int `yaml:"termination_notice_months" json:"terminationNoticeMonths"`

	Protections        TariffProtections `yaml:"protections" json:"protections"`
	DataCenterSpecific bool              `yaml:"data_center_specific" json:"dataCenterSpecific"`

	// Derived.
	BlendedRatePerKWh decimal.Decimal `yaml:"blended_rate_per_kwh" json:"blendedRatePerKWh"`
	AnnualCostM       decimal.Decimal `yaml:"annual_cost_m" json:"annualCostM"`
	ProtectionScore   int             `yaml:"protection_score" json:"protectionScore"`
	ProtectionRating  string          `yaml:"protection_rating" json:"protectionRating"`

	LastVerified string `yaml:"last_verified,omitempty" json:"lastVerified,omitempty"`
	Notes        string `yaml:"notes,omitempty" json:"notes,omitempty"`
}
