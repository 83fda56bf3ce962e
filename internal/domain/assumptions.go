package domain

import (
	"github.com/shopspring/decimal"
)

// EscalationConfig holds the two independent baseline escalation toggles.
// Each enabled rate compounds annually on the baseline scenario only;
// data-center impact escalation is governed by the general inflation
// assumption, not by these toggles.
type EscalationConfig struct {
	InflationEnabled bool            `yaml:"inflation_enabled" json:"inflationEnabled"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	AgingEnabled     bool            `yaml:"aging_enabled" json:"agingEnabled"`
	AgingRate        decimal.Decimal `yaml:"aging_rate" json:"agingRate"`
}

// BaselineGrowthRate sums the enabled escalation rates. Both toggles off
// means a flat baseline.
func (ec *EscalationConfig) BaselineGrowthRate() decimal.Decimal {
	rate := decimal.Zero
	if ec.InflationEnabled {
		rate = rate.Add(ec.InflationRate)
	}
	if ec.AgingEnabled {
		rate = rate.Add(ec.AgingRate)
	}
	return rate
}

// GlobalAssumptions drives a projection run.
type GlobalAssumptions struct {
	BaseYear         int              `yaml:"base_year" json:"baseYear"`
	ProjectionYears  int              `yaml:"projection_years" json:"projectionYears"`
	GeneralInflation decimal.Decimal  `yaml:"general_inflation" json:"generalInflation"`
	Escalation       EscalationConfig `yaml:"escalation" json:"escalation"`
	Forecast         ForecastScenario `yaml:"forecast,omitempty" json:"forecast,omitempty"`
	UseSupplyCurve   bool             `yaml:"use_supply_curve" json:"useSupplyCurve"`
}

// Horizon returns the projection year count, floored at one year.
func (ga *GlobalAssumptions) Horizon() int {
	if ga.ProjectionYears <= 0 {
		return 1
	}
	return ga.ProjectionYears
}
