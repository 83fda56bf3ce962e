// Package reference holds the static tables the calculator runs on:
// scenario descriptors, infrastructure unit costs, the generic data-center
// rate structure, market presets, utility profiles, workload flexibility
// classes, the capacity-market supply curve, and forecast scenarios.
// Everything here is fixed data; nothing is mutated at runtime.
package reference

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Scenarios returns the four scenario descriptors in canonical order.
func Scenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			ID:          domain.ScenarioBaseline,
			Name:        "Baseline",
			Color:       "#6B7280",
			Description: "No data center. Bills grow only with enabled escalation.",
		},
		{
			ID:          domain.ScenarioUnoptimized,
			Name:        "Firm Load",
			Color:       "#DC2626",
			Description: "Data center runs firm at full peak coincidence.",
		},
		{
			ID:          domain.ScenarioFlexible,
			Name:        "Flexible Load",
			Color:       "#F59E0B",
			Description: "Data center curtails during system peaks.",
		},
		{
			ID:          domain.ScenarioDispatchable,
			Name:        "Flex + Generation",
			Color:       "#10B981",
			Description: "Flexible operation paired with onsite generation.",
		},
	}
}

// ScenarioByID looks up a scenario descriptor.
func ScenarioByID(id domain.ScenarioID) (domain.Scenario, bool) {
	for _, s := range Scenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

// InfrastructureCosts are the embedded unit costs for grid buildout.
type InfrastructureCosts struct {
	TransmissionPerMW     decimal.Decimal // $/MW, 20-year amortization
	DistributionPerMW     decimal.Decimal // $/MW, 20-year amortization
	CapacityPerMWYear     decimal.Decimal // $/MW-year
	AnnualBaselineUpgrade decimal.Decimal // fraction of rate base per year
	AmortizationYears     decimal.Decimal
}

// Infrastructure returns the standard unit-cost table.
func Infrastructure() InfrastructureCosts {
	return InfrastructureCosts{
		TransmissionPerMW:     decimal.NewFromInt(350000),
		DistributionPerMW:     decimal.NewFromInt(150000),
		CapacityPerMWYear:     decimal.NewFromInt(150000),
		AnnualBaselineUpgrade: decimal.NewFromFloat(0.015),
		AmortizationYears:     decimal.NewFromInt(20),
	}
}

// RateStructure is the tariff the data center is billed under. Demand
// charges split into a coincident-peak component (billed on contribution
// during system peaks, avoidable by curtailment) and a non-coincident-peak
// component (billed on the customer's own monthly peak).
type RateStructure struct {
	CPChargePerMWMonth  decimal.Decimal // $/MW-month, ~60% of total demand charge
	NCPChargePerMWMonth decimal.Decimal // $/MW-month, ~40%
	TotalDemandPerMWMo  decimal.Decimal
	EnergyMarginPerMWh  decimal.Decimal
	ERCOT4CPRatePerKWMo decimal.Decimal // $/kW-month on 4CP contribution
}

// GenericRates is the fallback rate structure used when no tariff from the
// catalog is selected.
func GenericRates() RateStructure {
	return RateStructure{
		CPChargePerMWMonth:  decimal.NewFromInt(5430),
		NCPChargePerMWMonth: decimal.NewFromInt(3620),
		TotalDemandPerMWMo:  decimal.NewFromInt(9050),
		EnergyMarginPerMWh:  decimal.NewFromFloat(4.88),
		ERCOT4CPRatePerKWMo: decimal.NewFromFloat(5.50),
	}
}

// RatesFromTariff derives a data-center rate structure from a catalog
// tariff. The coincident component maps to the peak demand charge, the
// non-coincident component to the off-peak demand charge, and the energy
// margin to the peak energy rate net of the utility's marginal cost.
func RatesFromTariff(t *domain.Tariff, marginalEnergyCostPerKWh decimal.Decimal) RateStructure {
	if t == nil {
		return GenericRates()
	}
	thousand := decimal.NewFromInt(1000)
	margin := t.EnergyRatePeak.Sub(marginalEnergyCostPerKWh)
	if margin.LessThan(decimal.Zero) {
		margin = decimal.Zero
	}
	cp := t.PeakDemandCharge.Mul(thousand)
	ncp := t.OffPeakDemandCharge.Mul(thousand)
	return RateStructure{
		CPChargePerMWMonth:  cp,
		NCPChargePerMWMonth: ncp,
		TotalDemandPerMWMo:  cp.Add(ncp),
		EnergyMarginPerMWh:  margin.Mul(thousand),
		ERCOT4CPRatePerKWMo: decimal.NewFromFloat(5.50),
	}
}

const (
	// BaseYear anchors year zero of every projection.
	BaseYear = 2025
	// DefaultProjectionYears is the standard horizon.
	DefaultProjectionYears = 10
)

// GeneralInflation is the economy-wide inflation assumption.
func GeneralInflation() decimal.Decimal { return decimal.NewFromFloat(0.025) }

// AgingRate is the infrastructure-aging escalation rate: 1.5% baseline
// upgrades plus 0.5% grid modernization.
func AgingRate() decimal.Decimal { return decimal.NewFromFloat(0.020) }

// DefaultMarginalEnergyCost is the generic wholesale energy cost in $/kWh
// used to derive margins when a catalog tariff is selected.
func DefaultMarginalEnergyCost() decimal.Decimal { return decimal.NewFromFloat(0.045) }

// PlanningReserveFactor sizes default generation capacity at 15% above
// system peak for profiles that do not report their own figure.
func PlanningReserveFactor() decimal.Decimal { return decimal.NewFromFloat(1.15) }

// DefaultAssumptions returns the standard projection assumptions: both
// escalation toggles on, ten-year horizon, supply curve enabled.
func DefaultAssumptions() domain.GlobalAssumptions {
	return domain.GlobalAssumptions{
		BaseYear:         BaseYear,
		ProjectionYears:  DefaultProjectionYears,
		GeneralInflation: GeneralInflation(),
		Escalation: domain.EscalationConfig{
			InflationEnabled: true,
			InflationRate:    GeneralInflation(),
			AgingEnabled:     true,
			AgingRate:        AgingRate(),
		},
		Forecast:       domain.ForecastModerate,
		UseSupplyCurve: true,
	}
}

// DefaultUtility returns the model's stand-in utility: a mid-size summer
// peaking system with a typical residential share.
func DefaultUtility() domain.Utility {
	peak := decimal.NewFromInt(4000)
	return domain.Utility{
		Name:                 "Model Utility",
		ResidentialCustomers: 560000,
		CommercialCustomers:  85000,
		IndustrialCustomers:  5000,
		AvgMonthlyBill:       decimal.NewFromInt(130),
		PreDCSystemEnergyGWh: decimal.NewFromInt(20000),
		ResidentialEnergy:    decimal.NewFromFloat(0.35),
		SystemPeakMW:         peak,
		GenerationCapacityMW: peak.Mul(PlanningReserveFactor()),
		BaseResidentialAlloc: decimal.NewFromFloat(0.40),
		MarginalEnergyCost:   DefaultMarginalEnergyCost(),
		Market:               RegulatedMarket(),
	}
}

// DefaultDataCenter returns the standard 1 GW campus. Flexible figures
// reflect a 25% sustained curtailment capability.
func DefaultDataCenter() domain.DataCenter {
	return domain.DataCenter{
		CapacityMW:          decimal.NewFromInt(1000),
		FirmLoadFactor:      decimal.NewFromFloat(0.80),
		FirmPeakCoincidence: decimal.NewFromInt(1),
		FlexLoadFactor:      decimal.NewFromFloat(0.95),
		FlexPeakCoincidence: decimal.NewFromFloat(0.75),
		OnsiteGenerationMW:  decimal.NewFromInt(200),
	}
}

// UtilityFromProfile builds a session Utility from a profile, carrying the
// profile's customer base, bill, peak, and market while keeping model
// defaults for the fields profiles do not report.
func UtilityFromProfile(p *domain.UtilityProfile) domain.Utility {
	u := DefaultUtility()
	if p == nil {
		return u
	}
	u.ProfileID = p.ID
	u.Name = p.Name
	u.State = p.State
	u.ResidentialCustomers = p.ResidentialCustomers
	u.AvgMonthlyBill = p.AvgMonthlyBill
	u.SystemPeakMW = p.SystemPeakMW
	u.GenerationCapacityMW = p.SystemPeakMW.Mul(PlanningReserveFactor())
	u.BaseResidentialAlloc = p.Market.BaseResidentialAlloc
	u.Market = p.Market
	return u
}

// DataCenterForProfile builds data-center defaults for a profile under a
// forecast scenario. Onsite generation scales at 20% of capacity.
func DataCenterForProfile(p *domain.UtilityProfile, forecast domain.ForecastScenario) domain.DataCenter {
	dc := DefaultDataCenter()
	capacity := dc.CapacityMW
	if p != nil && p.DefaultDataCenterMW.GreaterThan(decimal.Zero) {
		capacity = p.DefaultDataCenterMW
	}
	capacity = capacity.Mul(ForecastMultiplier(forecast))
	dc.CapacityMW = capacity
	dc.OnsiteGenerationMW = capacity.Mul(decimal.NewFromFloat(0.20))
	return dc
}
