// Package config loads projection inputs from YAML session files.
// Defaults come from the reference tables, or from a named utility
// profile; the file overrides only the keys it provides.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
)

var one = decimal.NewFromInt(1)

// InputParser handles parsing of projection input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a projection input from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProjectionInput, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()
	return ip.LoadFromReader(f)
}

// LoadFromReader loads a projection input from YAML. The document is
// applied over profile or model defaults, so a file only needs the keys
// it wants to change.
func (ip *InputParser) LoadFromReader(r io.Reader) (*domain.ProjectionInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	// First pass pulls the profile and forecast so the defaults can be
	// seeded before the overlay.
	var head struct {
		ProfileID   string `yaml:"profile_id"`
		Assumptions struct {
			Forecast domain.ForecastScenario `yaml:"forecast"`
		} `yaml:"assumptions"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input, err := ip.seedDefaults(head.ProfileID, head.Assumptions.Forecast)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return input, nil
}

// seedDefaults builds the starting input the file overlays.
func (ip *InputParser) seedDefaults(profileID string, forecast domain.ForecastScenario) (*domain.ProjectionInput, error) {
	if !domain.ValidForecast(forecast) {
		forecast = domain.ForecastModerate
	}

	assumptions := reference.DefaultAssumptions()
	assumptions.Forecast = forecast

	if profileID == "" {
		return &domain.ProjectionInput{
			Utility:     reference.DefaultUtility(),
			DataCenter:  reference.DefaultDataCenter(),
			Assumptions: assumptions,
		}, nil
	}

	p, ok := reference.ProfileByID(profileID)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", profileID)
	}
	return &domain.ProjectionInput{
		Name:        p.ShortName,
		ProfileID:   p.ID,
		Utility:     reference.UtilityFromProfile(&p),
		DataCenter:  reference.DataCenterForProfile(&p, forecast),
		Assumptions: assumptions,
	}, nil
}

// ValidateInput validates a fully assembled projection input.
func (ip *InputParser) ValidateInput(input *domain.ProjectionInput) error {
	if err := ip.validateUtility(&input.Utility); err != nil {
		return fmt.Errorf("utility validation failed: %w", err)
	}
	if err := ip.validateDataCenter(&input.DataCenter); err != nil {
		return fmt.Errorf("data center validation failed: %w", err)
	}
	if err := ip.validateAssumptions(&input.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	if input.TariffID != "" {
		if _, ok := tariff.ByID(input.TariffID); !ok {
			return fmt.Errorf("unknown tariff %q", input.TariffID)
		}
	}
	return nil
}

// validateUtility validates the utility under study.
func (ip *InputParser) validateUtility(u *domain.Utility) error {
	if u.ResidentialCustomers <= 0 {
		return fmt.Errorf("residential customers must be positive")
	}
	if u.AvgMonthlyBill.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("average monthly bill must be positive")
	}
	if u.SystemPeakMW.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("system peak must be positive")
	}
	if u.GenerationCapacityMW.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("generation capacity must be positive")
	}
	if u.PreDCSystemEnergyGWh.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("pre-data-center system energy must be positive")
	}
	if u.ResidentialEnergy.LessThanOrEqual(decimal.Zero) || u.ResidentialEnergy.GreaterThan(one) {
		return fmt.Errorf("residential energy share must be between 0 and 1")
	}
	if u.BaseResidentialAlloc.LessThanOrEqual(decimal.Zero) || u.BaseResidentialAlloc.GreaterThan(one) {
		return fmt.Errorf("base residential allocation must be between 0 and 1")
	}
	if u.MarginalEnergyCost.LessThan(decimal.Zero) {
		return fmt.Errorf("marginal energy cost cannot be negative")
	}
	if err := ip.validateMarket(&u.Market); err != nil {
		return fmt.Errorf("market validation failed: %w", err)
	}
	return nil
}

// validateMarket validates the market structure.
func (ip *InputParser) validateMarket(m *domain.MarketStructure) error {
	if !domain.ValidMarketType(m.Type) {
		return fmt.Errorf("unknown market type %q", m.Type)
	}
	if m.BaseResidentialAlloc.LessThanOrEqual(decimal.Zero) || m.BaseResidentialAlloc.GreaterThan(one) {
		return fmt.Errorf("base residential allocation must be between 0 and 1")
	}
	if m.CapacityCostPassThrough.LessThan(decimal.Zero) || m.CapacityCostPassThrough.GreaterThan(one) {
		return fmt.Errorf("capacity cost pass-through must be between 0 and 1")
	}
	if m.TransmissionAllocation.LessThan(decimal.Zero) || m.TransmissionAllocation.GreaterThan(one) {
		return fmt.Errorf("transmission allocation must be between 0 and 1")
	}
	if m.CapacityPrice != nil {
		if m.CapacityPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("capacity price cannot be negative")
		}
		if !m.HasCapacityMarket {
			return fmt.Errorf("capacity price set for a market with no capacity auction")
		}
	}
	return nil
}

// validateDataCenter validates the proposed campus.
func (ip *InputParser) validateDataCenter(dc *domain.DataCenter) error {
	if dc.CapacityMW.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("capacity must be positive")
	}
	if dc.FirmLoadFactor.LessThanOrEqual(decimal.Zero) || dc.FirmLoadFactor.GreaterThan(one) {
		return fmt.Errorf("firm load factor must be between 0 and 1")
	}
	if dc.FlexLoadFactor.LessThanOrEqual(decimal.Zero) || dc.FlexLoadFactor.GreaterThan(one) {
		return fmt.Errorf("flex load factor must be between 0 and 1")
	}
	if dc.FirmPeakCoincidence.LessThan(decimal.Zero) || dc.FirmPeakCoincidence.GreaterThan(one) {
		return fmt.Errorf("firm peak coincidence must be between 0 and 1")
	}
	if dc.FlexPeakCoincidence.LessThan(decimal.Zero) || dc.FlexPeakCoincidence.GreaterThan(one) {
		return fmt.Errorf("flex peak coincidence must be between 0 and 1")
	}
	if dc.OnsiteGenerationMW.LessThan(decimal.Zero) {
		return fmt.Errorf("onsite generation cannot be negative")
	}
	if dc.OnsiteGenerationMW.GreaterThan(dc.CapacityMW) {
		return fmt.Errorf("onsite generation cannot exceed nameplate capacity")
	}
	return nil
}

// validateAssumptions validates the run assumptions. A zero base year is
// allowed and resolves to the reference base year downstream.
func (ip *InputParser) validateAssumptions(a *domain.GlobalAssumptions) error {
	if a.BaseYear != 0 && (a.BaseYear < 2000 || a.BaseYear > 2100) {
		return fmt.Errorf("base year must be between 2000 and 2100")
	}
	if a.ProjectionYears <= 0 || a.ProjectionYears > 50 {
		return fmt.Errorf("projection years must be between 1 and 50")
	}
	if a.GeneralInflation.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("general inflation cannot be less than -10%%")
	}
	if a.Escalation.InflationRate.LessThan(decimal.Zero) {
		return fmt.Errorf("escalation inflation rate cannot be negative")
	}
	if a.Escalation.AgingRate.LessThan(decimal.Zero) {
		return fmt.Errorf("infrastructure aging rate cannot be negative")
	}
	if a.Forecast != "" && !domain.ValidForecast(a.Forecast) {
		return fmt.Errorf("unknown forecast scenario %q", a.Forecast)
	}
	return nil
}
