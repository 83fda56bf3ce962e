package output

import (
	"fmt"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// AssumptionLines renders the modeling assumptions behind a projection
// run as display strings for detailed outputs.
func AssumptionLines(a *domain.GlobalAssumptions) []string {
	lines := []string{
		fmt.Sprintf("Projection horizon: %d years from %d", a.Horizon(), a.BaseYear),
		fmt.Sprintf("General inflation: %s%% annually", a.GeneralInflation.Mul(hundred).String()),
	}

	if a.Escalation.InflationEnabled {
		lines = append(lines, fmt.Sprintf("Baseline rate inflation: %s%% annually", a.Escalation.InflationRate.Mul(hundred).String()))
	}
	if a.Escalation.AgingEnabled {
		lines = append(lines, fmt.Sprintf("Grid aging surcharge: %s%% annually", a.Escalation.AgingRate.Mul(hundred).String()))
	}
	lines = append(lines, fmt.Sprintf("Combined baseline escalation: %s%% annually", a.Escalation.BaselineGrowthRate().Mul(hundred).String()))

	forecast := a.Forecast
	if !domain.ValidForecast(forecast) {
		forecast = domain.ForecastModerate
	}
	lines = append(lines, fmt.Sprintf("Demand forecast: %s (%sx campus sizing)", forecast, reference.ForecastMultiplier(forecast).String()))

	lines = append(lines,
		"Construction lead time: 2 years; first online year phases in at half strength",
		"Large-load tariff revenue credited against infrastructure costs",
	)
	if a.UseSupplyCurve {
		lines = append(lines, "Capacity prices follow the VRR curve as reserve margins tighten")
	} else {
		lines = append(lines, "Capacity prices held constant at market levels")
	}
	return lines
}
