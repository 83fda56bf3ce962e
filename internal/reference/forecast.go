package reference

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// ForecastOutlook describes one market-growth scenario for data-center
// buildout in a service territory.
type ForecastOutlook struct {
	ID          domain.ForecastScenario `json:"id"`
	Name        string                  `json:"name"`
	Multiplier  decimal.Decimal         `json:"multiplier"`
	Description string                  `json:"description"`
}

// ForecastOutlooks returns the growth scenarios in ascending order of
// buildout.
func ForecastOutlooks() []ForecastOutlook {
	return []ForecastOutlook{
		{
			ID:          domain.ForecastConstrained,
			Name:        "Constrained",
			Multiplier:  decimal.NewFromFloat(0.6),
			Description: "Interconnection queues and supply chains slow buildout.",
		},
		{
			ID:          domain.ForecastModerate,
			Name:        "Moderate",
			Multiplier:  decimal.NewFromInt(1),
			Description: "Announced projects complete on typical timelines.",
		},
		{
			ID:          domain.ForecastAccelerated,
			Name:        "Accelerated",
			Multiplier:  decimal.NewFromFloat(1.5),
			Description: "AI demand pulls additional campuses into the territory.",
		},
	}
}

// ForecastMultiplier returns the capacity multiplier for a forecast
// scenario, treating unknown values as moderate.
func ForecastMultiplier(f domain.ForecastScenario) decimal.Decimal {
	for _, o := range ForecastOutlooks() {
		if o.ID == f {
			return o.Multiplier
		}
	}
	return decimal.NewFromInt(1)
}
