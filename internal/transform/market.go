package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// SetMarketType moves the utility onto a different wholesale market
// preset, the "what if this territory joined PJM" knob. The residential
// allocation follows the new market's base.
type SetMarketType struct {
	Type domain.MarketType
}

func (m *SetMarketType) Name() string {
	return "set_market_type"
}

func (m *SetMarketType) Description() string {
	return fmt.Sprintf("Move the utility onto the %s market structure", m.Type)
}

func (m *SetMarketType) Validate(base *domain.ProjectionInput) error {
	if !domain.ValidMarketType(m.Type) {
		return NewTransformError(m.Name(), "validate", fmt.Sprintf("unknown market type %q", m.Type), nil)
	}
	if base == nil {
		return NewTransformError(m.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (m *SetMarketType) Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error) {
	modified := base.DeepCopy()
	market := reference.MarketByType(m.Type)
	modified.Utility.Market = market
	modified.Utility.BaseResidentialAlloc = market.BaseResidentialAlloc
	return modified, nil
}

// AdjustCapacityPrice overrides the capacity auction clearing price in
// $/MW-day. Only meaningful on markets that run a capacity auction.
type AdjustCapacityPrice struct {
	Price decimal.Decimal
}

func (c *AdjustCapacityPrice) Name() string {
	return "adjust_capacity_price"
}

func (c *AdjustCapacityPrice) Description() string {
	return fmt.Sprintf("Set the capacity price to $%s/MW-day", c.Price.StringFixed(2))
}

func (c *AdjustCapacityPrice) Validate(base *domain.ProjectionInput) error {
	if c.Price.LessThan(decimal.Zero) {
		return NewTransformError(c.Name(), "validate", fmt.Sprintf("price cannot be negative, got %s", c.Price), nil)
	}
	if base == nil {
		return NewTransformError(c.Name(), "validate", "base input cannot be nil", nil)
	}
	if !base.Utility.Market.HasCapacityMarket {
		return NewTransformError(c.Name(), "validate",
			fmt.Sprintf("market %s has no capacity auction to price", base.Utility.Market.Type), nil)
	}
	return nil
}

func (c *AdjustCapacityPrice) Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error) {
	modified := base.DeepCopy()
	price := c.Price
	modified.Utility.Market.CapacityPrice = &price
	return modified, nil
}

// SetForecast switches the demand outlook and rescales the campus by the
// ratio of the new outlook's buildout multiplier to the one already baked
// into the input.
type SetForecast struct {
	Forecast domain.ForecastScenario
}

func (s *SetForecast) Name() string {
	return "set_forecast"
}

func (s *SetForecast) Description() string {
	return fmt.Sprintf("Set the demand forecast to %s", s.Forecast)
}

func (s *SetForecast) Validate(base *domain.ProjectionInput) error {
	if !domain.ValidForecast(s.Forecast) {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown forecast %q", s.Forecast), nil)
	}
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (s *SetForecast) Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error) {
	modified := base.DeepCopy()
	oldMult := reference.ForecastMultiplier(base.Assumptions.Forecast)
	newMult := reference.ForecastMultiplier(s.Forecast)
	if !oldMult.Equal(newMult) && oldMult.GreaterThan(decimal.Zero) {
		ratio := newMult.Div(oldMult)
		modified.DataCenter.CapacityMW = modified.DataCenter.CapacityMW.Mul(ratio)
		modified.DataCenter.OnsiteGenerationMW = modified.DataCenter.OnsiteGenerationMW.Mul(ratio)
	}
	modified.Assumptions.Forecast = s.Forecast
	return modified, nil
}
