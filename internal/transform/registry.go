package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// TransformRegistry creates transforms from string parameters, the bridge
// between CLI flags and typed transforms.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory builds a transform from string parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry returns a registry with all built-in transforms
// registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_dc_mw", createAdjustDataCenterMW)
	registry.Register("adjust_flex_coincidence", createAdjustFlexCoincidence)
	registry.Register("adjust_onsite_generation", createAdjustOnsiteGeneration)
	registry.Register("set_market_type", createSetMarketType)
	registry.Register("adjust_capacity_price", createAdjustCapacityPrice)
	registry.Register("set_forecast", createSetForecast)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create builds a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_dc_mw:mw=300"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform.

func createAdjustDataCenterMW(params map[string]string) (ScenarioTransform, error) {
	mwStr, ok := params["mw"]
	if !ok {
		return nil, fmt.Errorf("adjust_dc_mw requires 'mw' parameter")
	}

	mw, err := decimal.NewFromString(mwStr)
	if err != nil {
		return nil, fmt.Errorf("invalid mw value: %w", err)
	}

	return &AdjustDataCenterMW{MW: mw}, nil
}

func createAdjustFlexCoincidence(params map[string]string) (ScenarioTransform, error) {
	coincidenceStr, ok := params["coincidence"]
	if !ok {
		return nil, fmt.Errorf("adjust_flex_coincidence requires 'coincidence' parameter")
	}

	coincidence, err := decimal.NewFromString(coincidenceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid coincidence value: %w", err)
	}

	return &AdjustFlexCoincidence{Coincidence: coincidence}, nil
}

func createAdjustOnsiteGeneration(params map[string]string) (ScenarioTransform, error) {
	mwStr, ok := params["mw"]
	if !ok {
		return nil, fmt.Errorf("adjust_onsite_generation requires 'mw' parameter")
	}

	mw, err := decimal.NewFromString(mwStr)
	if err != nil {
		return nil, fmt.Errorf("invalid mw value: %w", err)
	}

	return &AdjustOnsiteGeneration{MW: mw}, nil
}

func createSetMarketType(params map[string]string) (ScenarioTransform, error) {
	typeStr, ok := params["type"]
	if !ok {
		return nil, fmt.Errorf("set_market_type requires 'type' parameter")
	}

	return &SetMarketType{Type: domain.MarketType(strings.ToLower(typeStr))}, nil
}

func createAdjustCapacityPrice(params map[string]string) (ScenarioTransform, error) {
	priceStr, ok := params["price"]
	if !ok {
		return nil, fmt.Errorf("adjust_capacity_price requires 'price' parameter")
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid price value: %w", err)
	}

	return &AdjustCapacityPrice{Price: price}, nil
}

func createSetForecast(params map[string]string) (ScenarioTransform, error) {
	forecastStr, ok := params["forecast"]
	if !ok {
		return nil, fmt.Errorf("set_forecast requires 'forecast' parameter")
	}

	return &SetForecast{Forecast: domain.ForecastScenario(strings.ToLower(forecastStr))}, nil
}
