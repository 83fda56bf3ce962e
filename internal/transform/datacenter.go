package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// AdjustDataCenterMW sets the campus nameplate capacity to an absolute
// figure, the "what if the project were half the size" knob.
type AdjustDataCenterMW struct {
	MW decimal.Decimal
}

func (a *AdjustDataCenterMW) Name() string {
	return "adjust_dc_mw"
}

func (a *AdjustDataCenterMW) Description() string {
	return fmt.Sprintf("Set data center capacity to %s MW", a.MW.StringFixed(0))
}

func (a *AdjustDataCenterMW) Validate(base *domain.ProjectionInput) error {
	if a.MW.LessThanOrEqual(decimal.Zero) {
		return NewTransformError(a.Name(), "validate", fmt.Sprintf("capacity must be positive, got %s MW", a.MW), nil)
	}
	if base == nil {
		return NewTransformError(a.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (a *AdjustDataCenterMW) Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error) {
	modified := base.DeepCopy()
	modified.DataCenter.CapacityMW = a.MW
	// Onsite generation can never exceed the nameplate it serves.
	if modified.DataCenter.OnsiteGenerationMW.GreaterThan(a.MW) {
		modified.DataCenter.OnsiteGenerationMW = a.MW
	}
	return modified, nil
}

// AdjustFlexCoincidence sets the share of campus load still drawing from
// the grid during system peaks under flexible operation. Lower coincidence
// means deeper curtailment.
type AdjustFlexCoincidence struct {
	Coincidence decimal.Decimal
}

func (f *AdjustFlexCoincidence) Name() string {
	return "adjust_flex_coincidence"
}

func (f *AdjustFlexCoincidence) Description() string {
	return fmt.Sprintf("Set flexible peak coincidence to %s", f.Coincidence)
}

func (f *AdjustFlexCoincidence) Validate(base *domain.ProjectionInput) error {
	if f.Coincidence.LessThan(decimal.Zero) || f.Coincidence.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(f.Name(), "validate", fmt.Sprintf("coincidence must be between 0 and 1, got %s", f.Coincidence), nil)
	}
	if base == nil {
		return NewTransformError(f.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (f *AdjustFlexCoincidence) Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error) {
	modified := base.DeepCopy()
	modified.DataCenter.FlexPeakCoincidence = f.Coincidence
	return modified, nil
}

// AdjustOnsiteGeneration sets the behind-the-meter generation fleet
// paired with the campus.
type AdjustOnsiteGeneration struct {
	MW decimal.Decimal
}

func (g *AdjustOnsiteGeneration) Name() string {
	return "adjust_onsite_generation"
}

func (g *AdjustOnsiteGeneration) Description() string {
	return fmt.Sprintf("Set onsite generation to %s MW", g.MW.StringFixed(0))
}

func (g *AdjustOnsiteGeneration) Validate(base *domain.ProjectionInput) error {
	if g.MW.LessThan(decimal.Zero) {
		return NewTransformError(g.Name(), "validate", fmt.Sprintf("onsite generation cannot be negative, got %s MW", g.MW), nil)
	}
	if base == nil {
		return NewTransformError(g.Name(), "validate", "base input cannot be nil", nil)
	}
	if g.MW.GreaterThan(base.DataCenter.CapacityMW) {
		return NewTransformError(g.Name(), "validate",
			fmt.Sprintf("onsite generation %s MW exceeds nameplate capacity %s MW", g.MW, base.DataCenter.CapacityMW), nil)
	}
	return nil
}

func (g *AdjustOnsiteGeneration) Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error) {
	modified := base.DeepCopy()
	modified.DataCenter.OnsiteGenerationMW = g.MW
	return modified, nil
}
