package compare

import (
	"context"
	"fmt"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
	"github.com/gridbill/gridbill/internal/transform"
)

// CompareEngine orchestrates cross-profile and what-if comparisons.
type CompareEngine struct {
	Engine           *calculation.TrajectoryEngine
	Metrics          *MetricsCalculator
	TemplateRegistry *transform.TemplateRegistry
}

// NewCompareEngine creates a comparison engine on top of a trajectory
// engine, with the built-in what-if templates registered.
func NewCompareEngine(engine *calculation.TrajectoryEngine) *CompareEngine {
	return &CompareEngine{
		Engine:           engine,
		Metrics:          NewMetricsCalculator(),
		TemplateRegistry: transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures a comparison run.
type CompareOptions struct {
	// Horizon overrides the projection year count when positive.
	Horizon int
	// TariffID names the large-load tariff credited against
	// infrastructure costs. Empty means generic data-center rates.
	TariffID string
	// Forecast sets the demand outlook used to size profile-derived
	// campuses. Invalid or empty falls back to moderate.
	Forecast domain.ForecastScenario
}

// InputForProfile builds the projection input for a utility profile
// under the given options.
func InputForProfile(p *domain.UtilityProfile, options CompareOptions) *domain.ProjectionInput {
	forecast := options.Forecast
	if !domain.ValidForecast(forecast) {
		forecast = domain.ForecastModerate
	}

	assumptions := reference.DefaultAssumptions()
	assumptions.Forecast = forecast
	if options.Horizon > 0 {
		assumptions.ProjectionYears = options.Horizon
	}

	return &domain.ProjectionInput{
		Name:        p.ShortName,
		ProfileID:   p.ID,
		Utility:     reference.UtilityFromProfile(p),
		DataCenter:  reference.DataCenterForProfile(p, forecast),
		Assumptions: assumptions,
		TariffID:    options.TariffID,
	}
}

// CompareProfiles runs each profile through all four scenarios and
// compares the results. The first profile anchors the comparison.
func (ce *CompareEngine) CompareProfiles(ctx context.Context, profileIDs []string, options CompareOptions) (*ComparisonSet, error) {
	if len(profileIDs) == 0 {
		return nil, fmt.Errorf("no profiles to compare")
	}

	var assumptions domain.GlobalAssumptions
	results := make([]ComparisonResult, 0, len(profileIDs))
	for _, id := range profileIDs {
		p, ok := reference.ProfileByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", id)
		}

		input := InputForProfile(&p, options)
		assumptions = input.Assumptions

		result, err := ce.runInput(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("projecting profile %s: %w", id, err)
		}
		results = append(results, result)
	}

	base := results[0]
	alternatives := make([]ComparisonResult, 0, len(results)-1)
	for _, r := range results[1:] {
		alternatives = append(alternatives, ce.Metrics.CompareToBase(r, base))
	}

	set := &ComparisonSet{
		BaseName:     base.Name,
		BaseResult:   &base,
		Alternatives: alternatives,
		Assumptions:  AssumptionNotes(&assumptions),
	}
	set.Findings = GenerateFindings(set)
	return set, nil
}

// CompareTemplates applies named what-if templates to a base input and
// compares each variant against the unmodified base.
func (ce *CompareEngine) CompareTemplates(ctx context.Context, base *domain.ProjectionInput, templateNames []string, options CompareOptions) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	prepared := base.DeepCopy()
	if options.Horizon > 0 {
		prepared.Assumptions.ProjectionYears = options.Horizon
	}
	if options.TariffID != "" {
		prepared.TariffID = options.TariffID
	}
	if prepared.Name == "" {
		prepared.Name = "base"
	}

	baseResult, err := ce.runInput(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("projecting base input: %w", err)
	}

	alternatives := make([]ComparisonResult, 0, len(templateNames))
	for _, name := range templateNames {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}

		variant, err := transform.ApplyTemplate(prepared, template)
		if err != nil {
			return nil, fmt.Errorf("applying template %s: %w", name, err)
		}
		variant.Name = prepared.Name + "_" + name

		result, err := ce.runInput(ctx, variant)
		if err != nil {
			return nil, fmt.Errorf("projecting variant %s: %w", name, err)
		}
		result.Description = template.Description
		alternatives = append(alternatives, ce.Metrics.CompareToBase(result, baseResult))
	}

	set := &ComparisonSet{
		BaseName:     baseResult.Name,
		BaseResult:   &baseResult,
		Alternatives: alternatives,
		Assumptions:  AssumptionNotes(&prepared.Assumptions),
	}
	set.Findings = GenerateFindings(set)
	return set, nil
}

// runInput projects one input through all scenarios and reduces it.
func (ce *CompareEngine) runInput(ctx context.Context, input *domain.ProjectionInput) (ComparisonResult, error) {
	var largeLoad *domain.Tariff
	if input.TariffID != "" {
		t, ok := tariff.ByID(input.TariffID)
		if !ok {
			return ComparisonResult{}, fmt.Errorf("unknown tariff %q", input.TariffID)
		}
		largeLoad = &t
	}

	set, err := ce.Engine.ProjectAll(ctx, &input.Utility, &input.DataCenter, largeLoad, &input.Assumptions)
	if err != nil {
		return ComparisonResult{}, err
	}

	return ce.Metrics.ResultFor(input, set), nil
}
