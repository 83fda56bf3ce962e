package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// TemplateRegistry manages named bundles of transforms.
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms applied in order.
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry.
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive).
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// CreateBuiltInTemplates returns the stock what-if bundles used by the
// compare command.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "smaller_dc",
		Description: "Shrink the campus to 300 MW with onsite generation to match",
		Transforms: []ScenarioTransform{
			&AdjustDataCenterMW{MW: decimal.NewFromInt(300)},
			&AdjustOnsiteGeneration{MW: decimal.NewFromInt(60)},
		},
	})

	registry.Register(Template{
		Name:        "more_flexibility",
		Description: "Deepen peak curtailment to 75% of nameplate",
		Transforms: []ScenarioTransform{
			&AdjustFlexCoincidence{Coincidence: decimal.NewFromFloat(0.25)},
		},
	})

	registry.Register(Template{
		Name:        "self_supply",
		Description: "Pair the campus with 400 MW of onsite generation",
		Transforms: []ScenarioTransform{
			&AdjustOnsiteGeneration{MW: decimal.NewFromInt(400)},
		},
	})

	registry.Register(Template{
		Name:        "high_capacity_price",
		Description: "PJM market with the capacity auction clearing at $400/MW-day",
		Transforms: []ScenarioTransform{
			&SetMarketType{Type: domain.MarketPJM},
			&AdjustCapacityPrice{Price: decimal.NewFromInt(400)},
		},
	})

	registry.Register(Template{
		Name:        "good_neighbor",
		Description: "Deep curtailment plus 400 MW of self-supply",
		Transforms: []ScenarioTransform{
			&AdjustFlexCoincidence{Coincidence: decimal.NewFromFloat(0.25)},
			&AdjustOnsiteGeneration{MW: decimal.NewFromInt(400)},
		},
	})

	registry.Register(Template{
		Name:        "worst_case",
		Description: "Accelerated buildout in a PJM market clearing at $400/MW-day",
		Transforms: []ScenarioTransform{
			&SetForecast{Forecast: domain.ForecastAccelerated},
			&SetMarketType{Type: domain.MarketPJM},
			&AdjustCapacityPrice{Price: decimal.NewFromInt(400)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input.
func ApplyTemplate(base *domain.ProjectionInput, template Template) (*domain.ProjectionInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names.
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates.
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available templates:\n\n")

	names := registry.List()
	sort.Strings(names)
	for _, name := range names {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  gridbill compare --profile georgia-power --with smaller_dc,more_flexibility\n")
	sb.WriteString("  gridbill compare --profile georgia-power --with worst_case\n")

	return sb.String()
}
