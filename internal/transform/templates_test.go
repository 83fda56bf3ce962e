package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/domain"
)

func TestTemplateRegistryRegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	got, ok := registry.Get("test_template")
	require.True(t, ok)
	assert.Equal(t, "test_template", got.Name)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "lookup should be case-insensitive")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{
		"smaller_dc",
		"more_flexibility",
		"self_supply",
		"high_capacity_price",
		"good_neighbor",
		"worst_case",
	} {
		template, ok := registry.Get(name)
		require.True(t, ok, "missing template %s", name)
		assert.NotEmpty(t, template.Transforms, "template %s has no transforms", name)
		assert.NotEmpty(t, template.Description, "template %s has no description", name)
	}
}

func TestApplyTemplateSmallerDC(t *testing.T) {
	registry := CreateBuiltInTemplates()
	template, ok := registry.Get("smaller_dc")
	require.True(t, ok)

	base := testInput()
	result, err := ApplyTemplate(base, template)
	require.NoError(t, err)

	assert.True(t, result.DataCenter.CapacityMW.Equal(decimal.NewFromInt(300)))
	assert.True(t, result.DataCenter.OnsiteGenerationMW.Equal(decimal.NewFromInt(60)))

	assert.True(t, base.DataCenter.CapacityMW.Equal(decimal.NewFromInt(1000)), "base input was modified")
	assert.True(t, base.DataCenter.OnsiteGenerationMW.Equal(decimal.NewFromInt(200)), "base input was modified")
}

func TestApplyTemplateHighCapacityPrice(t *testing.T) {
	registry := CreateBuiltInTemplates()
	template, ok := registry.Get("high_capacity_price")
	require.True(t, ok)

	// The base market is regulated; the template switches to PJM before
	// pricing the auction, so the chain validates.
	result, err := ApplyTemplate(testInput(), template)
	require.NoError(t, err)

	assert.Equal(t, domain.MarketPJM, result.Utility.Market.Type)
	require.NotNil(t, result.Utility.Market.CapacityPrice)
	assert.True(t, result.Utility.Market.CapacityPrice.Equal(decimal.NewFromInt(400)))
}

func TestApplyTemplateWorstCase(t *testing.T) {
	registry := CreateBuiltInTemplates()
	template, ok := registry.Get("worst_case")
	require.True(t, ok)

	result, err := ApplyTemplate(testInput(), template)
	require.NoError(t, err)

	assert.Equal(t, domain.ForecastAccelerated, result.Assumptions.Forecast)
	assert.True(t, result.DataCenter.CapacityMW.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.MarketPJM, result.Utility.Market.Type)
	require.NotNil(t, result.Utility.Market.CapacityPrice)
	assert.True(t, result.Utility.Market.CapacityPrice.Equal(decimal.NewFromInt(400)))
}

func TestApplyTemplateEmpty(t *testing.T) {
	base := testInput()

	result, err := ApplyTemplate(base, Template{Name: "empty"})
	require.NoError(t, err)
	assert.NotSame(t, base, result)
	assert.Equal(t, base.Name, result.Name)
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "smaller_dc", []string{"smaller_dc"}},
		{"multiple", "smaller_dc,more_flexibility,self_supply", []string{"smaller_dc", "more_flexibility", "self_supply"}},
		{"spaces", " smaller_dc , worst_case ", []string{"smaller_dc", "worst_case"}},
		{"empty", "", nil},
		{"only separators", " , , ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTemplateList(tt.input))
		})
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	assert.Contains(t, help, "Available templates")
	assert.Contains(t, help, "smaller_dc")
	assert.Contains(t, help, "worst_case")
	assert.Contains(t, help, "Usage:")

	// Listed alphabetically.
	assert.Less(t, strings.Index(help, "good_neighbor"), strings.Index(help, "high_capacity_price"))
}

func TestGetTemplateHelpEmpty(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
