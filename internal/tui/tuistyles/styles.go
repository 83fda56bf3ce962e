// Package tuistyles holds the shared lipgloss palette and styles. It is
// a leaf package so scenes and components can use it without importing
// the root tui package.
package tuistyles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorPrimary   = lipgloss.Color("#0EA5E9")
	ColorSecondary = lipgloss.Color("#14B8A6")
	ColorAccent    = lipgloss.Color("#F59E0B")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorDanger    = lipgloss.Color("#DC2626")
	ColorInfo      = lipgloss.Color("#38BDF8")

	ColorBackground = lipgloss.Color("#111827")
	ColorForeground = lipgloss.Color("#E5E7EB")
	ColorMuted      = lipgloss.Color("#6B7280")
	ColorBorder     = lipgloss.Color("#374151")

	// The four scenario line colors, in projection order.
	ColorChartLine1 = lipgloss.Color("#6B7280")
	ColorChartLine2 = lipgloss.Color("#DC2626")
	ColorChartLine3 = lipgloss.Color("#F59E0B")
	ColorChartLine4 = lipgloss.Color("#10B981")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	SliderThumbStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)
)

// MetricTrendStyle returns the style for a trend indicator. For bills,
// up is bad.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow glyph for a trend direction.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▼"
	}
	return "▲"
}

// FormatCurrency renders a float as a dollar amount for display.
func FormatCurrency(value float64) string {
	if value < 0 {
		return fmt.Sprintf("-$%.2f", -value)
	}
	return fmt.Sprintf("$%.2f", value)
}
