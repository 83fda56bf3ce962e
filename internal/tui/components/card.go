package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

// MetricCard displays one headline number with an optional trend line.
type MetricCard struct {
	Label string
	Value string
	Trend string
	// TrendGood styles the trend green; bills going up is not good.
	TrendGood bool
	HasTrend  bool
	Width     int
}

// NewMetricCard creates a card for one metric.
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 26}
}

// WithTrend adds a trend line under the value.
func (m *MetricCard) WithTrend(good bool, change string) *MetricCard {
	m.HasTrend = true
	m.TrendGood = good
	m.Trend = change
	return m
}

// WithWidth sets the card width.
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card.
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)
	if m.HasTrend {
		style := tuistyles.MetricTrendStyle(m.TrendGood)
		arrow := tuistyles.TrendIndicator(m.TrendGood)
		content += "\n" + style.Render(arrow+" "+m.Trend)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 2).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out in rows of the given column count.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ScenarioCard summarizes one projection scenario for side-by-side
// comparison. The border carries the scenario's color.
type ScenarioCard struct {
	Name  string
	Color lipgloss.Color
	Lines []string
	Width int
}

// NewScenarioCard creates a card for one scenario.
func NewScenarioCard(name string, color lipgloss.Color) *ScenarioCard {
	return &ScenarioCard{Name: name, Color: color, Width: 30}
}

// AddLine appends a label/value line to the card body.
func (s *ScenarioCard) AddLine(label, value string) *ScenarioCard {
	s.Lines = append(s.Lines,
		tuistyles.MetricLabelStyle.Render(label)+"\n"+tuistyles.MetricValueStyle.Render(value))
	return s
}

// WithWidth sets the card width.
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the bordered card.
func (s *ScenarioCard) Render() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(s.Color).Render(s.Name)
	body := strings.Join(s.Lines, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Color).
		Padding(0, 2).
		Width(s.Width).
		Render(title + "\n\n" + body)
}

// ScenarioRow joins scenario cards horizontally.
func ScenarioRow(cards []*ScenarioCard) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, c.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
