package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tui/components"
	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

// CompareModel lays the four scenarios out side by side so the cost of
// firm service and the value of flexibility read at a glance.
type CompareModel struct {
	set         *domain.TrajectorySet
	summary     *domain.SummaryStats
	utilityName string
	width       int
	height      int
}

// NewCompareModel creates an empty comparison scene.
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetResults stores a completed projection for display.
func (m *CompareModel) SetResults(set *domain.TrajectorySet, summary *domain.SummaryStats, utilityName string) {
	m.set = set
	m.summary = summary
	m.utilityName = utilityName
}

// SetSize updates the scene dimensions.
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the comparison scene.
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	return m, nil
}

// View renders one card per scenario plus a short legend.
func (m *CompareModel) View() string {
	if m.set == nil || m.summary == nil {
		return "No projection yet.\n\nPick a utility on the home screen (press 'h'), then Enter to project."
	}

	title := tuistyles.TitleStyle.Render("Scenario comparison")
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s • %d-year horizon", m.utilityName, m.set.Horizon))

	parts := []string{title, subtitle, "", m.renderCards(), "", m.renderLegend()}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *CompareModel) renderCards() string {
	cards := make([]*components.ScenarioCard, 0, len(domain.ScenarioOrder))
	for _, id := range domain.ScenarioOrder {
		scenario, ok := reference.ScenarioByID(id)
		if !ok {
			continue
		}
		cards = append(cards, m.buildCard(id, scenario))
	}

	// Two rows of two on narrow terminals.
	if m.width > 0 && m.width < 130 && len(cards) == 4 {
		top := components.ScenarioRow(cards[:2])
		bottom := components.ScenarioRow(cards[2:])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}
	return components.ScenarioRow(cards)
}

func (m *CompareModel) buildCard(id domain.ScenarioID, scenario domain.Scenario) *components.ScenarioCard {
	card := components.NewScenarioCard(scenario.Name, lipgloss.Color(scenario.Color))

	if final, ok := m.summary.FinalYearBills[id]; ok {
		card = card.AddLine("Final bill", tuistyles.FormatCurrency(final.InexactFloat64())+"/mo")
	}
	if pct, ok := m.summary.PercentIncrease[id]; ok {
		card = card.AddLine("vs today", pct.StringFixed(1)+"%")
	}
	if id != domain.ScenarioBaseline {
		if diff, ok := m.summary.FinalYearDifference[id]; ok {
			card = card.AddLine("vs baseline", signedCurrency(diff.InexactFloat64())+"/mo")
		}
		if delta, ok := m.summary.CumulativeDelta[id]; ok {
			card = card.AddLine("Cumulative", signedShort(delta.InexactFloat64()))
		}
		if year, ok := m.summary.PeakImpactYear[id]; ok {
			if peak, okV := m.summary.PeakImpactValue[id]; okV {
				card = card.AddLine("Peak impact", fmt.Sprintf("%s in %d",
					signedCurrency(peak.InexactFloat64()), year))
			}
		}
	}
	if id == domain.ScenarioFlexible || id == domain.ScenarioDispatchable {
		if savings, ok := m.summary.SavingsVsUnoptimized[id]; ok {
			card = card.AddLine("Saved vs firm", signedShort(savings.InexactFloat64()))
		}
	}

	return card
}

func (m *CompareModel) renderLegend() string {
	var lines []string
	for _, id := range domain.ScenarioOrder {
		scenario, ok := reference.ScenarioByID(id)
		if !ok {
			continue
		}
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(scenario.Color)).Bold(true).Render(scenario.Name)
		lines = append(lines, name+"  "+tuistyles.SubtitleStyle.Render(scenario.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// signedCurrency keeps the sign visible on deltas.
func signedCurrency(value float64) string {
	if value < 0 {
		return fmt.Sprintf("-$%.2f", -value)
	}
	return fmt.Sprintf("+$%.2f", value)
}

// signedShort is signedCurrency for totals that can run into the
// thousands.
func signedShort(value float64) string {
	sign := "+"
	if value < 0 {
		sign = "-"
		value = -value
	}
	if value >= 1000 {
		return fmt.Sprintf("%s$%.1fK", sign, value/1000)
	}
	return fmt.Sprintf("%s$%.0f", sign, value)
}
