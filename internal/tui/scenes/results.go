package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tui/components"
	"github.com/gridbill/gridbill/internal/tui/tuimsg"
	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

// ResultsModel plots the projected bill trajectories and the headline
// numbers for each scenario.
type ResultsModel struct {
	set         *domain.TrajectorySet
	summary     *domain.SummaryStats
	utilityName string
	width       int
	height      int
}

// NewResultsModel creates an empty results scene.
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults stores a completed projection for display.
func (m *ResultsModel) SetResults(set *domain.TrajectorySet, summary *domain.SummaryStats, utilityName string) {
	m.set = set
	m.summary = summary
	m.utilityName = utilityName
}

// SetSize updates the scene dimensions.
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles scene-level keys; Enter requests a re-projection.
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "enter" {
		return m, func() tea.Msg {
			return tuimsg.RecalculateMsg{}
		}
	}
	return m, nil
}

// View renders the trajectory chart above a row of scenario cards.
func (m *ResultsModel) View() string {
	if m.set == nil || m.summary == nil {
		return "No projection yet.\n\nPick a utility on the home screen (press 'h'), then Enter to project."
	}

	title := tuistyles.TitleStyle.Render("Bill trajectories")
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s • %d–%d",
		m.utilityName, m.set.BaseYear, m.set.BaseYear+m.set.Horizon))

	parts := []string{title, subtitle, "", m.renderChart(), "", m.renderCards()}

	if m.summary.RevenueAdequacyPct != nil {
		parts = append(parts, "", tuistyles.InfoStyle.Render(fmt.Sprintf(
			"Large-load tariff recovers %s%% of incremental infrastructure cost",
			m.summary.RevenueAdequacyPct.StringFixed(0))))
	}

	parts = append(parts, "", tuistyles.SubtitleStyle.Render(
		"p edit parameters • c compare scenarios • Enter re-project"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *ResultsModel) renderChart() string {
	width := m.width - 12
	if width < 40 {
		width = 40
	}
	if width > 76 {
		width = 76
	}

	chart := components.NewTrajectoryChart("Monthly bill ($)").WithSize(width, 12)

	years := make([]int, 0, m.set.Horizon+1)
	for y := 0; y <= m.set.Horizon; y++ {
		years = append(years, m.set.BaseYear+y)
	}
	chart = chart.WithYears(years)

	for _, id := range domain.ScenarioOrder {
		traj, ok := m.set.Get(id)
		if !ok {
			continue
		}
		scenario, _ := reference.ScenarioByID(id)

		points := make([]float64, 0, len(traj.Points))
		for _, p := range traj.Points {
			points = append(points, p.MonthlyBill.InexactFloat64())
		}
		chart = chart.AddSeries(scenario.Name, points, lipgloss.Color(scenario.Color))
	}

	return chart.Render()
}

func (m *ResultsModel) renderCards() string {
	baselinePct, hasBaseline := m.summary.PercentIncrease[domain.ScenarioBaseline]

	cards := make([]*components.MetricCard, 0, len(domain.ScenarioOrder))
	for _, id := range domain.ScenarioOrder {
		final, ok := m.summary.FinalYearBills[id]
		if !ok {
			continue
		}
		scenario, _ := reference.ScenarioByID(id)

		card := components.NewMetricCard(scenario.Name, tuistyles.FormatCurrency(final.InexactFloat64())+"/mo")
		if pct, ok := m.summary.PercentIncrease[id]; ok {
			good := hasBaseline && pct.LessThanOrEqual(baselinePct)
			card = card.WithTrend(good, fmt.Sprintf("%s%% vs today", pct.StringFixed(1)))
		}
		cards = append(cards, card)
	}

	columns := 4
	if m.width > 0 && m.width < 120 {
		columns = 2
	}
	return components.MetricGrid(cards, columns)
}
