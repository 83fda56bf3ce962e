// Package scenes holds the screen models composed by the root TUI
// model: home picker, parameter editor, results, and comparison.
package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tui/tuimsg"
	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

// HomeModel is the utility profile picker.
type HomeModel struct {
	profiles []domain.UtilityProfile
	cursor   int
	width    int
	height   int
}

// NewHomeModel creates the picker over the reference profiles.
func NewHomeModel() *HomeModel {
	return &HomeModel{profiles: reference.Profiles()}
}

// SetSize updates the scene dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted profile.
func (m *HomeModel) Selected() domain.UtilityProfile {
	if m.cursor < 0 || m.cursor >= len(m.profiles) {
		return domain.UtilityProfile{}
	}
	return m.profiles[m.cursor]
}

// Update handles picker navigation.
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		id := m.Selected().ID
		return m, func() tea.Msg {
			return tuimsg.ProfileSelectedMsg{ProfileID: id}
		}
	}
	return m, nil
}

// View renders the picker list beside the highlighted profile's details.
func (m *HomeModel) View() string {
	title := tuistyles.TitleStyle.Render("Pick a utility")
	hint := tuistyles.SubtitleStyle.Render("↑/↓ move • Enter load profile and project")

	list := m.renderList()
	detail := m.renderDetail()

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail)
	return lipgloss.JoinVertical(lipgloss.Left, title, hint, "", body)
}

func (m *HomeModel) renderList() string {
	var b strings.Builder
	for i, p := range m.profiles {
		marker := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.cursor {
			marker = "> "
			style = tuistyles.SelectedItemStyle
		}
		b.WriteString(style.Render(marker + p.ShortName))
		if p.HasDCActivity {
			b.WriteString(tuistyles.SubtitleStyle.Render(" ·dc"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *HomeModel) renderDetail() string {
	p := m.Selected()
	if p.ID == "" {
		return ""
	}

	label := tuistyles.MetricLabelStyle
	value := tuistyles.UnselectedItemStyle

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary).Render(p.Name))
	b.WriteString("\n\n")
	b.WriteString(label.Render("State            "))
	b.WriteString(value.Render(p.State))
	b.WriteString("\n")
	b.WriteString(label.Render("Residential      "))
	b.WriteString(value.Render(fmt.Sprintf("%d customers", p.ResidentialCustomers)))
	b.WriteString("\n")
	b.WriteString(label.Render("Average bill     "))
	b.WriteString(value.Render("$" + p.AvgMonthlyBill.StringFixed(0) + "/mo"))
	b.WriteString("\n")
	b.WriteString(label.Render("System peak      "))
	b.WriteString(value.Render(p.SystemPeakMW.StringFixed(0) + " MW"))
	b.WriteString("\n")
	b.WriteString(label.Render("Market           "))
	b.WriteString(value.Render(strings.ToUpper(string(p.Market.Type))))
	b.WriteString("\n")
	b.WriteString(label.Render("Default campus   "))
	b.WriteString(value.Render(p.DefaultDataCenterMW.StringFixed(0) + " MW"))
	if p.DCNotes != "" {
		b.WriteString("\n\n")
		b.WriteString(tuistyles.SubtitleStyle.Width(44).Render(p.DCNotes))
	}

	return tuistyles.BorderStyle.Render(b.String())
}
