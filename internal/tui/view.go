package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application.
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneResults:
		content = m.renderResults()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar, content area, and status
// bar.
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4
	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb.
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("GridBill - Community Energy Bills")

	breadcrumb := m.currentScene.String()
	if m.input != nil && m.input.Utility.Name != "" {
		breadcrumb = fmt.Sprintf("%s / %s", m.currentScene.String(), m.input.Utility.Name)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom bar with keyboard shortcuts.
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("p", "parameters"),
		formatShortcut("r", "results"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	right := ""
	if m.calculating {
		right = InfoStyle.Render("projecting…")
	} else if m.set != nil {
		right = SubtitleStyle.Render(fmt.Sprintf("%d-year projection", m.set.Horizon))
	}
	if right != "" {
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(right) - 4
		if width > 0 {
			statusText = statusText + strings.Repeat(" ", width) + right
		}
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description.
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderResults shows a progress note while a projection is running.
func (m Model) renderResults() string {
	if m.calculating && m.set == nil {
		return BorderStyle.Render("⠋ Projecting bill trajectories…")
	}
	return m.resultsModel.View()
}

// renderError renders an error message.
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue", m.err.Error()),
	)
	return m.renderApp(content)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	helpText := `
GridBill - residential bill impact of data center load

KEYBOARD SHORTCUTS:
  h        Home: pick a utility
  p        Parameters: adjust the campus
  r        Results: bill trajectories
  c        Compare: scenarios side by side
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

HOME:
  ↑/↓ move, Enter to load a utility profile and project

PARAMETERS:
  ↑/↓ pick a slider, ←/→ adjust, e to type an exact value
  Enter re-projects with the current values, r resets

SCENARIOS:
  Baseline      no data center, inflation only
  Firm          always-on campus served as firm load
  Flexible      campus curtails during system peaks
  Dispatchable  flexible plus onsite generation dispatch
`

	return BorderStyle.Render(helpText)
}
