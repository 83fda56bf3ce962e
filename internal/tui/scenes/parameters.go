package scenes

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/tui/components"
	"github.com/gridbill/gridbill/internal/tui/tuimsg"
	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

const (
	sliderCapacity = iota
	sliderFlexCoincidence
	sliderOnsite
	sliderHorizon
)

// ParametersModel edits the campus and horizon knobs with sliders. A
// focused slider can also take an exact typed value.
type ParametersModel struct {
	input    *domain.ProjectionInput
	sliders  []*components.Slider
	focused  int
	editing  bool
	editor   textinput.Model
	modified bool
	width    int
	height   int
}

// NewParametersModel creates the editor; call SetInput before use.
func NewParametersModel() *ParametersModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 1500"
	ti.CharLimit = 8
	ti.Width = 16

	return &ParametersModel{editor: ti}
}

// SetInput points the editor at a projection input and rebuilds the
// sliders from its current values.
func (m *ParametersModel) SetInput(input *domain.ProjectionInput) {
	m.input = input
	m.buildSliders()
	m.modified = false
}

// SetSize updates the scene dimensions.
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether the exact-value editor owns the keyboard.
func (m *ParametersModel) Editing() bool {
	return m.editing
}

func (m *ParametersModel) buildSliders() {
	if m.input == nil {
		return
	}
	dc := &m.input.DataCenter

	m.sliders = []*components.Slider{
		components.NewSlider("Campus capacity", dc.CapacityMW.InexactFloat64(), 50, 5000, 50).
			WithUnit(" MW"),
		components.NewSlider("Flex peak coincidence", dc.FlexPeakCoincidence.InexactFloat64(), 0, 1, 0.05).
			WithFormat("%.2f"),
		components.NewSlider("Onsite generation", dc.OnsiteGenerationMW.InexactFloat64(), 0, 2000, 50).
			WithUnit(" MW"),
		components.NewSlider("Horizon", float64(m.input.Assumptions.Horizon()), 1, 30, 1).
			WithUnit(" years"),
	}

	m.focused = 0
	m.sliders[0].SetFocused(true)
}

// applyChanges writes the slider values back into the input. Onsite
// generation is clamped to the nameplate so the input stays valid.
func (m *ParametersModel) applyChanges() {
	if m.input == nil || len(m.sliders) == 0 {
		return
	}

	capacity := m.sliders[sliderCapacity].Value
	onsite := m.sliders[sliderOnsite].Value
	if onsite > capacity {
		onsite = capacity
		m.sliders[sliderOnsite].SetValue(onsite)
	}

	m.input.DataCenter.CapacityMW = decimal.NewFromFloat(capacity)
	m.input.DataCenter.FlexPeakCoincidence = decimal.NewFromFloat(m.sliders[sliderFlexCoincidence].Value)
	m.input.DataCenter.OnsiteGenerationMW = decimal.NewFromFloat(onsite)
	m.input.Assumptions.ProjectionYears = int(m.sliders[sliderHorizon].Value)
	m.modified = true
}

// Update handles slider navigation, adjustment, and exact-value entry.
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if m.editing {
		return m.updateEditor(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
		m.sliders[m.focused].Decrement()
		m.applyChanges()

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right"))):
		m.sliders[m.focused].Increment()
		m.applyChanges()

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("e"))):
		m.editing = true
		m.editor.SetValue("")
		m.editor.Focus()
		return m, textinput.Blink

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("r"))):
		m.buildSliders()
		m.modified = false

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		return m, func() tea.Msg {
			return tuimsg.RecalculateMsg{}
		}
	}
	return m, nil
}

func (m *ParametersModel) updateEditor(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if v, err := strconv.ParseFloat(strings.TrimSpace(m.editor.Value()), 64); err == nil {
				m.sliders[m.focused].SetValue(v)
				m.applyChanges()
			}
			m.editing = false
			m.editor.Blur()
			return m, nil

		case tea.KeyEsc:
			m.editing = false
			m.editor.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

// View renders the slider stack and, when active, the exact-value
// editor.
func (m *ParametersModel) View() string {
	if m.input == nil {
		return "No projection loaded.\n\nPick a utility on the home screen first (press 'h')."
	}

	title := tuistyles.TitleStyle.Render("Campus parameters")
	subtitle := tuistyles.SubtitleStyle.Render(m.input.Utility.Name)

	var rendered []string
	for _, s := range m.sliders {
		rendered = append(rendered, s.Render(), "")
	}
	stack := tuistyles.BorderStyle.Width(56).Render(strings.Join(rendered, "\n"))

	parts := []string{title, subtitle, "", stack}

	if m.editing {
		prompt := tuistyles.InfoStyle.Render("Exact value for "+m.sliders[m.focused].Label+": ") + m.editor.View()
		parts = append(parts, "", prompt)
	} else if m.modified {
		parts = append(parts, "", tuistyles.InfoStyle.Render("Modified — press Enter to re-project, r to reset"))
	}

	parts = append(parts, "", tuistyles.SubtitleStyle.Render(
		"↑/↓ select • ←/→ adjust • e exact value • Enter project • r reset"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
