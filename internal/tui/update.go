package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ProfileSelectedMsg:
		m.loadProfile(msg.ProfileID)
		m.calculating = true
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, projectCmd(m.engine, m.input)

	case tuimsg.RecalculateMsg:
		m.calculating = true
		return m, projectCmd(m.engine, m.input)

	case tuimsg.ProjectionCompleteMsg:
		m.calculating = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.set = msg.Set
		m.summary = msg.Summary
		m.resultsModel.SetResults(msg.Set, msg.Summary, m.input.Utility.Name)
		m.compareModel.SetResults(msg.Set, msg.Summary, m.input.Utility.Name)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A key press dismisses a displayed error.
	if m.err != nil {
		m.err = nil
	}

	// The exact-value editor owns the keyboard while active.
	if m.currentScene == SceneParameters && m.parametersModel.Editing() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m, navigateCmd(SceneHelp)
		}

	case "esc":
		if m.currentScene != SceneHome {
			target := SceneHome
			if m.previousScene != m.currentScene {
				target = m.previousScene
			}
			return m, navigateCmd(target)
		}

	case "h":
		if m.currentScene != SceneHome {
			return m, navigateCmd(SceneHome)
		}

	case "p":
		if m.currentScene != SceneParameters {
			return m, navigateCmd(SceneParameters)
		}

	case "r":
		// Parameters uses r to reset its sliders.
		if m.currentScene != SceneResults && m.currentScene != SceneParameters {
			return m, navigateCmd(SceneResults)
		}

	case "c":
		if m.currentScene != SceneCompare {
			return m, navigateCmd(SceneCompare)
		}
	}

	return m.updateCurrentScene(msg)
}

func navigateCmd(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates a message to the active scene's model.
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}

	return m, cmd
}

// loadProfile rebuilds the projection input from a utility profile. An
// unknown or empty id keeps the model-utility defaults.
func (m *Model) loadProfile(id string) {
	input := defaultInput()

	if p, ok := reference.ProfileByID(id); ok {
		input.Name = p.Name
		input.ProfileID = p.ID
		input.Utility = reference.UtilityFromProfile(&p)
		input.DataCenter = reference.DataCenterForProfile(&p, input.Assumptions.Forecast)
	}

	m.input = input
	m.parametersModel.SetInput(input)
}

func (m *Model) propagateSize() {
	m.homeModel.SetSize(m.width, m.height)
	m.parametersModel.SetSize(m.width, m.height)
	m.resultsModel.SetSize(m.width, m.height)
	m.compareModel.SetSize(m.width, m.height)
}
