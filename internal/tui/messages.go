// Package tui is the interactive terminal front end: pick a utility,
// turn the campus knobs, and watch the bill trajectories move.
package tui

// Scene identifies a screen in the TUI.
type Scene int

const (
	SceneHome Scene = iota
	SceneParameters
	SceneResults
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene.
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneParameters:
		return "Parameters"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene.
type NavigateMsg struct {
	Scene Scene
}
