package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
	"github.com/gridbill/gridbill/internal/tui/scenes"
	"github.com/gridbill/gridbill/internal/tui/tuimsg"
)

// Model is the root application state: the active scene, the projection
// input being edited, and the latest projection results.
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine *calculation.TrajectoryEngine
	input  *domain.ProjectionInput

	set     *domain.TrajectorySet
	summary *domain.SummaryStats

	calculating bool
	err         error

	homeModel       *scenes.HomeModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel
}

// NewModel creates the application model. A nil input starts from the
// model-utility defaults.
func NewModel(input *domain.ProjectionInput) Model {
	if input == nil {
		input = defaultInput()
	}

	m := Model{
		currentScene:    SceneHome,
		width:           80,
		height:          24,
		engine:          calculation.NewTrajectoryEngine(),
		input:           input,
		homeModel:       scenes.NewHomeModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
	}
	m.parametersModel.SetInput(input)
	return m
}

// Init kicks off the first projection so the results scene has data as
// soon as the user reaches it.
func (m Model) Init() tea.Cmd {
	return projectCmd(m.engine, m.input)
}

func defaultInput() *domain.ProjectionInput {
	return &domain.ProjectionInput{
		Utility:     reference.DefaultUtility(),
		DataCenter:  reference.DefaultDataCenter(),
		Assumptions: reference.DefaultAssumptions(),
	}
}

// projectCmd runs the four-scenario projection off the update loop. The
// input is snapshotted so slider edits during a run cannot race it.
func projectCmd(engine *calculation.TrajectoryEngine, input *domain.ProjectionInput) tea.Cmd {
	snapshot := input.DeepCopy()

	return func() tea.Msg {
		var largeLoad *domain.Tariff
		if snapshot.TariffID != "" {
			if t, ok := tariff.ByID(snapshot.TariffID); ok {
				largeLoad = &t
			}
		}

		set, err := engine.ProjectAll(context.Background(),
			&snapshot.Utility, &snapshot.DataCenter, largeLoad, &snapshot.Assumptions)
		if err != nil {
			return tuimsg.ProjectionCompleteMsg{Err: err}
		}

		summary := engine.SummarizeTrajectories(set, &snapshot.Utility, &snapshot.DataCenter, largeLoad)
		return tuimsg.ProjectionCompleteMsg{Set: set, Summary: summary}
	}
}
