// Package tuimsg holds the messages scenes send up to the root model.
// Keeping them in a leaf package avoids an import cycle between the
// scenes and the tui package.
package tuimsg

import (
	"github.com/gridbill/gridbill/internal/domain"
)

// ErrorMsg surfaces an error to the user.
type ErrorMsg struct {
	Err error
}

// ProfileSelectedMsg signals a utility profile was picked on the home
// scene. An empty ID means the model defaults.
type ProfileSelectedMsg struct {
	ProfileID string
}

// RecalculateMsg asks the root model to rerun the projection with the
// current input.
type RecalculateMsg struct{}

// ProjectionStartedMsg signals a projection run has begun.
type ProjectionStartedMsg struct{}

// ProjectionCompleteMsg carries a finished projection run.
type ProjectionCompleteMsg struct {
	Set     *domain.TrajectorySet
	Summary *domain.SummaryStats
	Err     error
}
