// Package domain defines the core types for the community energy
// bill-impact calculator: utilities, data centers, tariffs, trajectories,
// and the assumptions that drive projections.
package domain

import "fmt"

// ScenarioID identifies one of the four fixed projection scenarios.
// The set is closed; callers never extend it.
type ScenarioID string

const (
	ScenarioBaseline     ScenarioID = "baseline"
	ScenarioUnoptimized  ScenarioID = "unoptimized"
	ScenarioFlexible     ScenarioID = "flexible"
	ScenarioDispatchable ScenarioID = "dispatchable"
)

// Scenario describes a projection scenario for presentation layers.
type Scenario struct {
	ID          ScenarioID `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Color       string     `yaml:"color" json:"color"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
}

// ScenarioOrder is the canonical ordering used by reports and charts.
var ScenarioOrder = []ScenarioID{
	ScenarioBaseline,
	ScenarioUnoptimized,
	ScenarioFlexible,
	ScenarioDispatchable,
}

// ImpactScenarios are the scenarios that add data-center load on top of
// the baseline, in canonical order.
var ImpactScenarios = []ScenarioID{
	ScenarioUnoptimized,
	ScenarioFlexible,
	ScenarioDispatchable,
}

// ValidScenarioID reports whether id names one of the four scenarios.
func ValidScenarioID(id ScenarioID) bool {
	switch id {
	case ScenarioBaseline, ScenarioUnoptimized, ScenarioFlexible, ScenarioDispatchable:
		return true
	}
	return false
}

// ParseScenarioID converts a string to a ScenarioID or fails.
func ParseScenarioID(s string) (ScenarioID, error) {
	id := ScenarioID(s)
	if !ValidScenarioID(id) {
		return "", fmt.Errorf("unknown scenario %q", s)
	}
	return id, nil
}
