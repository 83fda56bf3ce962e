// Package transform provides composable edits to projection inputs.
// Transforms power scenario comparison and what-if tooling: each one
// copies the input, applies a single parameter change, and hands the
// result to the next in the chain.
package transform

import (
	"fmt"

	"github.com/gridbill/gridbill/internal/domain"
)

// ScenarioTransform is one composable edit to a projection input.
type ScenarioTransform interface {
	// Apply returns a new input with the edit applied. The base input is
	// never modified.
	Apply(base *domain.ProjectionInput) (*domain.ProjectionInput, error)

	// Name returns the short identifier used in specs and error messages
	// (e.g. "adjust_dc_mw").
	Name() string

	// Description returns a human-readable summary of the edit.
	Description() string

	// Validate checks the transform parameters against the base input
	// without applying anything.
	Validate(base *domain.ProjectionInput) error
}

// ApplyTransforms runs a sequence of transforms, each receiving the output
// of the previous one. Order matters: a later transform sees every earlier
// edit. The base input is left untouched.
func ApplyTransforms(base *domain.ProjectionInput, transforms []ScenarioTransform) (*domain.ProjectionInput, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, tf := range transforms {
		if tf == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := tf.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", tf.Name(), err)
		}

		next, err := tf.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", tf.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError reports a failure in a named transform step.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
