package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// SolverError describes a failed solver run.
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}

// HeadroomOptions bound the headroom search.
type HeadroomOptions struct {
	MaxIterations int
	ToleranceMW   decimal.Decimal
	UpperBoundMW  decimal.Decimal
}

// DefaultHeadroomOptions returns the standard search bounds: up to 20 GW,
// 1 MW resolution.
func DefaultHeadroomOptions() HeadroomOptions {
	return HeadroomOptions{
		MaxIterations: 60,
		ToleranceMW:   decimalOne,
		UpperBoundMW:  decimal.NewFromInt(20000),
	}
}

// HeadroomResult reports the largest data-center capacity that keeps the
// final-year firm-scenario bill increase at or under the target percent.
type HeadroomResult struct {
	CapacityMW       decimal.Decimal `json:"capacityMW"`
	TargetIncrease   decimal.Decimal `json:"targetIncreasePct"`
	AchievedIncrease decimal.Decimal `json:"achievedIncreasePct"`
	Iterations       int             `json:"iterations"`
	Converged        bool            `json:"converged"`
	Note             string          `json:"note,omitempty"`
}

// HeadroomSolver binary-searches data-center capacity against the firm
// scenario.
type HeadroomSolver struct {
	Engine  *TrajectoryEngine
	Options HeadroomOptions
}

// NewHeadroomSolver creates a solver with default options.
func NewHeadroomSolver(engine *TrajectoryEngine) *HeadroomSolver {
	return &HeadroomSolver{Engine: engine, Options: DefaultHeadroomOptions()}
}

// Solve finds the maximum capacity whose firm-scenario final-year bill
// increase over baseline stays at or under targetPct. The increase is
// monotonic in capacity, so a plain bisection converges.
func (s *HeadroomSolver) Solve(ctx context.Context, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff, assumptions *domain.GlobalAssumptions, targetPct decimal.Decimal) (*HeadroomResult, error) {
	if targetPct.LessThan(decimalZero) {
		return nil, &SolverError{Operation: "headroom", Message: "target increase must not be negative"}
	}

	baseline := s.Engine.ProjectBaseline(utility, assumptions)
	baselineFinal := baseline.FinalBill()
	if !baselineFinal.GreaterThan(decimalZero) {
		return nil, &SolverError{Operation: "headroom", Message: "baseline final bill is zero; nothing to compare against"}
	}

	increaseAt := func(capacityMW decimal.Decimal) (decimal.Decimal, error) {
		probe := *dc
		probe.CapacityMW = capacityMW
		trajectory, err := s.Engine.ProjectScenario(ctx, domain.ScenarioUnoptimized, utility, &probe, tariff, assumptions)
		if err != nil {
			return decimalZero, err
		}
		return trajectory.FinalBill().Sub(baselineFinal).Div(baselineFinal).Mul(decimalHundred), nil
	}

	lo := decimalZero
	hi := s.Options.UpperBoundMW
	iterations := 0

	topIncrease, err := increaseAt(hi)
	if err != nil {
		return nil, &SolverError{Operation: "headroom", Message: "projection failed", Cause: err}
	}
	if topIncrease.LessThanOrEqual(targetPct) {
		return &HeadroomResult{
			CapacityMW:       hi,
			TargetIncrease:   targetPct,
			AchievedIncrease: topIncrease,
			Iterations:       1,
			Converged:        true,
			Note:             "upper bound not binding; larger capacities may also fit",
		}, nil
	}

	achieved := decimalZero
	for iterations < s.Options.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, &SolverError{Operation: "headroom", Message: "solve cancelled", Cause: ctx.Err()}
		default:
		}

		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		increase, err := increaseAt(mid)
		if err != nil {
			return nil, &SolverError{Operation: "headroom", Message: "projection failed", Cause: err}
		}

		if increase.LessThanOrEqual(targetPct) {
			lo = mid
			achieved = increase
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThan(s.Options.ToleranceMW) {
			return &HeadroomResult{
				CapacityMW:       lo,
				TargetIncrease:   targetPct,
				AchievedIncrease: achieved,
				Iterations:       iterations,
				Converged:        true,
			}, nil
		}
	}

	return &HeadroomResult{
		CapacityMW:       lo,
		TargetIncrease:   targetPct,
		AchievedIncrease: achieved,
		Iterations:       iterations,
		Converged:        false,
		Note:             "iteration budget exhausted before the tolerance was met",
	}, nil
}
