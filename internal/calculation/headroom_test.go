package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/domain"
)

func firmIncreaseAt(t *testing.T, engine *TrajectoryEngine, utility *domain.Utility, dc domain.DataCenter, assumptions *domain.GlobalAssumptions, capacityMW decimal.Decimal) decimal.Decimal {
	t.Helper()
	dc.CapacityMW = capacityMW
	baseline := engine.ProjectBaseline(utility, assumptions)
	firm, err := engine.ProjectScenario(context.Background(), domain.ScenarioUnoptimized, utility, &dc, nil, assumptions)
	require.NoError(t, err)
	return firm.FinalBill().Sub(baseline.FinalBill()).Div(baseline.FinalBill()).Mul(decimalHundred)
}

func TestHeadroomSolve(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	solver := NewHeadroomSolver(engine)
	target := decimal.NewFromInt(10)

	result, err := solver.Solve(context.Background(), &utility, &dc, nil, &assumptions, target)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.LessOrEqual(t, result.Iterations, solver.Options.MaxIterations)
	assert.True(t, result.CapacityMW.GreaterThan(decimalZero))
	assert.True(t, result.CapacityMW.LessThan(solver.Options.UpperBoundMW))
	assert.True(t, result.AchievedIncrease.LessThanOrEqual(target))
	assert.True(t, result.TargetIncrease.Equal(target))

	// The answer sits against the target: the found capacity fits, one
	// tolerance step above it does not.
	at := firmIncreaseAt(t, engine, &utility, dc, &assumptions, result.CapacityMW)
	assert.True(t, at.LessThanOrEqual(target), "found capacity exceeds target: %s", at)
	above := firmIncreaseAt(t, engine, &utility, dc, &assumptions, result.CapacityMW.Add(decimalOne))
	assert.True(t, above.GreaterThan(target), "capacity is not maximal: %s at +1 MW", above)
}

func TestHeadroomUpperBoundNotBinding(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	solver := NewHeadroomSolver(engine)

	// No realistic campus pushes bills up a thousand percent.
	result, err := solver.Solve(context.Background(), &utility, &dc, nil, &assumptions, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, result.CapacityMW.Equal(solver.Options.UpperBoundMW))
	assert.True(t, result.Converged)
	assert.Equal(t, 1, result.Iterations)
	assert.NotEmpty(t, result.Note)
}

func TestHeadroomNegativeTarget(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	solver := NewHeadroomSolver(engine)

	_, err := solver.Solve(context.Background(), &utility, &dc, nil, &assumptions, decimal.NewFromInt(-5))
	require.Error(t, err)

	var solverErr *SolverError
	require.ErrorAs(t, err, &solverErr)
	assert.Equal(t, "headroom", solverErr.Operation)
}

func TestHeadroomZeroBaseline(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	utility.AvgMonthlyBill = decimal.Zero
	solver := NewHeadroomSolver(engine)

	_, err := solver.Solve(context.Background(), &utility, &dc, nil, &assumptions, decimal.NewFromInt(10))
	require.Error(t, err)

	var solverErr *SolverError
	assert.ErrorAs(t, err, &solverErr)
}

func TestHeadroomCancelled(t *testing.T) {
	engine := NewTrajectoryEngine()
	utility, dc, assumptions := defaultInputs()
	solver := NewHeadroomSolver(engine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solver.Solve(ctx, &utility, &dc, nil, &assumptions, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
