package priority_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/internal/testgrid"
	"github.com/katalvlaran/swarmstep/priority"
)

func TestPlanSingleRobotReachesGoal(t *testing.T) {
	env := testgrid.New(1, 3, testgrid.WithAgent(gridstate.PackCell(0, 0, 3), gridstate.East, gridstate.PackCell(0, 2, 3)))
	oracle, err := distance.NewOracle(distance.Manhattan, 1, 3, env.IsObstacle)
	require.NoError(t, err)

	res, err := priority.Plan([]int{0}, env, oracle, 5, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.StuckCount)
	assert.Equal(t, gridstate.Forward, res.Tape.Row(0)[0])
}

func TestPlanIdleRobotWaits(t *testing.T) {
	env := testgrid.New(2, 2, testgrid.WithAgent(gridstate.PackCell(0, 0, 2), gridstate.East))
	oracle, err := distance.NewOracle(distance.Manhattan, 2, 2, env.IsObstacle)
	require.NoError(t, err)

	res, err := priority.Plan([]int{0}, env, oracle, 3, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.StuckCount, "idle robots are not stuck, just goal-less")
	assert.Equal(t, gridstate.Wait, res.Tape.Row(0)[0])
}

func TestPlanConflictPropagationStopsLowerPriority(t *testing.T) {
	// Two robots in a 1x3 corridor: robot 0 (low priority) sits at the far
	// end and is idle; robot 1 (high priority, planned first) wants to move
	// into and through robot 0's cell. Robot 1 cannot actually pass through
	// an occupied cell, so it should end up waiting too, but robot 0 must
	// never be displaced from where it is simply by planning order.
	env := testgrid.New(1, 3,
		testgrid.WithAgent(gridstate.PackCell(0, 2, 3), gridstate.East), // robot 0, idle, at the far end
		testgrid.WithAgent(gridstate.PackCell(0, 0, 3), gridstate.East, gridstate.PackCell(0, 2, 3)), // robot 1 wants robot 0's cell
	)
	oracle, err := distance.NewOracle(distance.Manhattan, 1, 3, env.IsObstacle)
	require.NoError(t, err)

	res, err := priority.Plan([]int{1, 0}, env, oracle, 5, 5, nil)
	require.NoError(t, err)
	// Robot 0 never moved off its own cell in any row of the tape.
	for t := 0; t < res.Tape.Rows; t++ {
		assert.Equal(t, gridstate.Wait, res.Tape.Row(t)[0])
	}
}

func TestPlanRejectsMismatchedOrderLength(t *testing.T) {
	env := testgrid.New(1, 1, testgrid.WithAgent(gridstate.PackCell(0, 0, 1), gridstate.East))
	oracle, err := distance.NewOracle(distance.Manhattan, 1, 1, env.IsObstacle)
	require.NoError(t, err)

	_, err = priority.Plan([]int{0, 1}, env, oracle, 3, 3, nil)
	assert.ErrorIs(t, err, priority.ErrOrderLength)
}

func TestPlanRejectsInvalidHorizon(t *testing.T) {
	env := testgrid.New(1, 1, testgrid.WithAgent(gridstate.PackCell(0, 0, 1), gridstate.East))
	oracle, err := distance.NewOracle(distance.Manhattan, 1, 1, env.IsObstacle)
	require.NoError(t, err)

	_, err = priority.Plan([]int{0}, env, oracle, 0, 0, nil)
	assert.ErrorIs(t, err, priority.ErrInvalidHorizon)
}

func TestPlanRejectsPeriodExceedingHorizon(t *testing.T) {
	env := testgrid.New(1, 1, testgrid.WithAgent(gridstate.PackCell(0, 0, 1), gridstate.East))
	oracle, err := distance.NewOracle(distance.Manhattan, 1, 1, env.IsObstacle)
	require.NoError(t, err)

	_, err = priority.Plan([]int{0}, env, oracle, 3, 4, nil)
	assert.ErrorIs(t, err, priority.ErrInvalidPeriod)
}

func TestPlanTapeSizedToPeriodNotHorizon(t *testing.T) {
	env := testgrid.New(1, 3, testgrid.WithAgent(gridstate.PackCell(0, 0, 3), gridstate.East, gridstate.PackCell(0, 2, 3)))
	oracle, err := distance.NewOracle(distance.Manhattan, 1, 3, env.IsObstacle)
	require.NoError(t, err)

	res, err := priority.Plan([]int{0}, env, oracle, 5, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Tape.Rows)
}
