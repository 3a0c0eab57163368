package swarmstep_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/swarmstep"
	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/internal/testgrid"
	"github.com/katalvlaran/swarmstep/priority"
)

// The scenarios below are the concrete end-to-end cases named in spec.md's
// testable-properties section (S1-S6), one test per scenario.

// TestScenarioS1TurnToGoal: 4x4 empty grid, robot at (1,1) facing E, goal at
// (1,3), with obstacles at (1,2) and (2,2) forcing a detour. First action
// must be CCR (the forward cell is blocked, so the robot turns north before
// looping around); the full trajectory must reach the goal in <= 9 actions.
func TestScenarioS1TurnToGoal(t *testing.T) {
	const rows, cols = 4, 4
	g := testgrid.New(rows, cols,
		testgrid.WithObstacles(gridstate.PackCell(1, 2, cols), gridstate.PackCell(2, 2, cols)),
		testgrid.WithAgent(gridstate.PackCell(1, 1, cols), gridstate.East, gridstate.PackCell(1, 3, cols)),
	)

	cfg := swarmstep.DefaultConfig()
	cfg.RestartCount = 4
	p, err := swarmstep.New(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(time.Second))

	goal := gridstate.PackCell(1, 3, cols)
	cell, facing := g.AgentState(0)

	const maxActions = 9
	for i := 0; i < maxActions; i++ {
		actions, err := p.PlanTick(g, swarmstep.NoBudgetLimit)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		if i == 0 {
			assert.Equal(t, gridstate.CounterClockwiseTurn, actions[0], "first action must be CCR")
		}
		cell, facing = applyAction(cell, facing, actions[0], rows, cols)
		g.SetAgentState(0, cell, facing)
		if cell == goal {
			return
		}
	}
	t.Fatalf("robot did not reach goal within %d actions", maxActions)
}

// TestScenarioS2HeadOnDeadlock: 1x2 grid, two robots swapping places — a
// single-step swap is never feasible, so the first-tick actions must be
// [WAIT, WAIT]. With R=2 and restarts enabled, no permutation or restart
// makes progress possible, so the planner keeps returning all-WAIT.
func TestScenarioS2HeadOnDeadlock(t *testing.T) {
	const rows, cols = 1, 2
	g := testgrid.New(rows, cols,
		testgrid.WithAgent(gridstate.PackCell(0, 0, cols), gridstate.East, gridstate.PackCell(0, 1, cols)),
		testgrid.WithAgent(gridstate.PackCell(0, 1, cols), gridstate.West, gridstate.PackCell(0, 0, cols)),
	)

	cfg := swarmstep.DefaultConfig()
	cfg.ReplanningPeriod = 2
	cfg.TimeHorizon = 2
	cfg.Restarts = true
	cfg.RestartCount = 4
	p, err := swarmstep.New(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(time.Second))

	for tick := 0; tick < 4; tick++ {
		actions, err := p.PlanTick(g, swarmstep.NoBudgetLimit)
		require.NoError(t, err)
		require.Len(t, actions, 2)
		assert.Equal(t, gridstate.Wait, actions[0], "tick %d: robot 0 must wait, no feasible single-step swap", tick)
		assert.Equal(t, gridstate.Wait, actions[1], "tick %d: robot 1 must wait, no feasible single-step swap", tick)
	}
}

// TestScenarioS3OneGapStandoff: 1x3 grid, two robots approaching through the
// single shared middle cell. Neither can move without a head-on collision in
// that cell, so both must WAIT on the first tick.
func TestScenarioS3OneGapStandoff(t *testing.T) {
	const rows, cols = 1, 3
	g := testgrid.New(rows, cols,
		testgrid.WithAgent(gridstate.PackCell(0, 0, cols), gridstate.East, gridstate.PackCell(0, 2, cols)),
		testgrid.WithAgent(gridstate.PackCell(0, 2, cols), gridstate.West, gridstate.PackCell(0, 0, cols)),
	)

	cfg := swarmstep.DefaultConfig()
	cfg.RestartCount = 4
	p, err := swarmstep.New(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(time.Second))

	actions, err := p.PlanTick(g, swarmstep.NoBudgetLimit)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, gridstate.Wait, actions[0], "robot 0's only route crosses the single shared cell")
	assert.Equal(t, gridstate.Wait, actions[1], "robot 1's only route crosses the single shared cell")
}

// TestScenarioS4CrossJunction: a 4x4 grid with one robot crossing
// horizontally through row 1 and another crossing vertically through column
// 1; their paths intersect at (1,1). The planner must yield one of them (at
// least one WAIT somewhere along the run) and both must reach their goals
// within 20 ticks without ever colliding or swapping cells.
func TestScenarioS4CrossJunction(t *testing.T) {
	const rows, cols = 4, 4
	g := testgrid.New(rows, cols,
		testgrid.WithAgent(gridstate.PackCell(1, 0, cols), gridstate.East, gridstate.PackCell(1, 3, cols)),
		testgrid.WithAgent(gridstate.PackCell(0, 1, cols), gridstate.South, gridstate.PackCell(3, 1, cols)),
	)

	cfg := swarmstep.DefaultConfig()
	cfg.RestartCount = 6
	p, err := swarmstep.New(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(time.Second))

	type pose struct {
		cell   gridstate.Cell
		facing gridstate.Facing
	}
	before := []pose{
		{gridstate.PackCell(1, 0, cols), gridstate.East},
		{gridstate.PackCell(0, 1, cols), gridstate.South},
	}
	goals := []gridstate.Cell{
		gridstate.PackCell(1, 3, cols),
		gridstate.PackCell(3, 1, cols),
	}

	sawWait := false
	const maxTicks = 20
	for tick := 0; tick < maxTicks; tick++ {
		actions, err := p.PlanTick(g, swarmstep.NoBudgetLimit)
		require.NoError(t, err)
		require.Len(t, actions, 2)

		after := make([]pose, 2)
		for r, a := range actions {
			if a == gridstate.Wait {
				sawWait = true
			}
			cell, facing := applyAction(before[r].cell, before[r].facing, a, rows, cols)
			after[r] = pose{cell, facing}
		}

		assert.NotEqual(t, after[0].cell, after[1].cell, "tick %d: robots share a cell", tick)
		swapped := after[0].cell == before[1].cell && after[1].cell == before[0].cell
		assert.False(t, swapped, "tick %d: robots swapped cells head-on", tick)

		before = after
		g.SetAgentState(0, before[0].cell, before[0].facing)
		g.SetAgentState(1, before[1].cell, before[1].facing)

		if before[0].cell == goals[0] && before[1].cell == goals[1] {
			assert.True(t, sawWait, "the junction crossing must yield one robot via at least one WAIT")
			return
		}
	}
	t.Fatalf("robots did not both reach their goals within %d ticks", maxTicks)
}

// TestScenarioS5PrioritySensitiveDeadlock: a narrow 2x5 corridor whose only
// non-corridor cell is a single side-pocket at (1,2); two robots cross
// through it in opposite directions. With restarts enabled and a horizon
// generous enough to search the detour into the pocket, both robots reach
// their goals. With restarts disabled and too small a horizon to find that
// detour, the documented limitation holds: the planner returns WAIT instead
// of failing outright.
func TestScenarioS5PrioritySensitiveDeadlock(t *testing.T) {
	const rows, cols = 2, 5
	build := func() *testgrid.Grid {
		return testgrid.New(rows, cols,
			testgrid.WithObstacles(
				gridstate.PackCell(1, 0, cols), gridstate.PackCell(1, 1, cols),
				gridstate.PackCell(1, 3, cols), gridstate.PackCell(1, 4, cols),
			),
			testgrid.WithAgent(gridstate.PackCell(0, 0, cols), gridstate.East, gridstate.PackCell(0, 4, cols)),
			testgrid.WithAgent(gridstate.PackCell(0, 4, cols), gridstate.West, gridstate.PackCell(0, 0, cols)),
		)
	}

	t.Run("restart enabled with a generous horizon reaches both goals", func(t *testing.T) {
		g := build()
		cfg := swarmstep.DefaultConfig()
		cfg.TimeHorizon = 8
		cfg.ReplanningPeriod = 8
		cfg.Restarts = true
		cfg.RestartCount = 8
		p, err := swarmstep.New(cfg)
		require.NoError(t, err)
		require.NoError(t, p.Initialize(time.Second))

		type pose struct {
			cell   gridstate.Cell
			facing gridstate.Facing
		}
		before := []pose{
			{gridstate.PackCell(0, 0, cols), gridstate.East},
			{gridstate.PackCell(0, 4, cols), gridstate.West},
		}
		goals := []gridstate.Cell{gridstate.PackCell(0, 4, cols), gridstate.PackCell(0, 0, cols)}

		const maxTicks = 16
		for tick := 0; tick < maxTicks; tick++ {
			actions, err := p.PlanTick(g, swarmstep.NoBudgetLimit)
			require.NoError(t, err)

			after := make([]pose, 2)
			for r, a := range actions {
				cell, facing := applyAction(before[r].cell, before[r].facing, a, rows, cols)
				after[r] = pose{cell, facing}
			}
			assert.NotEqual(t, after[0].cell, after[1].cell, "tick %d: robots share a cell", tick)

			before = after
			g.SetAgentState(0, before[0].cell, before[0].facing)
			g.SetAgentState(1, before[1].cell, before[1].facing)

			if before[0].cell == goals[0] && before[1].cell == goals[1] {
				return
			}
		}
		t.Fatalf("robots did not both reach their goals within %d ticks", maxTicks)
	})

	t.Run("restarts disabled with too small a horizon degrades to WAIT", func(t *testing.T) {
		g := build()
		cfg := swarmstep.DefaultConfig()
		cfg.TimeHorizon = 2
		cfg.ReplanningPeriod = 2
		cfg.Restarts = false
		p, err := swarmstep.New(cfg)
		require.NoError(t, err)
		require.NoError(t, p.Initialize(time.Second))

		actions, err := p.PlanTick(g, swarmstep.NoBudgetLimit)
		require.NoError(t, err, "the documented limitation is a degraded WAIT tape, not an error")
		require.Len(t, actions, 2)
		assert.Contains(t, actions, gridstate.Wait, "too small a horizon without restarts cannot resolve the crossing")
	})
}

// TestScenarioS6StuckCellPreReservation exercises priority.Plan directly
// (the coordinator preReserveStuckCells sits in) rather than the full
// restart-driven facade, since the mechanism under test is a single-pass
// property of one coordinator call. Robot 1 sits at the grid's east edge
// facing east, so its forward cell is permanently out of bounds: it is idle
// (no goal), so it WAITs, and its current cell is pre-reserved for t=1 before
// any other robot plans. Robot 0 sits directly behind it, also facing east,
// with a goal that would be reachable one tick sooner if it could assume
// robot 1's cell was free at t=1. Because that cell is pre-reserved, robot
// 0's search must route around it instead of planning a path that silently
// depends on the stuck robot vacating — it still reaches its goal (a real
// FW shows up in its committed trajectory), it just never collides with
// robot 1's cell along the way.
func TestScenarioS6StuckCellPreReservation(t *testing.T) {
	const rows, cols = 2, 2
	stuckCell := gridstate.PackCell(0, 1, cols)
	g := testgrid.New(rows, cols,
		testgrid.WithAgent(gridstate.PackCell(0, 0, cols), gridstate.East, gridstate.PackCell(1, 1, cols)),
		testgrid.WithAgent(stuckCell, gridstate.East),
	)

	oracle, err := distance.NewOracle(distance.Manhattan, rows, cols, g.IsObstacle)
	require.NoError(t, err)

	const horizon = 6
	res, err := priority.Plan([]int{0, 1}, g, oracle, horizon, horizon, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.StuckCount, "robot 0 has a clear alternate route and must not be parked")

	// Robot 1 is idle, so it WAITs at t=1 automatically (and is not itself
	// counted as stuck, per the goal-fixpoint invariant).
	assert.Equal(t, gridstate.Wait, res.Tape.Row(0)[1])

	// Replay robot 0's committed trajectory and confirm it both reaches the
	// goal and never steps onto robot 1's (stationary) cell along the way.
	cell, facing := gridstate.PackCell(0, 0, cols), gridstate.East
	sawForward := false
	for t := 0; t < res.Tape.Rows; t++ {
		action := res.Tape.Row(t)[0]
		if action == gridstate.Forward {
			sawForward = true
		}
		cell, facing = applyAction(cell, facing, action, rows, cols)
		require.NotEqual(t, stuckCell, cell, "tick %d: robot 0 must never assume the stuck robot vacated its cell", t+1)
	}
	assert.True(t, sawForward, "robot 0 must still find a real forward move to its goal")
	assert.Equal(t, gridstate.PackCell(1, 1, cols), cell, "robot 0 must reach its goal")
}
