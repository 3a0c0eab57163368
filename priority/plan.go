package priority

import (
	"github.com/katalvlaran/swarmstep/actiontape"
	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/spacetime"
)

// Plan runs one priority-coordinator pass: robots plan in the given order,
// each committing its reservations before the next robot plans against them.
// fixStuck names robots that were stuck on the previous iteration (nil is
// equivalent to empty); those robots get a two-tick pre-reservation budget
// instead of one, encoding "this robot is likely still there next tick."
//
// period sizes the emitted action tape (the caller only ever consumes
// period rows before the next full replan); horizon is how far every path
// is searched, reserved, and padded, independent of how much of that gets
// handed back this call. period must be positive and at most horizon.
//
// Complexity: O(N) single-agent plans plus O(N^2) for the pre-reservation
// occupancy scan (each robot checks every other robot's current cell once).
func Plan(order []int, env gridstate.Environment, oracle *distance.Oracle, horizon, period int, fixStuck map[int]bool) (*Result, error) {
	if horizon <= 0 {
		return nil, ErrInvalidHorizon
	}
	if period <= 0 || period > horizon {
		return nil, ErrInvalidPeriod
	}
	n := env.NumAgents()
	if len(order) != n {
		return nil, ErrOrderLength
	}

	tape := actiontape.New(period, n)
	c := newCoordinator(env, tape, horizon)

	preReserveStuckCells(c, env, horizon, fixStuck)

	for _, robot := range order {
		goals := env.AgentGoals(robot)
		cell, facing := env.AgentState(robot)

		if len(goals) == 0 {
			// An idle robot holds its cell the same way a path-less robot
			// does, stopping whoever already claimed it, but is not stuck.
			c.park(robot)
			delete(c.stuck, robot)
			continue
		}

		path, err := spacetime.Plan(spacetime.Request{
			Start:       cell,
			StartFacing: facing,
			Goal:        goals[0],
			Robot:       robot,
			Table:       c.table,
			Env:         env,
			Oracle:      oracle,
			Horizon:     horizon,
		})
		if err == nil && c.commitPath(robot, cell, path) {
			actiontape.EncodePath(tape, robot, gridstate.Pose{Cell: cell, Facing: facing}, path)
			continue
		}

		c.park(robot)
	}

	return newResult(tape, c.stuck), nil
}

// preReserveStuckCells pre-reserves a robot's own cell when it cannot move: a robot whose
// forward cell is an obstacle, or currently occupied by another robot, gets
// its own current cell reserved ahead of time — one tick normally, two if the
// robot was stuck on the previous iteration.
func preReserveStuckCells(c *coordinator, env gridstate.Environment, horizon int, fixStuck map[int]bool) {
	n := env.NumAgents()
	for robot := 0; robot < n; robot++ {
		cell, facing := env.AgentState(robot)
		ahead, inBounds := gridstate.ForwardCell(cell, facing, env.Rows(), env.Cols())

		blocked := !inBounds || env.IsObstacle(ahead)
		if !blocked && inBounds {
			blocked = occupiedByOther(env, ahead, robot)
		}
		if !blocked {
			continue
		}

		tmax := 1
		if fixStuck[robot] {
			tmax = 2
		}
		for t := 1; t <= tmax && t <= horizon; t++ {
			_ = c.table.Reserve(cell, cell, t, robot, false)
		}
	}
}

func occupiedByOther(env gridstate.Environment, cell gridstate.Cell, robot int) bool {
	for i := 0; i < env.NumAgents(); i++ {
		if i == robot {
			continue
		}
		c, _ := env.AgentState(i)
		if c == cell {
			return true
		}
	}
	return false
}
