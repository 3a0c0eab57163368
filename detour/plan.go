package detour

import (
	"context"
	"time"

	"github.com/katalvlaran/swarmstep/actiontape"
	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/reservation"
	"github.com/katalvlaran/swarmstep/spacetime"
)

// state threads through both sweep phases.
type state struct {
	ctx       context.Context
	env       gridstate.Environment
	oracle    *distance.Oracle
	horizon   int
	table     *reservation.Table
	tape      *actiontape.Tape
	committed []bool
	idle      []bool
	paths     [][]gridstate.Pose
	deadline  time.Time
	noBudget  bool
}

// Plan runs one detour-coordinator pass. A zero budget means "no wall-clock
// limit" (both sweeps run to their natural fixpoint); a nil ctx is treated as
// context.Background(). Either an expired budget or a cancelled ctx stops a
// sweep early, following the cancellation idiom the teacher's bfs package
// uses (check before each unit of work, return what's accumulated so far).
// period sizes the emitted action tape; horizon is how far every path is
// searched, reserved, and padded. period must be positive and at most
// horizon.
func Plan(ctx context.Context, order []int, env gridstate.Environment, oracle *distance.Oracle, horizon, period int, budget time.Duration) (*Result, error) {
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
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:       ctx,
		env:       env,
		oracle:    oracle,
		horizon:   horizon,
		table:     reservation.New(),
		tape:      actiontape.New(period, n),
		committed: make([]bool, n),
		idle:      make([]bool, n),
		paths:     make([][]gridstate.Pose, n),
		noBudget:  budget <= 0,
	}
	if !s.noBudget {
		s.deadline = time.Now().Add(budget)
	}

	for robot := 0; robot < n; robot++ {
		cell, _ := env.AgentState(robot)
		for t := 1; t <= horizon; t++ {
			_ = s.table.Reserve(cell, cell, t, robot, false)
		}
		if len(env.AgentGoals(robot)) == 0 {
			s.idle[robot] = true
			s.committed[robot] = true
		}
	}

	if s.findPathPhase(order) {
		s.improvePhase(order)
	}

	return newResult(s.tape, s.stuckSet()), nil
}

func (s *state) expired() bool {
	if s.ctx.Err() != nil {
		return true
	}
	return !s.noBudget && time.Now().After(s.deadline)
}

// stuckSet reports every non-idle robot that never committed a path.
func (s *state) stuckSet() map[int]bool {
	out := make(map[int]bool)
	for r, committed := range s.committed {
		if !committed && !s.idle[r] {
			out[r] = true
		}
	}
	return out
}

// findPathPhase sweeps order repeatedly, giving every uncommitted robot one
// attempt per sweep, until a full sweep commits nothing new or the budget
// expires. Returns false if the budget expired before the fixpoint.
func (s *state) findPathPhase(order []int) bool {
	for {
		progressed := false
		for _, robot := range order {
			if s.committed[robot] {
				continue
			}
			if s.tryCommit(robot) {
				progressed = true
			}
			if s.expired() {
				return false
			}
		}
		if !progressed {
			return true
		}
	}
}

// improvePhase sweeps committed robots repeatedly, replacing a path with a
// strictly shorter one when found, until a full sweep replaces nothing or
// the budget expires.
func (s *state) improvePhase(order []int) {
	for {
		progressed := false
		for _, robot := range order {
			if !s.committed[robot] || s.idle[robot] {
				continue
			}
			if s.tryImprove(robot) {
				progressed = true
			}
			if s.expired() {
				return
			}
		}
		if !progressed {
			return
		}
	}
}

// tryCommit attempts to plan and strictly commit a path for robot, which is
// currently parked on its own cell. It plans first (robot's own parking
// reservations never block its own search), then lifts that parking and
// commits strictly with rollback: on any conflict, the parking reservation
// is restored.
func (s *state) tryCommit(robot int) bool {
	cell, facing := s.env.AgentState(robot)
	goal := s.env.AgentGoals(robot)[0]

	path, err := spacetime.Plan(spacetime.Request{
		Start:       cell,
		StartFacing: facing,
		Goal:        goal,
		Robot:       robot,
		Table:       s.table,
		Env:         s.env,
		Oracle:      s.oracle,
		Horizon:     s.horizon,
	})
	if err != nil {
		return false
	}

	s.table.RevokeAllOf(robot)
	if !commitStrict(s.table, robot, cell, path, s.horizon) {
		reparkRobot(s.table, robot, cell, s.horizon)
		return false
	}

	actiontape.EncodePath(s.tape, robot, gridstate.Pose{Cell: cell, Facing: facing}, path)
	s.committed[robot] = true
	s.paths[robot] = path
	return true
}

// tryImprove looks for a strictly shorter path than robot's current one,
// swapping it in with the same commit-with-rollback discipline.
func (s *state) tryImprove(robot int) bool {
	cell, facing := s.env.AgentState(robot)
	goal := s.env.AgentGoals(robot)[0]
	current := s.paths[robot]

	s.table.RevokeAllOf(robot) // lift the current commitment so a shorter one isn't self-blocked

	path, err := spacetime.Plan(spacetime.Request{
		Start:       cell,
		StartFacing: facing,
		Goal:        goal,
		Robot:       robot,
		Table:       s.table,
		Env:         s.env,
		Oracle:      s.oracle,
		Horizon:     s.horizon,
	})
	if err != nil || len(path) >= len(current) {
		commitStrict(s.table, robot, cell, current, s.horizon) // restore; the original committed cleanly before
		return false
	}

	if !commitStrict(s.table, robot, cell, path, s.horizon) {
		commitStrict(s.table, robot, cell, current, s.horizon)
		return false
	}

	actiontape.EncodePath(s.tape, robot, gridstate.Pose{Cell: cell, Facing: facing}, path)
	s.paths[robot] = path
	return true
}

// commitStrict reserves every step of path strictly, then parks at the
// terminal cell for the remainder of the horizon. On any conflict it rolls
// back robot's reservations entirely and returns false.
func commitStrict(table *reservation.Table, robot int, startCell gridstate.Cell, path []gridstate.Pose, horizon int) bool {
	prev := startCell
	for i, pose := range path {
		t := i + 1
		if t > horizon {
			break
		}
		if err := table.Reserve(prev, pose.Cell, t, robot, true); err != nil {
			table.RevokeAllOf(robot)
			return false
		}
		prev = pose.Cell
	}
	terminal := startCell
	if len(path) > 0 {
		terminal = path[len(path)-1].Cell
	}
	for t := len(path) + 1; t <= horizon; t++ {
		if err := table.Reserve(terminal, terminal, t, robot, true); err != nil {
			table.RevokeAllOf(robot)
			return false
		}
	}
	return true
}

// reparkRobot restores robot's parking reservation (non-strict: it is always
// safe, nothing else can legitimately hold robot's own current cell).
func reparkRobot(table *reservation.Table, robot int, cell gridstate.Cell, horizon int) {
	for t := 1; t <= horizon; t++ {
		_ = table.Reserve(cell, cell, t, robot, false)
	}
}
