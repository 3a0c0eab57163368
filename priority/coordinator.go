package priority

import (
	"github.com/katalvlaran/swarmstep/actiontape"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/reservation"
)

// coordinator holds the state one Plan call threads through pre-reservation,
// per-robot planning, and conflict propagation.
type coordinator struct {
	table   *reservation.Table
	tape    *actiontape.Tape
	env     gridstate.Environment
	horizon int

	stuck        map[int]bool // every robot that ends this call not following a path
	doneParking  map[int]bool // robots whose self-reservation out to horizon is complete
	parkProgress map[int]int  // next t to attempt for a robot mid-parking
}

func newCoordinator(env gridstate.Environment, tape *actiontape.Tape, horizon int) *coordinator {
	return &coordinator{
		table:        reservation.New(),
		tape:         tape,
		env:          env,
		horizon:      horizon,
		stuck:        make(map[int]bool),
		doneParking:  make(map[int]bool),
		parkProgress: make(map[int]int),
	}
}

// park reserves robot's current cell for every t in [1, horizon], marking it
// stuck. If some other robot already owns a slot robot needs, that robot is
// itself parked first (its existing reservations revoked and its tape row
// reset to WAIT) before robot's attempt resumes — the conflict propagation
// cascade.
//
// Driven by an explicit stack rather than recursion: each robot's "resume
// from here" point is saved in parkProgress, so a chain of N cascading stops
// costs O(N) stack pushes total rather than O(N) Go call frames, and the
// doneParking guard makes a revisit (which the propagation graph's acyclic
// structure should never produce) a harmless no-op instead of an infinite
// loop.
func (c *coordinator) park(start int) {
	stack := []int{start}
	for len(stack) > 0 {
		r := stack[len(stack)-1]

		if c.doneParking[r] {
			stack = stack[:len(stack)-1]
			continue
		}
		if !c.stuck[r] {
			c.stuck[r] = true
			c.table.RevokeAllOf(r)
			c.tape.ResetRobot(r)
			c.parkProgress[r] = 1
		}

		cell, _ := c.env.AgentState(r)
		t := c.parkProgress[r]
		blockedBy := -1
		for ; t <= c.horizon; t++ {
			entry := reservation.Entry{Kind: reservation.CellEntry, Cell: cell, T: t}
			if owner, ok := c.table.OwnerOf(entry); ok && owner != r {
				blockedBy = owner
				break
			}
			_ = c.table.Reserve(cell, cell, t, r, false)
		}
		c.parkProgress[r] = t

		if blockedBy >= 0 {
			assertf(!c.doneParking[blockedBy], "park: robot %d revisited after its who-stopped-whom chain already finished", blockedBy)
			stack = append(stack, blockedBy)
			continue
		}
		c.doneParking[r] = true
		stack = stack[:len(stack)-1]
	}
}

// commitPath attempts to strictly reserve every step of path (starting at
// t=1 from startCell), then pads the remainder of the horizon by parking at
// the path's terminal cell. On any ErrReservationConflict the robot's
// reservations are rolled back and commitPath returns false, leaving the
// caller to fall back to park(robot).
func (c *coordinator) commitPath(robot int, startCell gridstate.Cell, path []gridstate.Pose) bool {
	prev := startCell
	for i, pose := range path {
		t := i + 1
		if t > c.horizon {
			break
		}
		if err := c.table.Reserve(prev, pose.Cell, t, robot, true); err != nil {
			c.table.RevokeAllOf(robot)
			return false
		}
		prev = pose.Cell
	}

	terminal := startCell
	if len(path) > 0 {
		terminal = path[len(path)-1].Cell
	}
	for t := len(path) + 1; t <= c.horizon; t++ {
		if err := c.table.Reserve(terminal, terminal, t, robot, true); err != nil {
			c.table.RevokeAllOf(robot)
			return false
		}
	}
	return true
}
