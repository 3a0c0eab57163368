package actiontape

import "github.com/katalvlaran/swarmstep/gridstate"

// Tape is the R x N grid of actions the coordinator populates and the outer
// simulator consumes one row at a time. Rows are time steps [0, Rows); the
// first real row committed to the simulator is Row(0).
type Tape struct {
	Rows int
	N    int

	actions [][]gridstate.Action // actions[t][robot]
}

// New returns a Tape of the given shape, every cell initialized to Wait.
// Complexity: O(Rows*N).
func New(rows, n int) *Tape {
	actions := make([][]gridstate.Action, rows)
	for t := range actions {
		row := make([]gridstate.Action, n)
		for i := range row {
			row[i] = gridstate.Wait
		}
		actions[t] = row
	}
	return &Tape{Rows: rows, N: n, actions: actions}
}

// Row returns the action vector for time step t, one entry per robot.
// Complexity: O(1).
func (tp *Tape) Row(t int) []gridstate.Action {
	return tp.actions[t]
}

// Set overwrites the single (t, robot) cell. Exposed so coordinators can
// write the "stopped robot" WAIT overlay (§4.D.i) without re-deriving it
// through EncodePath.
// Complexity: O(1).
func (tp *Tape) Set(t, robot int, a gridstate.Action) {
	tp.actions[t][robot] = a
}

// ResetRobot overwrites every row of robot's column with Wait. Used when
// conflict propagation stops a robot and its previously-committed plan must
// be voided from the tape.
// Complexity: O(Rows).
func (tp *Tape) ResetRobot(robot int) {
	for t := 0; t < tp.Rows; t++ {
		tp.actions[t][robot] = gridstate.Wait
	}
}

// TotalLength returns the number of non-Wait cells across the whole tape, the
// "total path length" metric the coordinators and restart driver score on.
// Complexity: O(Rows*N).
func (tp *Tape) TotalLength() int {
	total := 0
	for t := 0; t < tp.Rows; t++ {
		for _, a := range tp.actions[t] {
			if a != gridstate.Wait {
				total++
			}
		}
	}
	return total
}

// Clone returns a deep copy, used by the restart driver to snapshot a
// candidate tape before trying the next permutation.
// Complexity: O(Rows*N).
func (tp *Tape) Clone() *Tape {
	out := New(tp.Rows, tp.N)
	for t := 0; t < tp.Rows; t++ {
		copy(out.actions[t], tp.actions[t])
	}
	return out
}
