package gridstate

import "fmt"

// Cell is a single grid cell index: row*cols + col, packed into a 32-bit int
// per the wire contract the outer simulator and this planner agree on.
type Cell int32

// RowCol unpacks a Cell into (row, col) given the grid's column count.
// Complexity: O(1).
func RowCol(c Cell, cols int) (row, col int) {
	row = int(c) / cols
	col = int(c) % cols
	return row, col
}

// PackCell packs (row, col) back into a Cell given the grid's column count.
// Complexity: O(1).
func PackCell(row, col, cols int) Cell {
	return Cell(row*cols + col)
}

// Facing is one of the four cardinal directions a robot can face.
// The integer values are the wire contract: East=0, South=1, West=2, North=3.
type Facing uint8

// Recognized facings, in wire order.
const (
	East Facing = iota
	South
	West
	North
)

// String renders a Facing for logs and test failure messages.
func (f Facing) String() string {
	switch f {
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	case North:
		return "N"
	default:
		return fmt.Sprintf("Facing(%d)", uint8(f))
	}
}

// Clockwise returns the facing one rotate-CW step away.
// Complexity: O(1).
func (f Facing) Clockwise() Facing {
	return Facing((uint8(f) + 1) % 4)
}

// CounterClockwise returns the facing one rotate-CCW step away.
// Complexity: O(1).
func (f Facing) CounterClockwise() Facing {
	return Facing((uint8(f) + 3) % 4)
}

// Opposite returns the facing 180 degrees from f; used by the distance oracle
// to walk a forward edge backwards during reverse expansion.
// Complexity: O(1).
func (f Facing) Opposite() Facing {
	return Facing((uint8(f) + 2) % 4)
}

// rowDelta/colDelta give the (dRow, dCol) a forward move takes for each facing,
// indexed by Facing's wire value. East moves +col, South moves +row, West
// moves -col, North moves -row — the forward-successor rule from the external
// interface contract.
var rowDelta = [4]int{0, 1, 0, -1}
var colDelta = [4]int{1, 0, -1, 0}

// ForwardCell returns the cell one forward-step away from (c, f) in a rows x
// cols grid, and whether that step stays in bounds. It does not consult any
// obstacle predicate; callers combine this with Environment.IsObstacle.
// Complexity: O(1).
func ForwardCell(c Cell, f Facing, rows, cols int) (Cell, bool) {
	row, col := RowCol(c, cols)
	row += rowDelta[f]
	col += colDelta[f]
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return 0, false
	}
	return PackCell(row, col, cols), true
}

// Action is one of the four moves a robot can be commanded to perform on a
// tick. The integer values are the wire contract the outer simulator expects:
// Forward=0, ClockwiseTurn=1, CounterClockwiseTurn=2, Wait=3.
type Action uint8

// Recognized actions, in wire order.
const (
	Forward Action = iota
	ClockwiseTurn
	CounterClockwiseTurn
	Wait
)

// String renders an Action for logs and test failure messages.
func (a Action) String() string {
	switch a {
	case Forward:
		return "FW"
	case ClockwiseTurn:
		return "CR"
	case CounterClockwiseTurn:
		return "CCR"
	case Wait:
		return "WAIT"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Pose is a (cell, facing) pair: one spatial-rotational node.
type Pose struct {
	Cell   Cell
	Facing Facing
}

// PoseKey is the packed fingerprint of a Pose: cell*4 + facing. Two poses
// collide (share a cell) iff their keys agree modulo 4's worth of facing bits
// — in practice callers compare Pose.Cell directly for collision checks and
// use PoseKey only as a unique map key for search/closed-set bookkeeping.
type PoseKey int64

// Key packs p into its PoseKey.
// Complexity: O(1).
func (p Pose) Key() PoseKey {
	return PoseKey(p.Cell)*4 + PoseKey(p.Facing)
}

// Environment is the read-only view of simulator state the planner consumes
// for one tick. Implementations MUST be stable for the duration of a single
// PlanTick call: the planner never mutates through this interface and never
// retains a reference across ticks.
type Environment interface {
	// Rows and Cols give the grid dimensions.
	Rows() int
	Cols() int

	// IsObstacle reports whether c is permanently impassable.
	IsObstacle(c Cell) bool

	// NumAgents returns the number of robots, N. Robot ids are [0, N).
	NumAgents() int

	// AgentState returns robot's current cell and facing.
	AgentState(robot int) (Cell, Facing)

	// AgentGoals returns robot's goal queue; the first element, if any, is the
	// active target cell. An empty or nil slice means the robot is idle.
	AgentGoals(robot int) []Cell
}
