package spacetime

import (
	"container/heap"

	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/reservation"
)

// Request bundles everything one Plan call needs. Table and Oracle are shared
// across many Plan calls within a single coordinator pass; Plan never mutates
// Oracle and only reads Table (reservation commits are the coordinator's job).
type Request struct {
	Start       gridstate.Cell
	StartFacing gridstate.Facing
	Goal        gridstate.Cell
	Robot       int
	Table       *reservation.Table
	Env         gridstate.Environment
	Oracle      *distance.Oracle
	Horizon     int
}

// Plan runs a time-expanded A* search from (Start, StartFacing) to Goal,
// respecting every reservation already committed in Table, and returns the
// trajectory as an ordered list of poses starting at step 1 (the start pose
// itself is never included — it models "where the robot already is").
//
// Returns ErrNoReachablePath if the goal cannot be reached within Horizon
// ticks without a reservation conflict.
// Complexity: O(B log B) where B bounds the number of (pose, g) pairs
// reachable within Horizon — at most 4 * rows * cols * Horizon.
func Plan(req Request) ([]gridstate.Pose, error) {
	if req.Horizon <= 0 {
		return nil, ErrInvalidHorizon
	}

	rows, cols := req.Env.Rows(), req.Env.Cols()
	start := gridstate.Pose{Cell: req.Start, Facing: req.StartFacing}

	open := make(nodeQueue, 0, 64)
	heap.Init(&open)
	startH := req.Oracle.Heuristic(req.Start, req.StartFacing, req.Goal)
	heap.Push(&open, &node{pose: start, g: 0, f: startH, h: startH})

	closed := make(map[closedKey]bool)
	parent := make(map[closedKey]*node)

	var seq int // monotonically increasing tiebreak for deterministic pop order

	for open.Len() > 0 {
		cur := heap.Pop(&open).(*node)
		ck := closedKey{pose: cur.pose.Key(), g: cur.g}
		if closed[ck] {
			continue
		}
		closed[ck] = true

		if cur.pose.Cell == req.Goal {
			return reconstruct(cur, parent), nil
		}
		if cur.g >= req.Horizon {
			continue
		}

		for _, succ := range successors(cur.pose, rows, cols, req.Env) {
			t := cur.g + 1
			if req.Table.IsBlocked(cur.pose.Cell, succ.Cell, t, req.Robot) {
				continue
			}
			sk := closedKey{pose: succ.Key(), g: t}
			if closed[sk] {
				continue
			}
			h := req.Oracle.Heuristic(succ.Cell, succ.Facing, req.Goal)
			seq++
			n := &node{pose: succ, g: t, f: t + h, h: h, tie: seq}
			parent[sk] = cur
			heap.Push(&open, n)
		}
	}

	return nil, ErrNoReachablePath
}

// successors returns the up-to-four poses reachable from pose in one action:
// rotate-CW, rotate-CCW, forward (only if the cell ahead is in-bounds and not
// an obstacle), and WAIT (staying at the same pose).
func successors(pose gridstate.Pose, rows, cols int, env gridstate.Environment) []gridstate.Pose {
	out := make([]gridstate.Pose, 0, 4)
	out = append(out, gridstate.Pose{Cell: pose.Cell, Facing: pose.Facing.Clockwise()})
	out = append(out, gridstate.Pose{Cell: pose.Cell, Facing: pose.Facing.CounterClockwise()})
	if ahead, ok := gridstate.ForwardCell(pose.Cell, pose.Facing, rows, cols); ok && !env.IsObstacle(ahead) {
		out = append(out, gridstate.Pose{Cell: ahead, Facing: pose.Facing})
	}
	out = append(out, pose) // WAIT
	return out
}

// reconstruct walks parent pointers back from the goal node to (but
// excluding) the start node, then reverses the result into step order.
func reconstruct(goal *node, parent map[closedKey]*node) []gridstate.Pose {
	var reversed []gridstate.Pose
	cur := goal
	for {
		ck := closedKey{pose: cur.pose.Key(), g: cur.g}
		p, ok := parent[ck]
		if !ok {
			break // reached the start node; stop before including it
		}
		reversed = append(reversed, cur.pose)
		cur = p
	}
	path := make([]gridstate.Pose, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// closedKey identifies a (pose, elapsed-time) node for closed-set and parent
// lookups, matching the Data Model's ((c*4+o), g) key.
type closedKey struct {
	pose gridstate.PoseKey
	g    int
}

// node is one entry in the open list.
type node struct {
	pose gridstate.Pose
	g    int
	f    int
	h    int // heuristic value alone; breaks f-ties before falling back to tie
	tie  int // insertion order; breaks (f, h)-ties deterministically (FIFO among equals)
}

// nodeQueue is a min-heap over (node.f, node.h, node.tie), so Plan's output
// is deterministic given identical inputs: an f-tie prefers the node closer
// to the goal by heuristic alone, and only a true (f, h)-tie falls back to
// insertion order.
type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].tie < q[j].tie
}
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*node)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
