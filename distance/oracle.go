package distance

import (
	"container/heap"
	"sync"

	"github.com/katalvlaran/swarmstep/gridstate"
)

// Oracle answers heuristic(cell, facing, goal) queries for one fixed grid
// topology. Topology (dimensions + obstacle predicate) is captured once at
// construction because it is static for the lifetime of a run, which is what
// lets distance maps accumulate safely across ticks as goal cells repeat.
type Oracle struct {
	kind       Kind
	rows, cols int
	isObstacle func(gridstate.Cell) bool

	mu   sync.Mutex
	maps map[gridstate.Cell]*reverseMap
}

// NewOracle returns an Oracle for a rows x cols grid. isObstacle must be safe
// for concurrent use; it is only ever called while expanding a reverseMap.
func NewOracle(kind Kind, rows, cols int, isObstacle func(gridstate.Cell) bool) (*Oracle, error) {
	if kind != Manhattan && kind != TrueDistance {
		return nil, ErrUnknownKind
	}
	return &Oracle{
		kind:       kind,
		rows:       rows,
		cols:       cols,
		isObstacle: isObstacle,
		maps:       make(map[gridstate.Cell]*reverseMap),
	}, nil
}

// Kind reports which heuristic family this Oracle computes.
func (o *Oracle) Kind() Kind { return o.kind }

// Heuristic returns the estimated action count from (start, startFacing) to
// goal. For Manhattan this is O(1). For TrueDistance this may trigger (or
// resume) a reverse expansion from goal; once a (cell, facing) is settled the
// result is exact and is never recomputed.
func (o *Oracle) Heuristic(start gridstate.Cell, startFacing gridstate.Facing, goal gridstate.Cell) int {
	if o.kind == Manhattan {
		return manhattan(start, goal, o.cols)
	}
	return o.goalMap(goal).distanceTo(start, startFacing)
}

// goalMap returns the persisted reverseMap for goal, creating it on first use.
// The lock is held only for the lookup-or-insert; the (possibly long-running)
// expansion happens on the returned map's own mutex, so two goroutines
// querying different goals never contend on o.mu for long, and two goroutines
// asking for the same new goal at once both receive the one map created for it.
func (o *Oracle) goalMap(goal gridstate.Cell) *reverseMap {
	o.mu.Lock()
	rm, ok := o.maps[goal]
	if !ok {
		rm = newReverseMap(goal, o.rows, o.cols, o.isObstacle)
		o.maps[goal] = rm
	}
	o.mu.Unlock()
	return rm
}

// manhattan is the facing-agnostic cell distance.
func manhattan(a, b gridstate.Cell, cols int) int {
	ar, ac := gridstate.RowCol(a, cols)
	br, bc := gridstate.RowCol(b, cols)
	d := ar - br
	if d < 0 {
		d = -d
	}
	e := ac - bc
	if e < 0 {
		e = -e
	}
	return d + e
}

// reverseMap holds the persisted state of one goal's reverse best-first
// expansion: settled distances plus the still-open frontier. Mutating state
// (dist, open) is guarded by mu so concurrent queries for the same goal from
// parallel restart workers (§5) serialize instead of racing the heap.
type reverseMap struct {
	goal       gridstate.Cell
	rows, cols int
	isObstacle func(gridstate.Cell) bool

	mu   sync.Mutex
	dist map[gridstate.PoseKey]int
	open frontier
}

func newReverseMap(goal gridstate.Cell, rows, cols int, isObstacle func(gridstate.Cell) bool) *reverseMap {
	rm := &reverseMap{
		goal:       goal,
		rows:       rows,
		cols:       cols,
		isObstacle: isObstacle,
		dist:       make(map[gridstate.PoseKey]int),
	}
	// Seed the frontier: the goal itself, in all four facings, at distance 0.
	for f := gridstate.Facing(0); f < 4; f++ {
		pose := gridstate.Pose{Cell: goal, Facing: f}
		rm.dist[pose.Key()] = 0
		heap.Push(&rm.open, &frontierItem{pose: pose, dist: 0})
	}
	return rm
}

// distanceTo returns the settled distance from (c, f) to rm.goal, expanding
// the frontier only as far as necessary and persisting progress for the next
// call.
func (rm *reverseMap) distanceTo(c gridstate.Cell, f gridstate.Facing) int {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	target := gridstate.Pose{Cell: c, Facing: f}.Key()
	if d, ok := rm.dist[target]; ok {
		return d
	}

	for rm.open.Len() > 0 {
		item := heap.Pop(&rm.open).(*frontierItem)
		key := item.pose.Key()
		if settled, ok := rm.dist[key]; ok && settled != item.dist {
			continue // stale lazy-decrease-key entry; the real distance already won
		}
		rm.dist[key] = item.dist
		rm.expand(item.pose, item.dist)
		if key == target {
			return item.dist
		}
	}
	// Frontier exhausted without settling target: unreachable. Record it so a
	// repeated query doesn't re-walk the (already empty) heap.
	rm.dist[target] = unreachable
	return unreachable
}

// expand pushes every reverse-predecessor of (pose, dist) that isn't already
// settled. Predecessors are the reverse of the three real actions (forward,
// rotate-CW, rotate-CCW); WAIT never participates because it doesn't count
// toward the action distance.
func (rm *reverseMap) expand(pose gridstate.Pose, dist int) {
	// Reverse of a forward move: the predecessor stood one cell behind pose in
	// the direction opposite its facing, facing the same way.
	if back, ok := gridstate.ForwardCell(pose.Cell, pose.Facing.Opposite(), rm.rows, rm.cols); ok && !rm.isObstacle(back) {
		rm.offer(gridstate.Pose{Cell: back, Facing: pose.Facing}, dist+1)
	}
	// Reverse of a rotate-CW into pose: predecessor was facing CCW of pose.
	rm.offer(gridstate.Pose{Cell: pose.Cell, Facing: pose.Facing.CounterClockwise()}, dist+1)
	// Reverse of a rotate-CCW into pose: predecessor was facing CW of pose.
	rm.offer(gridstate.Pose{Cell: pose.Cell, Facing: pose.Facing.Clockwise()}, dist+1)
}

func (rm *reverseMap) offer(pose gridstate.Pose, dist int) {
	key := pose.Key()
	if _, ok := rm.dist[key]; ok {
		return // already settled; uniform edge costs mean the first settle won
	}
	heap.Push(&rm.open, &frontierItem{pose: pose, dist: dist})
	// Note: we deliberately do not pre-set rm.dist[key] here. It is only
	// finalized when popped off the heap in distanceTo, matching the "once a
	// node is popped its stored distance is final" invariant from the Data
	// Model — pushing is a tentative offer, popping is the commit.
}

// frontierItem is one pending (pose, tentative distance) pair.
type frontierItem struct {
	pose gridstate.Pose
	dist int
}

// frontier is a min-heap of *frontierItem ordered by dist ascending, using the
// same lazy-decrease-key discipline as lvlath's dijkstra.nodePQ: stale
// entries are skipped on pop rather than removed on push.
type frontier []*frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
