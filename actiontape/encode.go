package actiontape

import "github.com/katalvlaran/swarmstep/gridstate"

// EncodePath writes robot's trajectory into tp, one row per step, starting
// from row 0. start is the robot's pose before the first planned step (it is
// never itself written — only the deltas from it are). Rows beyond
// len(path) are left untouched (i.e. Wait, as New initializes every row),
// and path entries beyond tp.Rows are silently dropped: a coordinator never
// plans further than the tape it owns.
// Complexity: O(min(len(path), tp.Rows)).
func EncodePath(tp *Tape, robot int, start gridstate.Pose, path []gridstate.Pose) {
	prev := start
	limit := len(path)
	if limit > tp.Rows {
		limit = tp.Rows
	}
	for i := 0; i < limit; i++ {
		cur := path[i]
		tp.actions[i][robot] = actionFor(prev, cur)
		prev = cur
	}
}

// actionFor classifies the single action that explains the transition from
// prev to cur: a cell change is always Forward (rotations never move the
// robot); otherwise the signed facing delta mod 4 picks the turn direction.
func actionFor(prev, cur gridstate.Pose) gridstate.Action {
	if cur.Cell != prev.Cell {
		return gridstate.Forward
	}
	delta := ((int(cur.Facing) - int(prev.Facing)) % 4 + 4) % 4
	switch delta {
	case 1:
		return gridstate.ClockwiseTurn
	case 3:
		return gridstate.CounterClockwiseTurn
	default:
		return gridstate.Wait
	}
}
