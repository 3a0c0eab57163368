package bfswalk

import "github.com/katalvlaran/swarmstep/gridstate"

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	cell  gridstate.Cell
	depth int
}

// walker encapsulates mutable BFS state, mirroring lvlath's bfs.walker.
type walker struct {
	rows, cols int
	isObstacle func(gridstate.Cell) bool
	queue      []queueItem
	visited    map[gridstate.Cell]bool
	dist       map[gridstate.Cell]int
}

// CellDistances returns, for every cell reachable from source without
// crossing an obstacle, the minimum number of 4-connected cell-to-cell
// moves needed to reach it. Unreachable cells are absent from the result.
// Complexity: O(rows*cols).
func CellDistances(rows, cols int, isObstacle func(gridstate.Cell) bool, source gridstate.Cell) map[gridstate.Cell]int {
	w := &walker{
		rows:       rows,
		cols:       cols,
		isObstacle: isObstacle,
		visited:    make(map[gridstate.Cell]bool),
		dist:       make(map[gridstate.Cell]int),
	}
	w.enqueue(source, 0)
	w.loop()
	return w.dist
}

func (w *walker) enqueue(c gridstate.Cell, depth int) {
	w.visited[c] = true
	w.dist[c] = depth
	w.queue = append(w.queue, queueItem{cell: c, depth: depth})
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]

		for f := gridstate.Facing(0); f < 4; f++ {
			next, ok := gridstate.ForwardCell(cur.cell, f, w.rows, w.cols)
			if !ok || w.isObstacle(next) || w.visited[next] {
				continue
			}
			w.enqueue(next, cur.depth+1)
		}
	}
}
