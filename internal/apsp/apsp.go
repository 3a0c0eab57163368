package apsp

import (
	"math"

	"github.com/katalvlaran/swarmstep/gridstate"
)

// unreachable mirrors +Inf for an int-valued distance matrix: "no path yet".
const unreachable = math.MaxInt32 / 2

// CellDistances runs Floyd-Warshall over every cell of a rows x cols grid
// with 4-connectivity, excluding obstacles entirely (an obstacle cell has no
// edges at all, in or out). Returns dist[a][b] indexed by packed Cell value;
// unreachable pairs hold the unreachable sentinel.
// Complexity: O((rows*cols)^3) time — intended for small test grids only.
func CellDistances(rows, cols int, isObstacle func(gridstate.Cell) bool) [][]int {
	n := rows * cols
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			if i == j {
				dist[i][j] = 0
			} else {
				dist[i][j] = unreachable
			}
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := gridstate.PackCell(r, c, cols)
			if isObstacle(cell) {
				continue
			}
			for f := gridstate.Facing(0); f < 4; f++ {
				next, ok := gridstate.ForwardCell(cell, f, rows, cols)
				if !ok || isObstacle(next) {
					continue
				}
				dist[cell][next] = 1
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := dist[i][k]
			if ik >= unreachable {
				continue
			}
			for j := 0; j < n; j++ {
				if cand := ik + dist[k][j]; cand < dist[i][j] {
					dist[i][j] = cand
				}
			}
		}
	}

	return dist
}
