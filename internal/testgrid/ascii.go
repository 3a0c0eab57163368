package testgrid

import (
	"fmt"

	"github.com/katalvlaran/swarmstep/gridstate"
)

// Rune legend for FromASCII, row-major like lvlath builder's Grid(rows, cols)
// vertex scheme: '.' free, '#' obstacle, and one of E/S/W/N marks a robot
// starting pose facing that direction. Robots are numbered in the order they
// are encountered scanning top-to-bottom, left-to-right.
const (
	freeRune     = '.'
	obstacleRune = '#'
)

// FromASCII parses rows (all equal length) into a Grid. Goal queues are empty
// after parsing; set them with SetGoals. Returns an error for a ragged map,
// an empty map, or an unrecognized rune — never panics, since map literals
// are test data that can legitimately come from a table-driven case.
func FromASCII(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("testgrid: empty map")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("testgrid: empty first row")
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("testgrid: row %d has length %d, want %d", i, len(row), cols)
		}
	}

	g := &Grid{
		rows:      len(rows),
		cols:      cols,
		obstacles: make(map[gridstate.Cell]bool),
	}

	for r, row := range rows {
		for c, ch := range row {
			cell := gridstate.PackCell(r, c, cols)
			switch ch {
			case freeRune:
				// nothing to record
			case obstacleRune:
				g.obstacles[cell] = true
			case 'E', 'S', 'W', 'N':
				g.agents = append(g.agents, agentState{cell: cell, facing: runeFacing(ch)})
			default:
				return nil, fmt.Errorf("testgrid: unrecognized rune %q at row %d col %d", ch, r, c)
			}
		}
	}
	return g, nil
}

func runeFacing(ch rune) gridstate.Facing {
	switch ch {
	case 'E':
		return gridstate.East
	case 'S':
		return gridstate.South
	case 'W':
		return gridstate.West
	default:
		return gridstate.North
	}
}
