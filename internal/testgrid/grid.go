package testgrid

import (
	"fmt"

	"github.com/katalvlaran/swarmstep/gridstate"
)

// agentState is one robot's current pose plus its pending goal queue.
type agentState struct {
	cell   gridstate.Cell
	facing gridstate.Facing
	goals  []gridstate.Cell
}

// Grid is a mutable, in-memory gridstate.Environment for tests. Zero value
// is not usable; construct with New or FromASCII.
type Grid struct {
	rows, cols int
	obstacles  map[gridstate.Cell]bool
	agents     []agentState
}

// Option configures a Grid at construction. Option constructors apply their
// arguments as given without validating them; only New panics, on
// non-positive dimensions.
type Option func(*Grid)

// WithObstacles marks the given cells impassable.
func WithObstacles(cells ...gridstate.Cell) Option {
	return func(g *Grid) {
		for _, c := range cells {
			g.obstacles[c] = true
		}
	}
}

// WithAgent appends one robot at cell, facing, with the given goal queue
// (may be empty for an idle robot). Robots are numbered in the order this
// option is applied.
func WithAgent(cell gridstate.Cell, facing gridstate.Facing, goals ...gridstate.Cell) Option {
	return func(g *Grid) {
		g.agents = append(g.agents, agentState{cell: cell, facing: facing, goals: goals})
	}
}

// New returns an empty rows x cols Grid with no obstacles or agents, then
// applies opts in order. Panics if rows or cols is not positive.
func New(rows, cols int, opts ...Option) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("testgrid: rows=%d cols=%d must both be positive", rows, cols))
	}
	g := &Grid{
		rows:      rows,
		cols:      cols,
		obstacles: make(map[gridstate.Cell]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rows implements gridstate.Environment.
func (g *Grid) Rows() int { return g.rows }

// Cols implements gridstate.Environment.
func (g *Grid) Cols() int { return g.cols }

// IsObstacle implements gridstate.Environment.
func (g *Grid) IsObstacle(c gridstate.Cell) bool { return g.obstacles[c] }

// NumAgents implements gridstate.Environment.
func (g *Grid) NumAgents() int { return len(g.agents) }

// AgentState implements gridstate.Environment.
func (g *Grid) AgentState(robot int) (gridstate.Cell, gridstate.Facing) {
	a := g.agents[robot]
	return a.cell, a.facing
}

// AgentGoals implements gridstate.Environment.
func (g *Grid) AgentGoals(robot int) []gridstate.Cell {
	return g.agents[robot].goals
}

// SetAgentState moves robot to (cell, facing) between planning calls, the way
// the outer simulator would after applying a committed action.
func (g *Grid) SetAgentState(robot int, cell gridstate.Cell, facing gridstate.Facing) {
	g.agents[robot].cell = cell
	g.agents[robot].facing = facing
}

// SetGoals replaces robot's goal queue.
func (g *Grid) SetGoals(robot int, goals ...gridstate.Cell) {
	g.agents[robot].goals = goals
}
