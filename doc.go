// Package swarmstep plans one tick at a time for a fleet of rotating robots
// sharing a 4-connected grid. Each robot occupies a (cell, facing) pose and
// advances by rotating clockwise/counter-clockwise, moving forward into the
// cell it faces, or waiting; the package guarantees the action vector it
// returns for a tick is collision-free against both cell occupancy and
// head-on cell swaps.
//
// The facade wires together the lower packages behind two calls:
//
//	p, err := swarmstep.New(cfg)
//	err = p.Initialize(preprocessBudget)
//	actions, err := p.PlanTick(env, budget)
//
// Internally a tick either replays a row from the action tape the last full
// replan produced (gridstate/reservation/actiontape/spacetime), or triggers
// a fresh restart search (restart) over priority permutations, each scored
// by running the priority or detour coordinator (priority, detour) driven by
// a reverse-search distance oracle (distance).
//
// A thin facade doc comment over a
// set of focused subpackages, rather than one monolithic implementation file.
package swarmstep
