// Package priority implements the priority-based coordinator: robots plan one
// at a time in a caller-given order, each committing its reservations before
// the next robot plans against them. A robot that cannot find a path waits in
// place; if its own cell is already claimed by a robot planned earlier in the
// order at the time it needs it, that robot is stopped and forced to wait instead
// (conflict propagation), which may itself cascade.
//
// The cascade is driven by an explicit worklist rather than recursion — a
// robot being stopped is a state transition (White -> Black, borrowing the
// three-coloring vocabulary lvlath's dfs package uses for its own
// traversal-state tracking) applied through an explicit slice-backed stack,
// not the Go call stack — so an
// adversarial map can't blow the Go stack regardless of how many robots
// cascade.
//
// Plan takes the time horizon (how far every path is searched, reserved, and
// padded) and the replanning period (how many rows of the result the caller
// actually consumes before the next full replan) as separate parameters: the
// period is always at most the horizon, so a shorter period never truncates
// the occupancy reasoning that produced the longer plan, only how much of it
// the caller is handed back this call.
package priority
