// Package spacetime implements the single-agent planner: a time-expanded A*
// search over (cell, facing, time) nodes that returns a collision-free
// trajectory for one robot against a shared reservation.Table.
//
// Turning is modeled as its own action rather than folded into movement cost,
// because a rotating robot genuinely spends a tick to turn; dropping that from
// the search would make the distance.Oracle's heuristic inadmissible. The
// search is otherwise a textbook A*: a container/heap priority queue ordered
// by (f, h, tiebreak), a closed set keyed by (pose, g) so no node is expanded
// twice, and uniform edge cost 1 — the same heap/closed-set shape as the
// teacher's dijkstra package, generalized from Dijkstra's g-only ordering to
// A*'s f = g+h ordering and from a monolithic one-shot call to a per-request
// Plan(...) function (there is no cross-call state to persist here, unlike
// the distance oracle).
package spacetime
