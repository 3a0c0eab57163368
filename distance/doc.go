// Package distance implements the true-distance heuristic oracle: given a
// goal cell, the minimum number of forward/rotate actions needed to reach it
// from any (cell, facing), ignoring every other robot.
//
// TrueDistance computes this lazily via a reverse best-first expansion from
// the goal, one priority-queue runner per goal cell, persisted across calls so
// a later query for the same goal resumes from wherever the frontier left off
// instead of restarting. Because every action costs exactly 1 and rotations
// are modeled as edges of the search (not skipped), the result is tight, not
// merely admissible: it equals the true obstacle-respecting shortest action
// count, which is the property the "heuristic tightness" test in
// the tightness tests in this package check directly.
//
// Manhattan ignores facing entirely and costs O(1) per query; it is admissible
// but not tight for a rotating robot (it undercounts the rotations a robot
// facing the wrong way will need).
//
// The reverse-expansion runner (container/heap, lazy-decrease-key, sentinel
// errors) is modeled on lvlath's dijkstra package, rewritten against
// packed integer pose keys instead of core.Graph's string vertex ids. The
// monolithic Dijkstra() entry point itself wasn't reusable here: it runs to
// completion and has no notion of a resumable frontier.
package distance
