// Package apsp computes all-pairs cell distances on a small grid via
// Floyd-Warshall, independent of bfswalk's single-source BFS. It exists as a
// second, structurally unrelated ground truth for the same
// heuristic-tightness tests: if TrueDistance, bfswalk, and this package ever
// disagree on a same-facing case, the bug is almost certainly in TrueDistance
// rather than in one shared helper.
//
// Adapted from lvlath's matrix package: in-place dense distance matrix,
// +Inf for "no edge yet", fixed k-i-j loop order for deterministic
// accumulation — the same shape, applied to grid cell adjacency instead of a
// weighted core.Graph's adjacency matrix.
package apsp
