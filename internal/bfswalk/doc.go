// Package bfswalk computes plain cell-to-cell shortest distances on a grid,
// ignoring facing entirely. It exists to give the distance package's
// heuristic-tightness tests an independent ground truth: TrueDistance's
// reverse expansion counts rotations, so its numbers are never smaller than
// bfswalk's pure cell-adjacency distances, and the two must agree exactly
// whenever a robot already faces the right way with no turns needed.
//
// Adapted from lvlath's bfs package: the same walker/queue/visited
// shape and enqueue-before-visit discipline, rewritten over a grid's 4
// cell-adjacency instead of core.Graph's string-keyed neighbor lists.
package bfswalk
