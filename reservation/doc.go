// Package reservation implements the shared space-time reservation table that
// every single-agent search consults: a set of (cell, t) occupancies plus a
// parallel set of (from, to, t) swap entries that forbid two robots from
// trading cells head-on in the same step, each entry tagged with the robot id
// that owns it.
//
// Reservations are monotone within a planning pass except through explicit
// RevokeAllOf; a single Reserve call is atomic — either both the cell entry and
// (when the move isn't a WAIT) its paired swap entry are recorded, or neither
// is, so the table can never be left describing half a move.
//
// Concurrency: a Table is safe for concurrent readers (IsBlocked, OwnerOf) and
// serializes writers (Reserve, RevokeAllOf) behind a single RWMutex — mirroring
// lvlath's read-mostly core.Graph locking discipline, collapsed to one
// lock here because cell and swap entries are always mutated together.
package reservation
