package reservation

import (
	"errors"

	"github.com/katalvlaran/swarmstep/gridstate"
)

// Sentinel errors for reservation table operations.
var (
	// ErrReservationConflict indicates a strict Reserve collided with an entry
	// already owned by a different robot.
	ErrReservationConflict = errors.New("reservation: strict reserve collided with another owner")

	// ErrNegativeTimeStep indicates a caller supplied t <= 0; reservations are
	// only meaningful for t >= 1 (t == 0 models "where the robot is now").
	ErrNegativeTimeStep = errors.New("reservation: time step must be >= 1")
)

// EntryKind distinguishes a cell occupancy entry from a swap-edge entry.
type EntryKind uint8

const (
	// CellEntry marks that a cell is occupied at a time step.
	CellEntry EntryKind = iota
	// SwapEntry marks that a from->to transition is taken at a time step.
	SwapEntry
)

// cellKey identifies a (cell, t) occupancy slot.
type cellKey struct {
	Cell gridstate.Cell
	T    int
}

// swapKey identifies a (from, to, t) transition slot.
type swapKey struct {
	From gridstate.Cell
	To   gridstate.Cell
	T    int
}

// Entry describes one reservation, as returned by RevokeAllOf for inspection
// or rollback bookkeeping by the caller.
type Entry struct {
	Kind EntryKind
	Cell gridstate.Cell // valid when Kind == CellEntry
	From gridstate.Cell // valid when Kind == SwapEntry
	To   gridstate.Cell // valid when Kind == SwapEntry
	T    int
}
