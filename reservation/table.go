package reservation

import (
	"sync"

	"github.com/katalvlaran/swarmstep/gridstate"
)

// Table is the space-time occupancy + swap-edge registry shared by a single
// coordinator call. A fresh Table is cheap to build; coordinators construct
// one per planning pass (see priority.Plan / detour.Plan) rather than reusing
// one across ticks, so stale reservations never leak between passes.
type Table struct {
	mu sync.RWMutex

	cellOwner map[cellKey]int
	swapOwner map[swapKey]int

	// ownerCells/ownerSwaps index entries by owner so RevokeAllOf is O(entries
	// held by that owner) instead of a full table scan.
	ownerCells map[int]map[cellKey]struct{}
	ownerSwaps map[int]map[swapKey]struct{}
}

// New returns an empty Table.
// Complexity: O(1).
func New() *Table {
	return &Table{
		cellOwner:  make(map[cellKey]int),
		swapOwner:  make(map[swapKey]int),
		ownerCells: make(map[int]map[cellKey]struct{}),
		ownerSwaps: make(map[int]map[swapKey]struct{}),
	}
}

// IsBlocked reports whether moving from->to at time t is forbidden for
// asRobot: either the destination cell is already owned by someone else at t,
// or the opposing swap (to->from at t) has already been taken by anyone
// (including asRobot itself — a robot cannot swap through another robot, full
// stop, even a hypothetical future version of itself).
// Complexity: O(1).
func (tb *Table) IsBlocked(from, to gridstate.Cell, t int, asRobot int) bool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	if owner, ok := tb.cellOwner[cellKey{Cell: to, T: t}]; ok && owner != asRobot {
		return true
	}
	if from == to {
		return false
	}
	if _, ok := tb.swapOwner[swapKey{From: to, To: from, T: t}]; ok {
		return true
	}
	return false
}

// Reserve records that owner occupies `to` at time t, having arrived from
// `from` (from == to models a WAIT and records no swap entry). When strict is
// true, a cell or swap slot already owned by a different robot aborts the
// whole call with ErrReservationConflict and leaves the table unchanged — the
// insertion of the cell entry and its paired swap entry is atomic.
// Idempotent self-reservation (same owner, same key) is a permitted no-op.
// Complexity: O(1).
func (tb *Table) Reserve(from, to gridstate.Cell, t int, owner int, strict bool) error {
	if t <= 0 {
		return ErrNegativeTimeStep
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	ck := cellKey{Cell: to, T: t}
	var sk swapKey
	hasSwap := from != to
	if hasSwap {
		sk = swapKey{From: from, To: to, T: t}
	}

	if strict {
		if existing, ok := tb.cellOwner[ck]; ok && existing != owner {
			return ErrReservationConflict
		}
		if hasSwap {
			if existing, ok := tb.swapOwner[sk]; ok && existing != owner {
				return ErrReservationConflict
			}
		}
	}

	tb.setCellOwner(ck, owner)
	if hasSwap {
		tb.setSwapOwner(sk, owner)
	}
	return nil
}

func (tb *Table) setCellOwner(ck cellKey, owner int) {
	tb.cellOwner[ck] = owner
	set, ok := tb.ownerCells[owner]
	if !ok {
		set = make(map[cellKey]struct{})
		tb.ownerCells[owner] = set
	}
	set[ck] = struct{}{}
}

func (tb *Table) setSwapOwner(sk swapKey, owner int) {
	tb.swapOwner[sk] = owner
	set, ok := tb.ownerSwaps[owner]
	if !ok {
		set = make(map[swapKey]struct{})
		tb.ownerSwaps[owner] = set
	}
	set[sk] = struct{}{}
}

// RevokeAllOf removes every entry owned by owner and returns them so the
// caller can roll back bookkeeping (e.g. an action-tape overwrite) derived
// from the now-void reservations. Returns nil if owner held nothing.
// Complexity: O(entries held by owner).
func (tb *Table) RevokeAllOf(owner int) []Entry {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	var out []Entry
	if cells, ok := tb.ownerCells[owner]; ok {
		for ck := range cells {
			delete(tb.cellOwner, ck)
			out = append(out, Entry{Kind: CellEntry, Cell: ck.Cell, T: ck.T})
		}
		delete(tb.ownerCells, owner)
	}
	if swaps, ok := tb.ownerSwaps[owner]; ok {
		for sk := range swaps {
			delete(tb.swapOwner, sk)
			out = append(out, Entry{Kind: SwapEntry, From: sk.From, To: sk.To, T: sk.T})
		}
		delete(tb.ownerSwaps, owner)
	}
	return out
}

// OwnerOf returns the robot id that holds entry, and whether it is currently
// reserved at all.
// Complexity: O(1).
func (tb *Table) OwnerOf(entry Entry) (int, bool) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	switch entry.Kind {
	case SwapEntry:
		owner, ok := tb.swapOwner[swapKey{From: entry.From, To: entry.To, T: entry.T}]
		return owner, ok
	default:
		owner, ok := tb.cellOwner[cellKey{Cell: entry.Cell, T: entry.T}]
		return owner, ok
	}
}

// Consistent reports whether every tracked entry has exactly one owner and
// every owner-indexed entry is mirrored in the primary maps. It exists purely
// for the reservation-consistency property tests; costs O(entries) and is
// never called from production code paths.
func (tb *Table) Consistent() bool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	for owner, cells := range tb.ownerCells {
		for ck := range cells {
			if got, ok := tb.cellOwner[ck]; !ok || got != owner {
				return false
			}
		}
	}
	for owner, swaps := range tb.ownerSwaps {
		for sk := range swaps {
			if got, ok := tb.swapOwner[sk]; !ok || got != owner {
				return false
			}
		}
	}
	for ck, owner := range tb.cellOwner {
		if _, ok := tb.ownerCells[owner][ck]; !ok {
			return false
		}
	}
	for sk, owner := range tb.swapOwner {
		if _, ok := tb.ownerSwaps[owner][sk]; !ok {
			return false
		}
	}
	return true
}
