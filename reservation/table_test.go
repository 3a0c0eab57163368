package reservation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/swarmstep/reservation"
)

func TestReserveAndIsBlocked(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 0, false))

	assert.True(t, tb.IsBlocked(5, 2, 1, 1), "cell 2 is owned by robot 0 at t=1")
	assert.False(t, tb.IsBlocked(5, 2, 1, 0), "owner is never blocked by its own reservation")
}

func TestSwapCollisionDetected(t *testing.T) {
	tb := reservation.New()
	// Robot 0 moves a(=1) -> b(=2) at t=1.
	require.NoError(t, tb.Reserve(1, 2, 1, 0, false))
	// Robot 1 attempting b -> a at the same t is a head-on swap.
	assert.True(t, tb.IsBlocked(2, 1, 1, 1))
}

func TestWaitReservationHasNoSwapEntry(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(3, 3, 1, 0, false))
	// No swap entry should exist for a WAIT; another robot moving through
	// cell 3 at t=1 is only blocked by the cell entry, not a phantom swap.
	assert.True(t, tb.IsBlocked(9, 3, 1, 1))
	assert.False(t, tb.IsBlocked(3, 9, 1, 1))
}

func TestIdempotentSelfReservation(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 0, true))
	assert.NoError(t, tb.Reserve(1, 2, 1, 0, true), "same owner, same key must be a no-op")
}

func TestStrictReserveConflict(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 0, false))
	err := tb.Reserve(9, 2, 1, 1, true)
	assert.ErrorIs(t, err, reservation.ErrReservationConflict)
}

func TestStrictReserveConflictIsAtomic(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 0, false))
	err := tb.Reserve(9, 2, 1, 1, true)
	require.ErrorIs(t, err, reservation.ErrReservationConflict)

	// The failed strict reserve must not have left a dangling swap entry.
	assert.False(t, tb.IsBlocked(2, 9, 1, 5), "partial swap entry leaked after a rejected strict reserve")
}

func TestRevokeAllOfRemovesOnlyOwnerEntries(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 0, false))
	require.NoError(t, tb.Reserve(5, 6, 1, 1, false))

	revoked := tb.RevokeAllOf(0)
	require.Len(t, revoked, 2) // one cell entry + one swap entry

	assert.False(t, tb.IsBlocked(100, 2, 1, 100), "robot 0's cell reservation must be gone")
	assert.True(t, tb.IsBlocked(100, 6, 1, 100), "robot 1's reservation must be untouched")
}

func TestOwnerOf(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 7, false))

	owner, ok := tb.OwnerOf(reservation.Entry{Kind: reservation.CellEntry, Cell: 2, T: 1})
	require.True(t, ok)
	assert.Equal(t, 7, owner)

	_, ok = tb.OwnerOf(reservation.Entry{Kind: reservation.CellEntry, Cell: 999, T: 1})
	assert.False(t, ok)
}

func TestNegativeTimeStepRejected(t *testing.T) {
	tb := reservation.New()
	err := tb.Reserve(1, 2, 0, 0, false)
	assert.ErrorIs(t, err, reservation.ErrNegativeTimeStep)
}

func TestConsistentAfterMixedOperations(t *testing.T) {
	tb := reservation.New()
	require.NoError(t, tb.Reserve(1, 2, 1, 0, false))
	require.NoError(t, tb.Reserve(2, 3, 2, 0, false))
	require.NoError(t, tb.Reserve(9, 9, 1, 1, false))
	assert.True(t, tb.Consistent())

	tb.RevokeAllOf(0)
	assert.True(t, tb.Consistent())
}
