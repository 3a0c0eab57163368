package detour

import (
	"errors"
	"sort"

	"github.com/katalvlaran/swarmstep/actiontape"
)

// ErrInvalidHorizon is returned when the configured time horizon is not
// positive.
var ErrInvalidHorizon = errors.New("detour: horizon must be positive")

// ErrInvalidPeriod is returned when the configured replanning period is not
// positive, or exceeds the time horizon.
var ErrInvalidPeriod = errors.New("detour: period must be positive and at most horizon")

// ErrOrderLength is returned when order does not contain exactly one entry
// per robot known to the environment.
var ErrOrderLength = errors.New("detour: order length does not match robot count")

// Result mirrors priority.Result: the filled action tape plus the metrics the
// restart driver scores candidate plans on. Kept as its own type (rather than
// imported from package priority) because the two coordinators are
// independent strategies the restart driver picks between, not a shared
// hierarchy.
type Result struct {
	Tape        *actiontape.Tape
	TotalLength int
	StuckCount  int
	StuckIDs    []int
}

func newResult(tape *actiontape.Tape, stuck map[int]bool) *Result {
	ids := make([]int, 0, len(stuck))
	for r := range stuck {
		ids = append(ids, r)
	}
	sort.Ints(ids)
	return &Result{
		Tape:        tape,
		TotalLength: tape.TotalLength(),
		StuckCount:  len(ids),
		StuckIDs:    ids,
	}
}
