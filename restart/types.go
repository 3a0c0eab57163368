package restart

import (
	"errors"
	"math"
	"time"

	"github.com/katalvlaran/swarmstep/actiontape"
)

// ErrInvalidHorizon is returned by New when horizon is not positive.
var ErrInvalidHorizon = errors.New("restart: horizon must be positive")

// ErrInvalidPeriod is returned by New when period is not positive, or
// exceeds horizon.
var ErrInvalidPeriod = errors.New("restart: period must be positive and at most horizon")

// NoBudgetLimit disables the wall-clock budget check entirely: PlanTick runs
// restart iterations until the configured restart limit (if any) is hit,
// never on elapsed time. Matches the wire-level sentinel swarmstep.Config
// accepts (the literal constant, not a "very large duration" — equality, not
// magnitude, is what callers must test for).
const NoBudgetLimit time.Duration = math.MaxInt32

// Strategy selects which low-level coordinator the restart loop calls on
// each (non-fix-step) iteration.
type Strategy int

// Recognized strategies.
const (
	// Priority runs the priority coordinator every iteration.
	Priority Strategy = iota
	// Detour runs the detour coordinator every iteration.
	Detour
	// PriorityDetour alternates: even-numbered iterations (0-indexed) run
	// Priority, odd-numbered run Detour.
	PriorityDetour
)

// String renders a Strategy for logs.
func (s Strategy) String() string {
	switch s {
	case Priority:
		return "PRIORITY"
	case Detour:
		return "DETOUR"
	case PriorityDetour:
		return "PRIORITY_DETOUR"
	default:
		return "UNKNOWN"
	}
}

// Logger receives restart-loop diagnostics. Debugf fires once per iteration
// (permutation tried, score); Warnf fires when a planning step degrades to
// an all-WAIT tape.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// noopLogger discards everything; the zero-value default so callers never
// need a nil check.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithLogger installs a diagnostics sink. A nil logger is ignored (the
// no-op default stays in place).
func WithLogger(l Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithSeed fixes the base RNG seed; PlanTick's permutation exploration is
// reproducible given the same environment trace and this seed.
func WithSeed(seed int64) Option {
	return func(d *Driver) { d.rng = rngFromSeed(seed) }
}

// WithStrategy selects the low-level coordinator strategy. Default Priority.
func WithStrategy(s Strategy) Option {
	return func(d *Driver) { d.strategy = s }
}

// WithRestartLimit caps the number of non-fix-step iterations per PlanTick
// call. A non-positive limit (the default) means unlimited — only the
// wall-clock budget bounds the loop.
func WithRestartLimit(n int) Option {
	return func(d *Driver) { d.restartLimit = n }
}

// WithSafetyFactor scales the rolling-window checkpoint: the loop stops once
// remaining budget falls below max(rolling window) * factor. Default 2.
// Panics if factor is not positive, since a non-positive factor would let the
// loop run past its budget on the very last iteration.
func WithSafetyFactor(factor float64) Option {
	if factor <= 0 {
		panic("restart: WithSafetyFactor requires a positive factor")
	}
	return func(d *Driver) { d.safetyFactor = factor }
}

// WithFixStep enables or disables the fix-step: when
// on (the default), an iteration that leaves robots stuck is immediately
// followed by a rerun of the priority coordinator on the same permutation,
// giving those robots a two-tick instead of one-tick start-cell
// pre-reservation (pre-reservation applies only to robots whose forward cell
// is blocked), before the next fresh permutation is drawn.
func WithFixStep(enabled bool) Option {
	return func(d *Driver) { d.fixStepOn = enabled }
}

// WithShuffledFirstPermutation makes the very first planning call (before
// any tape has ever been produced) start from a shuffled permutation instead
// of the identity order.
func WithShuffledFirstPermutation() Option {
	return func(d *Driver) { d.shuffleFirst = true }
}

// outcome is the common shape priority.Result and detour.Result both produce;
// the restart loop scores and stores whichever coordinator ran without
// caring which one produced it.
type outcome struct {
	tape        *actiontape.Tape
	totalLength int
	stuckCount  int
	stuckIDs    []int
}

// betterThan reports whether o scores strictly better than other under the
// lexicographic (fewer stuck, then shorter total length) ordering. A nil
// other is always beaten.
func (o outcome) betterThan(other *outcome) bool {
	if other == nil {
		return true
	}
	if o.stuckCount != other.stuckCount {
		return o.stuckCount < other.stuckCount
	}
	return o.totalLength < other.totalLength
}
