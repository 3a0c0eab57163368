package restart

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/katalvlaran/swarmstep/actiontape"
	"github.com/katalvlaran/swarmstep/detour"
	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/priority"
)

// ErrUnboundedSearch is returned by PlanTick when both the wall-clock budget
// is NoBudgetLimit and no restart limit was configured: without either bound
// the restart loop has no termination condition.
var ErrUnboundedSearch = errors.New("restart: budget is unlimited and no restart limit is configured")

// maxPermutationDrawAttempts bounds how many times the loop redraws a
// permutation looking for one not yet tried this call before giving up and
// reusing a duplicate; this only matters when N is small enough that the
// permutation space is close to exhausted.
const maxPermutationDrawAttempts = 50

// Driver is the restart-based high-level planner. It is stateful across
// ticks: it plans once every Rows ticks and replays the stored tape a row at
// a time on the ticks in between.
type Driver struct {
	horizon      int
	period       int
	oracle       *distance.Oracle
	strategy     Strategy
	restartLimit int
	safetyFactor float64
	shuffleFirst bool
	rng          *rand.Rand

	everPlanned bool
	tape        *actiontape.Tape
	nextRow     int

	logger    Logger
	fixStepOn bool
}

// New returns a Driver for the given time horizon, replanning period, and
// distance oracle. period sizes the tape produced by each full replan — the
// driver replays it row by row and only triggers another replan once period
// ticks have elapsed, so period is the cadence callers actually observe,
// while horizon remains how far each underlying search looks and reserves.
// period must be positive and at most horizon.
// Defaults: Strategy Priority, safety factor 2, seed 0, identity first
// permutation, no restart limit.
func New(horizon, period int, oracle *distance.Oracle, opts ...Option) (*Driver, error) {
	if horizon <= 0 {
		return nil, ErrInvalidHorizon
	}
	if period <= 0 || period > horizon {
		return nil, ErrInvalidPeriod
	}
	d := &Driver{
		horizon:      horizon,
		period:       period,
		oracle:       oracle,
		strategy:     Priority,
		safetyFactor: 2,
		rng:          rngFromSeed(0),
		logger:       noopLogger{},
		fixStepOn:    true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// PlanTick returns the action vector for the current simulation tick. If a
// previously-planned tape still has unplayed rows, the next one is returned
// directly; otherwise a fresh restart search runs against env within budget.
// ctx cancellation is honored the way the teacher's bfs package honors it:
// checked before each unit of work, so a cancelled ctx stops the search and
// returns whatever candidate has been found so far (or an error if none has).
// A nil ctx is treated as context.Background().
func (d *Driver) PlanTick(ctx context.Context, env gridstate.Environment, budget time.Duration) ([]gridstate.Action, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d.tape != nil && d.nextRow < d.tape.Rows {
		row := d.tape.Row(d.nextRow)
		d.nextRow++
		return cloneActions(row), nil
	}

	out, err := d.replan(ctx, env, budget)
	if err != nil {
		return nil, err
	}
	d.tape = out.tape
	d.nextRow = 1
	return cloneActions(out.tape.Row(0)), nil
}

func cloneActions(row []gridstate.Action) []gridstate.Action {
	out := make([]gridstate.Action, len(row))
	copy(out, row)
	return out
}

// replan runs the full restart loop once and returns the
// best-scoring outcome found within budget or until ctx is cancelled.
func (d *Driver) replan(ctx context.Context, env gridstate.Environment, budget time.Duration) (*outcome, error) {
	limited := budget != NoBudgetLimit && budget > 0
	if !limited && d.restartLimit <= 0 {
		return nil, ErrUnboundedSearch
	}

	n := env.NumAgents()
	start := time.Now()
	var deadline time.Time
	if limited {
		deadline = start.Add(budget)
	}

	currentPerm := identityPerm(n)
	if !d.everPlanned && d.shuffleFirst {
		shuffleIntsInPlace(currentPerm, deriveRNG(d.rng, 0))
	}
	d.everPlanned = true

	tried := map[string]bool{permKey(currentPerm): true}
	window := newRollingWindow()

	var best *outcome
	var lastStuckIDs []int
	lastWasFixStep := false
	restartCount := 0
	var streamCounter uint64

	for {
		if ctx.Err() != nil {
			break
		}
		if limited {
			remaining := deadline.Sub(time.Now())
			if remaining < time.Duration(float64(window.Max())*d.safetyFactor) {
				break
			}
		}
		if d.restartLimit > 0 && restartCount >= d.restartLimit {
			break
		}

		iterStart := time.Now()
		var res *outcome
		var subBudget time.Duration
		if limited {
			subBudget = time.Until(deadline)
		}

		if d.fixStepOn && !lastWasFixStep && len(lastStuckIDs) > 0 {
			res = d.runPriority(currentPerm, env, lastStuckIDs)
			lastWasFixStep = true
		} else {
			if restartCount > 0 {
				streamCounter++
				currentPerm = drawUntried(n, d.rng, &streamCounter, tried)
			}
			res = d.runStrategy(ctx, restartCount, currentPerm, env, subBudget)
			restartCount++
			lastWasFixStep = false
		}

		if res != nil {
			lastStuckIDs = res.stuckIDs
			d.logger.Debugf("restart: perm=%v stuck=%d length=%d", currentPerm, res.stuckCount, res.totalLength)
			if res.betterThan(best) {
				best = res
			}
		} else {
			lastStuckIDs = nil
			d.logger.Debugf("restart: perm=%v produced no candidate", currentPerm)
		}
		window.add(time.Since(iterStart))
	}

	if best == nil {
		return nil, fmt.Errorf("restart: no candidate plan produced within budget")
	}
	if best.totalLength == 0 {
		d.logger.Warnf("restart: degraded to all-WAIT tape (n=%d)", n)
	}
	return best, nil
}

// drawUntried returns a permutation of [0, n) not yet present in tried,
// marking it tried before returning. Falls back to a (possibly repeated)
// permutation after maxPermutationDrawAttempts tries, which only triggers
// when N is small enough that the permutation space is nearly exhausted.
func drawUntried(n int, base *rand.Rand, streamCounter *uint64, tried map[string]bool) []int {
	for attempt := 0; attempt < maxPermutationDrawAttempts; attempt++ {
		*streamCounter++
		candidate := permRange(n, deriveRNG(base, *streamCounter))
		key := permKey(candidate)
		if !tried[key] {
			tried[key] = true
			return candidate
		}
	}
	*streamCounter++
	return permRange(n, deriveRNG(base, *streamCounter))
}

func permKey(perm []int) string {
	return fmt.Sprint(perm)
}

// runStrategy dispatches to the configured low-level coordinator for a
// normal (non-fix-step) iteration; PriorityDetour alternates by the
// 0-indexed iteration parity.
func (d *Driver) runStrategy(ctx context.Context, iteration int, perm []int, env gridstate.Environment, subBudget time.Duration) *outcome {
	switch d.strategy {
	case Detour:
		return d.runDetour(ctx, perm, env, subBudget)
	case PriorityDetour:
		if iteration%2 == 0 {
			return d.runPriority(perm, env, nil)
		}
		return d.runDetour(ctx, perm, env, subBudget)
	default:
		return d.runPriority(perm, env, nil)
	}
}

func (d *Driver) runPriority(perm []int, env gridstate.Environment, fixStuck []int) *outcome {
	var fix map[int]bool
	if len(fixStuck) > 0 {
		fix = make(map[int]bool, len(fixStuck))
		for _, r := range fixStuck {
			fix[r] = true
		}
	}
	res, err := priority.Plan(perm, env, d.oracle, d.horizon, d.period, fix)
	if err != nil {
		return nil
	}
	return &outcome{tape: res.Tape, totalLength: res.TotalLength, stuckCount: res.StuckCount, stuckIDs: res.StuckIDs}
}

func (d *Driver) runDetour(ctx context.Context, perm []int, env gridstate.Environment, subBudget time.Duration) *outcome {
	res, err := detour.Plan(ctx, perm, env, d.oracle, d.horizon, d.period, subBudget)
	if err != nil {
		return nil
	}
	return &outcome{tape: res.Tape, totalLength: res.TotalLength, stuckCount: res.StuckCount, stuckIDs: res.StuckIDs}
}
