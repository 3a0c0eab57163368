package swarmstep

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/restart"
)

// NoBudgetLimit is the wire-level sentinel for "no wall-clock limit" on a
// PlanTick or Initialize budget. Equality, not magnitude, is what callers
// must test for: it is not simply "a very large duration".
const NoBudgetLimit time.Duration = math.MaxInt32

// Sentinels a ConfigError can wrap, one per offending field.
var (
	ErrUnknownHeuristic     = errors.New("swarmstep: unknown heuristic")
	ErrUnknownStrategy      = errors.New("swarmstep: unknown high-level planner strategy")
	ErrNonPositiveField     = errors.New("swarmstep: field must be positive")
	ErrPeriodExceedsHorizon = errors.New("swarmstep: ReplanningPeriod must not exceed TimeHorizon")
)

// ConfigError reports which Config field failed validation and why. New
// returns it, unwrapped, as a plain error; callers that need the field name
// or sentinel can type-assert.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("swarmstep: invalid config field %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Config selects the planner's behavior. The zero value is valid but
// minimal (Manhattan heuristic, Priority strategy, restarts disabled,
// seed 0); call DefaultConfig for the documented defaults instead of
// relying on the zero value when restarts are wanted.
type Config struct {
	// ReplanningPeriod (R) sizes the tape each full replan produces: the
	// restart driver replays R rows before triggering the next replan, while
	// every search still reserves and pads out to TimeHorizon (H). Must not
	// exceed TimeHorizon. Zero defaults to 8.
	ReplanningPeriod int
	// TimeHorizon (H) is the length of each committed path / reservation
	// span. Zero defaults to 10.
	TimeHorizon int
	// Restarts enables the restart loop. If false, PlanTick always runs the
	// single permutation the coordinator strategy implies, never retrying.
	Restarts bool
	// RestartCount caps restart iterations per planning step; 0 means
	// unlimited (bounded only by budget).
	RestartCount int
	// ShuffleOnFirstReplan randomizes the very first permutation tried
	// instead of starting from identity order.
	ShuffleOnFirstReplan bool
	// Heuristic selects the distance oracle. Zero value (distance.Manhattan)
	// is a valid, cheap choice.
	Heuristic distance.Kind
	// TryFixWaitingRobots enables the restart loop's fix-step: after an
	// iteration leaves robots stuck, the very next iteration reruns the
	// priority coordinator on the same permutation, giving those robots a
	// two-tick instead of one-tick start-cell pre-reservation (pre-reservation
	// applies only to robots whose forward cell is blocked), before drawing a
	// new permutation.
	TryFixWaitingRobots bool
	// HighLevelPlanner selects which low-level coordinator the restart loop
	// calls. Zero value (restart.Priority) is a valid choice.
	HighLevelPlanner restart.Strategy
	// Seed fixes the restart driver's base PRNG seed.
	Seed int64
	// Logger receives planner diagnostics. Nil installs a no-op.
	Logger Logger
}

// DefaultConfig returns the documented defaults: R=8, H=10, restarts
// enabled, no restart cap, TrueDistance heuristic, Priority strategy,
// fix-step enabled, seed 0.
func DefaultConfig() Config {
	return Config{
		ReplanningPeriod:    8,
		TimeHorizon:         10,
		Restarts:            true,
		RestartCount:        0,
		Heuristic:           distance.TrueDistance,
		TryFixWaitingRobots: true,
		HighLevelPlanner:    restart.Priority,
		Seed:                0,
	}
}

// normalize fills zero-valued numeric fields with their documented default
// and validates the rest, returning a ConfigError naming the first invalid
// field it finds.
func (c Config) normalize() (Config, error) {
	if c.ReplanningPeriod == 0 {
		c.ReplanningPeriod = 8
	} else if c.ReplanningPeriod < 0 {
		return c, &ConfigError{Field: "ReplanningPeriod", Err: ErrNonPositiveField}
	}
	if c.TimeHorizon == 0 {
		c.TimeHorizon = 10
	} else if c.TimeHorizon < 0 {
		return c, &ConfigError{Field: "TimeHorizon", Err: ErrNonPositiveField}
	}
	if c.RestartCount < 0 {
		return c, &ConfigError{Field: "RestartCount", Err: ErrNonPositiveField}
	}
	if c.ReplanningPeriod > c.TimeHorizon {
		return c, &ConfigError{Field: "ReplanningPeriod", Err: ErrPeriodExceedsHorizon}
	}
	switch c.Heuristic {
	case distance.Manhattan, distance.TrueDistance:
	default:
		return c, &ConfigError{Field: "Heuristic", Err: ErrUnknownHeuristic}
	}
	switch c.HighLevelPlanner {
	case restart.Priority, restart.Detour, restart.PriorityDetour:
	default:
		return c, &ConfigError{Field: "HighLevelPlanner", Err: ErrUnknownStrategy}
	}
	return c, nil
}
