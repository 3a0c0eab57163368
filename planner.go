package swarmstep

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/swarmstep/distance"
	"github.com/katalvlaran/swarmstep/gridstate"
	"github.com/katalvlaran/swarmstep/restart"
)

// Planner is the facade the outer simulation loop drives. It is not safe
// for concurrent use: PlanTick mutates the restart driver's tape cursor.
type Planner struct {
	cfg    Config
	logger Logger

	preprocessBudget time.Duration
	driver           *restart.Driver
}

// New validates cfg and returns a Planner. Numeric fields left at their Go
// zero value are filled with documented defaults (see Config); an unknown
// Heuristic or HighLevelPlanner is reported as a *ConfigError and no Planner
// is built.
func New(cfg Config) (*Planner, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Planner{cfg: cfg, logger: logger}, nil
}

// Initialize records the wall-clock budget available for one-time setup.
// The grid dimensions needed to build the distance oracle are only known
// once the first Environment arrives at PlanTick, so the oracle and restart
// driver are constructed lazily there; Initialize itself does no grid work.
func (p *Planner) Initialize(preprocessBudget time.Duration) error {
	p.preprocessBudget = preprocessBudget
	return nil
}

// PlanTick returns one action per robot known to env. The first call builds
// the distance oracle and restart driver against env's grid; subsequent calls
// reuse them and do not re-read env's dimensions or obstacles. A
// bounded budget is also expressed as a context deadline internally, so the
// restart driver's cancellation checks (detour.Plan's sweeps, the restart
// loop itself) have a ctx to honor rather than only a raw time.Duration.
func (p *Planner) PlanTick(env gridstate.Environment, budget time.Duration) ([]gridstate.Action, error) {
	if err := p.ensureDriver(env); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if budget != NoBudgetLimit && budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	return p.driver.PlanTick(ctx, env, budget)
}

func (p *Planner) ensureDriver(env gridstate.Environment) error {
	if p.driver != nil {
		return nil
	}

	oracle, err := distance.NewOracle(p.cfg.Heuristic, env.Rows(), env.Cols(), env.IsObstacle)
	if err != nil {
		return fmt.Errorf("swarmstep: building distance oracle: %w", err)
	}

	opts := []restart.Option{
		restart.WithSeed(p.cfg.Seed),
		restart.WithStrategy(p.cfg.HighLevelPlanner),
		restart.WithRestartLimit(p.cfg.RestartCount),
		restart.WithFixStep(p.cfg.TryFixWaitingRobots),
		restart.WithLogger(p.logger),
	}
	if !p.cfg.Restarts {
		opts = append(opts, restart.WithRestartLimit(1))
	}
	if p.cfg.ShuffleOnFirstReplan {
		opts = append(opts, restart.WithShuffledFirstPermutation())
	}

	driver, err := restart.New(p.cfg.TimeHorizon, p.cfg.ReplanningPeriod, oracle, opts...)
	if err != nil {
		return fmt.Errorf("swarmstep: building restart driver: %w", err)
	}
	p.driver = driver
	return nil
}
