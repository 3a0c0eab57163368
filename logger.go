package swarmstep

import "github.com/katalvlaran/swarmstep/restart"

// Logger receives planner diagnostics. It is the same shape restart.Logger
// exposes; a Planner forwards its Logger straight into the restart.Driver
// it owns rather than keeping two separate sinks.
type Logger = restart.Logger

// noopLogger discards everything; installed when Config.Logger is nil.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}
