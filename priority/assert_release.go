//go:build !swarmstepdebug

package priority

// assertf is a no-op without the swarmstepdebug build tag: invariant
// violations are tolerated rather than taken down the planner mid-tick.
func assertf(cond bool, format string, args ...interface{}) {}
