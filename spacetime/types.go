package spacetime

import "errors"

// ErrNoReachablePath is returned by Plan when the goal cannot be reached
// within the configured time horizon without violating the reservation
// table. Callers (the priority and detour coordinators) treat this as a
// normal outcome, not a fault: the robot waits in place instead.
var ErrNoReachablePath = errors.New("spacetime: no reachable path within horizon")

// ErrInvalidHorizon is returned when Horizon is not positive.
var ErrInvalidHorizon = errors.New("spacetime: horizon must be positive")
