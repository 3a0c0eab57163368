// Package detour implements the detour coordinator: instead of planning one
// robot at a time against the others' *actual* intentions (as priority
// does), every robot first "parks" — reserves its own current cell for the
// whole horizon — and then plans as if every other robot were going to stay
// put forever. This gives every robot, regardless of priority, a first shot
// at an unobstructed plan; a robot only gives up its parking reservation once
// it has a strictly-committed path to replace it with.
//
// Two sweeping phases follow the same commit-with-rollback discipline: FIND_PATH
// gives every still-parked robot a chance to commit a path, repeating sweeps
// until one produces nothing new; IMPROVE then repeats, but looks for a
// strictly shorter replacement for robots that already committed, repeating
// until a sweep replaces nothing. Both phases recheck the wall-clock budget
// after every robot and return whatever has been committed so far the moment
// it expires.
//
// Like package priority, Plan takes the time horizon and the replanning
// period as separate parameters: every path is still searched, reserved,
// and parked out to the horizon, but the emitted tape only carries the
// period's worth of rows.
package detour
