// Package restart implements the high-level driver: it calls the priority or
// detour coordinator (or alternates between them) against successive random
// priority permutations within a wall-clock budget, and commits whichever
// attempt scores best. Scoring is lexicographic: fewer stuck robots first,
// then shorter total path length.
//
// A driver plans once every replanning period's worth of ticks and replays
// the stored tape a row at a time in between, so PlanTick is cheap on the
// ticks that don't trigger a fresh search. The period is independent of the
// time horizon every underlying search reserves and pads out to (the period
// only bounds how much of that search's result gets replayed before the
// driver looks again); New rejects a period greater than the horizon.
//
// The permutation RNG (rngFromSeed/deriveSeed/deriveRNG/shuffleIntsInPlace) is
// adapted from lvlath's tsp package, which solves a structurally
// identical problem — deterministic, independently-seeded exploration of a
// combinatorial search space across restarts — even though the combinatorial
// object here is a robot priority order rather than a tour.
package restart
