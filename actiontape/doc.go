// Package actiontape implements the action encoder: translating a robot's
// planned (cell, facing) trajectory into rows of a shared Tape, the R x N
// grid of per-tick actions the outer simulator applies.
//
// A Tape starts all-WAIT; encoding a path only ever overwrites the rows that
// path actually touches, which is what lets the priority and detour
// coordinators commit one robot's plan without disturbing rows already
// written for another. There is no search or decision-making here — compare
// each consecutive pose pair and classify the single action that explains the
// difference.
package actiontape
