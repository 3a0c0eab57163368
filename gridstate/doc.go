// Package gridstate defines the shared vocabulary every other swarmstep package
// builds on: grid cells, the four cardinal facings, the four robot actions, and
// the packed (cell, facing) pose key that uniquely fingerprints a spatial-
// rotational node.
//
// It also declares Environment, the read-only contract the outer simulator
// implements to expose robot states and goal queues for one planning tick.
// gridstate never mutates an Environment; it only reads through the interface.
//
// Complexity note: every helper here is O(1) — this package exists so the
// handful of geometry rules the rest of the core actually depends on (forward-
// successor cells, rotation direction, pose packing) live in exactly one place
// instead of being re-derived in each component.
package gridstate
