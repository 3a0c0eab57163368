// Package testgrid builds gridstate.Environment fixtures for tests: either
// programmatically via functional options, or by parsing a small ASCII map.
// It is adapted from lvlath's builder package (row-major grid
// construction, functional options, a panic in New on non-positive
// dimensions) but produces a gridstate.Environment instead of a core.Graph, and
// additionally tracks per-robot facing and goal queues, which core.Graph has
// no notion of.
package testgrid
