// Package layout implements the spatial repacking engine for address-map
// collections.
//
// The engine is a set of pure, deterministic functions over ordered item
// collections: forward and backward repacking from an anchor index, overlap
// detection, insertion planning with neighbor auto-resize, and order
// normalization. Every function reads an immutable input slice and returns a
// freshly built one; no item or collection is ever mutated in place and no
// state is retained between calls.
//
// The same algorithms serve all three collection kinds (bit fields within a
// register, registers within a block, address blocks within a map) through a
// small Accessor abstraction. Insertion planning is per kind, because the
// bounds and auto-resize policies differ between the bit axis and the byte
// axis.
//
// Failures are recoverable diagnostics carried as *errors.Error values with
// the OUT_OF_BOUNDS, OVERLAP or NO_SPACE codes; callers show the message and
// keep their previous collection. Nothing in this package panics on
// user-reachable input.
package layout
