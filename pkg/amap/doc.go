// Package amap models hierarchical hardware address maps.
//
// A memory map contains address blocks, an address block contains registers
// (or register arrays), and a register contains bit fields. Every level is
// positioned along a one-dimensional offset axis: bytes for blocks and
// registers, bits for fields.
//
// Items are plain value types. The item kinds are resolved once when a
// document is decoded (see the document package): a register is either plain
// or an array (Count > 1 with a Stride), a block either carries an explicit
// size or derives its footprint from the registers it owns. Downstream code
// never re-derives these distinctions from loose records.
//
// The layout subpackage implements the repacking engine that operates on
// collections of these items.
package amap
