// Package render provides visualization rendering for address maps.
//
// Two renderers live in subpackages:
//
//   - [strip]: horizontal strip diagrams. A register becomes a bit strip
//     (fields laid out MSB to LSB), an address block becomes an offset
//     strip of its registers. Output is self-contained SVG.
//   - [hierarchy]: node-link diagrams of the map → block → register
//     hierarchy, rendered through Graphviz. Output is SVG or PNG.
//
// Both renderers are pure functions over the amap model; caching of their
// outputs is handled by the pipeline.
//
// [strip]: github.com/bleviet/ipcraft/pkg/render/strip
// [hierarchy]: github.com/bleviet/ipcraft/pkg/render/hierarchy
package render
