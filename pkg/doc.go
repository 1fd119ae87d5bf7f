// Package pkg provides the core libraries for ipcraft address-map editing.
//
// # Overview
//
// ipcraft reads hierarchical hardware address maps (memory maps containing
// address blocks, registers, and bit fields), repacks their layouts, and
// renders them. The pkg directory is organized into five main areas:
//
//  1. [amap] - Domain model (footprints, layout planning, validation)
//  2. [document] - Document I/O (JSON/TOML decode, path-based edits)
//  3. [render] - Visualization (bit/byte strips, hierarchy diagrams)
//  4. [export] - Spreadsheet and datasheet export (XLSX, PDF)
//  5. [pipeline] - Orchestration (load → validate → render) with caching
//
// # Architecture
//
// The typical data flow through ipcraft:
//
//	JSON/TOML document
//	         ↓
//	    [document] package (decode + edit application)
//	         ↓
//	    [amap/layout] package (repacking, insertion, validation)
//	         ↓
//	    [render] / [export] packages (strips, hierarchy, XLSX, PDF)
//	         ↓
//	    SVG/PNG/DOT/XLSX/PDF output
//
// # Quick Start
//
// Load a document, validate it, and render a register strip:
//
//	import (
//	    "context"
//	    "github.com/bleviet/ipcraft/pkg/document"
//	    "github.com/bleviet/ipcraft/pkg/pipeline"
//	    "github.com/bleviet/ipcraft/pkg/render/strip"
//	)
//
//	// 1. Load and decode
//	doc, _ := document.Load("soc.json")
//	m, _ := doc.Map(0)
//
//	// 2. Validate the layout
//	violations := pipeline.Validate(context.Background(), m)
//
//	// 3. Render one register as an SVG bit strip
//	svg := strip.RenderRegister(m.Blocks[0].Registers[0])
//
// # Main Packages
//
// ## Domain Model
//
// [amap] - The address-map value types (MemoryMap, AddressBlock, Register,
// BitField) with footprint arithmetic. All types have value semantics;
// layout operations return new collections and never mutate their input.
//
// [amap/layout] - Layout planning: forward/backward repacking, overlap
// detection, insertion with automatic repacking, move/reorder, and the
// validation diagnostics.
//
// ## Document I/O
//
// [document] - Loading, parsing, and saving documents. JSON documents keep
// their original text and receive targeted path edits so untouched
// properties survive a round trip; TOML documents are re-encoded.
//
// ## Visualization and Export
//
// [render/strip] - Bit strips for registers and byte strips for blocks,
// rendered as self-contained SVG.
//
// [render/hierarchy] - Map → block → register hierarchy diagrams using
// Graphviz (DOT, SVG, PNG).
//
// [export] - XLSX workbooks (one sheet per block) and PDF datasheets.
//
// ## Infrastructure
//
// [pipeline] - The shared load → validate → render pipeline used by the
// render and validate commands, with content-addressed artifact caching.
//
// [cache] - Sharded file cache for rendered artifacts, keyed by document
// hash and render options.
//
// [session] - Per-document edit sessions that restore the TUI cursor
// between runs.
//
// [observability] - Hook interfaces for pipeline, document, and cache
// events.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/amap/layout/...    # Specific package
//
// [amap]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/amap
// [amap/layout]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/amap/layout
// [document]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/document
// [render]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/render
// [render/strip]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/render/strip
// [render/hierarchy]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/render/hierarchy
// [export]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/cache
// [session]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/session
// [observability]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/observability
// [errors]: https://pkg.go.dev/github.com/bleviet/ipcraft/pkg/errors
package pkg
