// Package document loads, edits and saves address-map documents.
//
// A document is a JSON or TOML file describing memory maps, address blocks,
// registers and bit fields. Records are loosely typed: size determinants
// (count, stride, size, bitWidth) may be absent, may be numbers, or may be
// hex strings such as "0x1000". Decoding is deliberately lenient — a
// partially-edited document must never fail to load — and resolves every
// malformed or missing size field to the documented defaults, once, at this
// boundary. The layout engine only ever sees resolved amap values.
//
// Edits are committed back through path-based updates on the original JSON
// text (tidwall/sjson), so properties the layout engine does not touch are
// preserved byte-for-byte. TOML documents are re-encoded on save.
package document
