package document

import (
	"math"
	"strconv"
	"strings"

	"github.com/bleviet/ipcraft/pkg/amap"
)

// Canonical record keys per level. Everything else is carried in Attrs and
// survives a save untouched.
var (
	documentKeys = []string{"name", "memoryMaps"}
	mapKeys      = []string{"name", "addressBlocks"}
	blockKeys    = []string{"name", "baseAddress", "size", "range", "usage", "registers"}
	registerKeys = []string{"name", "offset", "size", "count", "stride", "access", "fields"}
	fieldKeys    = []string{"name", "bitOffset", "bitWidth", "access", "reset"}
)

func decodeDocument(root map[string]any) *Document {
	doc := &Document{
		Name:  stringAt(root, "name"),
		attrs: extraAttrs(root, documentKeys),
	}
	for _, m := range listAt(root, "memoryMaps") {
		doc.Maps = append(doc.Maps, decodeMap(m))
	}
	return doc
}

func decodeMap(rec map[string]any) amap.MemoryMap {
	m := amap.MemoryMap{
		Name:  stringAt(rec, "name"),
		Attrs: extraAttrs(rec, mapKeys),
	}
	for _, b := range listAt(rec, "addressBlocks") {
		m.Blocks = append(m.Blocks, decodeBlock(b))
	}
	return m
}

func decodeBlock(rec map[string]any) amap.AddressBlock {
	b := amap.AddressBlock{
		Name:  stringAt(rec, "name"),
		Base:  numberAt(rec, "baseAddress", 0),
		Usage: stringAt(rec, "usage"),
		Attrs: extraAttrs(rec, blockKeys),
	}
	// Either "size" or the IP-XACT style "range" names the explicit size.
	// The source's spelling is kept so a save does not rename the key.
	b.Size = numberAt(rec, "size", 0)
	if b.Size > 0 {
		b.SizeKey = "size"
	} else if b.Size = numberAt(rec, "range", 0); b.Size > 0 {
		b.SizeKey = "range"
	}
	for _, r := range listAt(rec, "registers") {
		b.Registers = append(b.Registers, decodeRegister(r))
	}
	return b
}

func decodeRegister(rec map[string]any) amap.Register {
	r := amap.Register{
		Name:    stringAt(rec, "name"),
		Offset:  numberAt(rec, "offset", 0),
		BitSize: numberAt(rec, "size", 0),
		Count:   numberAt(rec, "count", 0),
		Stride:  numberAt(rec, "stride", 0),
		Access:  stringAt(rec, "access"),
		Attrs:   extraAttrs(rec, registerKeys),
	}
	for _, f := range listAt(rec, "fields") {
		r.Fields = append(r.Fields, decodeField(f))
	}
	return r
}

func decodeField(rec map[string]any) amap.BitField {
	return amap.BitField{
		Name:   stringAt(rec, "name"),
		Offset: numberAt(rec, "bitOffset", 0),
		Width:  numberAt(rec, "bitWidth", 0),
		Access: stringAt(rec, "access"),
		Reset:  stringAt(rec, "reset"),
		Attrs:  extraAttrs(rec, fieldKeys),
	}
}

// stringAt reads a string property, tolerating absence and wrong types.
func stringAt(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

// numberAt reads a numeric property. JSON numbers arrive as float64, TOML
// integers as int64, and hex values as strings ("0x1000"). Anything absent,
// non-finite or unparseable resolves to def — a malformed size field is
// never an error.
func numberAt(rec map[string]any, key string, def int64) int64 {
	switch v := rec[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return def
		}
		// Base 0 accepts decimal, 0x hex and 0o octal.
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// listAt reads an array of records, skipping entries that are not objects.
// JSON arrays arrive as []any; TOML arrays of tables as []map[string]any.
func listAt(rec map[string]any, key string) []map[string]any {
	switch raw := rec[key].(type) {
	case []any:
		out := make([]map[string]any, 0, len(raw))
		for _, e := range raw {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case []map[string]any:
		return raw
	default:
		return nil
	}
}

// extraAttrs collects the properties outside the canonical keys.
func extraAttrs(rec map[string]any, canonical []string) map[string]any {
	var out map[string]any
	for k, v := range rec {
		known := false
		for _, c := range canonical {
			if k == c {
				known = true
				break
			}
		}
		if known {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}
