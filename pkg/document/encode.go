package document

import "github.com/bleviet/ipcraft/pkg/amap"

// encode rebuilds the document as loose records, Attrs first so the
// canonical keys always win.
func (d *Document) encode() map[string]any {
	rec := cloneAttrs(d.attrs)
	rec["name"] = d.Name
	maps := make([]any, len(d.Maps))
	for i, m := range d.Maps {
		maps[i] = encodeMap(m)
	}
	rec["memoryMaps"] = maps
	return rec
}

func encodeMap(m amap.MemoryMap) map[string]any {
	rec := cloneAttrs(m.Attrs)
	rec["name"] = m.Name
	rec["addressBlocks"] = encodeBlocks(m.Blocks)
	return rec
}

func encodeBlocks(blocks []amap.AddressBlock) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		rec := cloneAttrs(b.Attrs)
		rec["name"] = b.Name
		rec["baseAddress"] = b.Base
		if b.Size > 0 {
			key := b.SizeKey
			if key == "" {
				key = "size"
			}
			rec[key] = b.Size
		}
		if b.Usage != "" {
			rec["usage"] = b.Usage
		}
		if len(b.Registers) > 0 {
			rec["registers"] = encodeRegisters(b.Registers)
		}
		out[i] = rec
	}
	return out
}

func encodeRegisters(regs []amap.Register) []any {
	out := make([]any, len(regs))
	for i, r := range regs {
		rec := cloneAttrs(r.Attrs)
		rec["name"] = r.Name
		rec["offset"] = r.Offset
		if r.BitSize > 0 {
			rec["size"] = r.BitSize
		}
		if r.Count > 0 {
			rec["count"] = r.Count
		}
		if r.Stride > 0 {
			rec["stride"] = r.Stride
		}
		if r.Access != "" {
			rec["access"] = r.Access
		}
		if len(r.Fields) > 0 {
			rec["fields"] = encodeFields(r.Fields)
		}
		out[i] = rec
	}
	return out
}

func encodeFields(fields []amap.BitField) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		rec := cloneAttrs(f.Attrs)
		rec["name"] = f.Name
		rec["bitOffset"] = f.Offset
		rec["bitWidth"] = f.Footprint()
		if f.Access != "" {
			rec["access"] = f.Access
		}
		if f.Reset != "" {
			rec["reset"] = f.Reset
		}
		out[i] = rec
	}
	return out
}

func cloneAttrs(attrs map[string]any) map[string]any {
	rec := make(map[string]any, len(attrs)+6)
	for k, v := range attrs {
		rec[k] = v
	}
	return rec
}
