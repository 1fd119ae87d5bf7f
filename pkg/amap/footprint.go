package amap

// Footprint returns the number of bits the field occupies.
func (f BitField) Footprint() int64 {
	if f.Width > 0 {
		return f.Width
	}
	return DefaultFieldWidth
}

// Footprint returns the number of bytes the register occupies. A register
// array occupies Count × Stride bytes; a plain register occupies its declared
// bit width in bytes, never less than one byte.
func (r Register) Footprint() int64 {
	if r.IsArray() {
		return r.Count * r.Stride
	}
	bytes := r.BitWidth() / 8
	if bytes < 1 {
		bytes = 1
	}
	return bytes
}

// Footprint returns the number of bytes the block occupies. A block that
// owns registers derives its footprint from them; otherwise the explicit
// size applies, defaulting to DefaultBlockSize.
func (b AddressBlock) Footprint() int64 {
	if len(b.Registers) > 0 {
		var sum int64
		for _, r := range b.Registers {
			sum += r.Footprint()
		}
		return sum
	}
	if b.Size > 0 {
		return b.Size
	}
	return DefaultBlockSize
}
