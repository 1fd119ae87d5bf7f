package amap

// Default sizes applied when a document leaves a size determinant out.
// Malformed or missing size fields never fail: a partially-edited document
// must always produce a usable model.
const (
	// DefaultRegisterBits is the declared bit width assumed for a register
	// without an explicit size.
	DefaultRegisterBits = 32

	// DefaultBlockSize is the byte footprint assumed for an address block
	// without an explicit size and without owned registers.
	DefaultBlockSize = 4

	// DefaultFieldWidth is the bit width assumed for a field without an
	// explicit width.
	DefaultFieldWidth = 1
)

// BitField occupies the bit range [Offset, Offset+Width) of its register,
// with Offset naming the least significant bit.
type BitField struct {
	Name   string
	Offset int64 // lsb position within the register
	Width  int64 // bits; <= 0 means unspecified

	// Access and Reset are domain properties the layout engine passes
	// through untouched.
	Access string
	Reset  string

	// Attrs holds every document property not mapped to a struct field,
	// preserved verbatim on save.
	Attrs map[string]any
}

// MSB returns the most significant bit of the field's occupied range.
func (f BitField) MSB() int64 {
	return f.Offset + f.Footprint() - 1
}

// Register sits at a byte Offset within its address block. A register with
// Count > 1 and a positive Stride is a register array occupying
// Count × Stride bytes.
type Register struct {
	Name    string
	Offset  int64 // bytes from the block base
	BitSize int64 // declared width in bits; <= 0 means unspecified
	Count   int64 // array element count; <= 1 means plain register
	Stride  int64 // bytes between array elements

	Access string
	Fields []BitField
	Attrs  map[string]any
}

// IsArray reports whether the register is a register array.
func (r Register) IsArray() bool {
	return r.Count > 1 && r.Stride > 0
}

// BitWidth returns the register's declared bit width, falling back to
// DefaultRegisterBits when unspecified.
func (r Register) BitWidth() int64 {
	if r.BitSize > 0 {
		return r.BitSize
	}
	return DefaultRegisterBits
}

// End returns the first byte past the register's occupied range.
func (r Register) End() int64 {
	return r.Offset + r.Footprint()
}

// AddressBlock sits at Base on its memory map's address axis. Its footprint
// is the explicit Size when set, or the sum of the owned registers'
// footprints when it owns any.
type AddressBlock struct {
	Name string
	Base int64 // byte address
	Size int64 // explicit byte size; <= 0 means unspecified

	// SizeKey records which document key declared the size ("size", or the
	// IP-XACT style "range"), so a save keeps the source's spelling.
	SizeKey string

	Usage     string
	Registers []Register
	Attrs     map[string]any
}

// HasExplicitSize reports whether the block's footprint comes from an
// explicit, directly editable size field. Only such blocks can be shrunk by
// the insertion planner's auto-resize.
func (b AddressBlock) HasExplicitSize() bool {
	return b.Size > 0 && len(b.Registers) == 0
}

// End returns the first byte past the block's occupied range.
func (b AddressBlock) End() int64 {
	return b.Base + b.Footprint()
}

// MemoryMap is an ordered collection of address blocks sharing one address
// axis.
type MemoryMap struct {
	Name   string
	Blocks []AddressBlock
	Attrs  map[string]any
}
