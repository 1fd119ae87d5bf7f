package layout

import "github.com/bleviet/ipcraft/pkg/amap"

// Accessor describes how the engine reads and rewrites one kind of item.
// WithOffset must return a copy; the engine relies on it to keep inputs
// untouched.
type Accessor[T any] interface {
	Offset(T) int64
	WithOffset(T, int64) T
	Footprint(T) int64
	Name(T) string
}

type fieldAccess struct{}

func (fieldAccess) Offset(f amap.BitField) int64    { return f.Offset }
func (fieldAccess) Footprint(f amap.BitField) int64 { return f.Footprint() }
func (fieldAccess) Name(f amap.BitField) string     { return f.Name }
func (fieldAccess) WithOffset(f amap.BitField, at int64) amap.BitField {
	f.Offset = at
	return f
}

type registerAccess struct{}

func (registerAccess) Offset(r amap.Register) int64    { return r.Offset }
func (registerAccess) Footprint(r amap.Register) int64 { return r.Footprint() }
func (registerAccess) Name(r amap.Register) string     { return r.Name }
func (registerAccess) WithOffset(r amap.Register, at int64) amap.Register {
	r.Offset = at
	return r
}

type blockAccess struct{}

func (blockAccess) Offset(b amap.AddressBlock) int64    { return b.Base }
func (blockAccess) Footprint(b amap.AddressBlock) int64 { return b.Footprint() }
func (blockAccess) Name(b amap.AddressBlock) string     { return b.Name }
func (blockAccess) WithOffset(b amap.AddressBlock, at int64) amap.AddressBlock {
	b.Base = at
	return b
}

// Accessors for the three collection kinds.
var (
	Fields    Accessor[amap.BitField]     = fieldAccess{}
	Registers Accessor[amap.Register]     = registerAccess{}
	Blocks    Accessor[amap.AddressBlock] = blockAccess{}
)
