package layout

import (
	"slices"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
)

// Direction selects which side of the anchor an insertion targets.
type Direction int

const (
	// After places the new item directly past the anchor's occupied range.
	After Direction = iota
	// Before places the new item directly ahead of the anchor.
	Before
)

// String returns "after" or "before".
func (d Direction) String() string {
	if d == Before {
		return "before"
	}
	return "after"
}

// ParseDirection parses "after" or "before".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "after":
		return After, nil
	case "before":
		return Before, nil
	}
	return After, errors.New(errors.ErrCodeInvalidInput, "direction must be %q or %q, got %q", "after", "before", s)
}

// InsertField plans the insertion of a new one-bit field before or after the
// anchor field. registerBits is the containing register's declared bit
// width; the candidate position and the repacked result must both stay
// inside [0, registerBits).
//
// On success it returns the new collection, normalized by offset, and the
// index of the inserted field within it. On failure it returns a recoverable
// diagnostic and the input is left for the caller to keep.
func InsertField(fields []amap.BitField, anchor int, dir Direction, registerBits int64) ([]amap.BitField, int, error) {
	if len(fields) == 0 {
		item := amap.BitField{
			Name:  amap.NextName(amap.FieldNamePrefix, nil),
			Width: amap.DefaultFieldWidth,
		}
		return []amap.BitField{item}, 0, nil
	}

	if anchor < 0 || anchor >= len(fields) {
		anchor = len(fields) - 1
	}

	const width = int64(amap.DefaultFieldWidth)
	var lo int64
	if dir == After {
		lo = fields[anchor].MSB() + 1
	} else {
		lo = fields[anchor].Offset - width
	}
	hi := lo + width - 1

	if lo < 0 || hi >= registerBits {
		return nil, 0, errors.New(errors.ErrCodeOutOfBounds,
			"bit range [%d:%d] is outside the register's %d-bit width", hi, lo, registerBits)
	}

	if c, hit := Conflict(Fields, fields, lo, hi, anchor); hit {
		return nil, 0, errors.New(errors.ErrCodeOverlap,
			"bit range [%d:%d] overlaps field %q", hi, lo, fields[c].Name)
	}

	item := amap.BitField{
		Name:   amap.NextName(amap.FieldNamePrefix, amap.FieldNames(fields)),
		Offset: lo,
		Width:  width,
	}

	pos := anchor
	if dir == After {
		pos = anchor + 1
	}
	out := slices.Insert(slices.Clone(fields), pos, item)

	if dir == After {
		out = RepackForward(Fields, out, anchor+2)
	} else {
		out = RepackBackward(Fields, out, pos-1)
	}
	out = Normalize(Fields, out)

	// Repacking can push other fields out of bounds even when the requested
	// position itself was valid.
	for _, f := range out {
		if f.Offset < 0 || f.MSB() >= registerBits {
			return nil, 0, errors.New(errors.ErrCodeNoSpace, "not enough space for repacking")
		}
	}

	return out, indexOf(Fields, out, item.Name), nil
}

// InsertRegister plans the insertion of a new plain register before or after
// the anchor register on the block's byte axis.
func InsertRegister(regs []amap.Register, anchor int, dir Direction) ([]amap.Register, int, error) {
	if len(regs) == 0 {
		item := amap.Register{
			Name:    amap.NextName(amap.RegisterNamePrefix, nil),
			BitSize: amap.DefaultRegisterBits,
		}
		return []amap.Register{item}, 0, nil
	}

	if anchor < 0 || anchor >= len(regs) {
		anchor = len(regs) - 1
	}

	item := amap.Register{
		Name:    amap.NextName(amap.RegisterNamePrefix, amap.RegisterNames(regs)),
		BitSize: amap.DefaultRegisterBits,
	}
	footprint := item.Footprint()

	var offset int64
	if dir == After {
		offset = regs[anchor].End()
	} else {
		offset = regs[anchor].Offset - footprint
		if offset < 0 {
			return nil, 0, errors.New(errors.ErrCodeNoSpace,
				"not enough address space to insert before register %q", regs[anchor].Name)
		}
	}
	item.Offset = offset

	if c, hit := Conflict(Registers, regs, offset, offset+footprint-1, anchor); hit {
		// A register has no explicit size to shrink, so the auto-resize of
		// the crowding neighbor is never possible here.
		return nil, 0, errors.New(errors.ErrCodeOverlap,
			"address range [0x%X, 0x%X) overlaps register %q", offset, offset+footprint, regs[c].Name)
	}

	pos := anchor
	if dir == After {
		pos = anchor + 1
	}
	out := slices.Insert(slices.Clone(regs), pos, item)

	if dir == After {
		out = RepackForward(Registers, out, anchor+2)
	} else {
		out = RepackBackward(Registers, out, pos-1)
	}
	out = Normalize(Registers, out)

	return out, indexOf(Registers, out, item.Name), nil
}

// InsertBlock plans the insertion of a new address block before or after the
// anchor block on the map's address axis. When an insert-before candidate
// collides with the preceding sibling, the planner shrinks that sibling's
// explicit size to exactly close the gap; the insertion fails only when no
// such resize is possible.
func InsertBlock(blocks []amap.AddressBlock, anchor int, dir Direction) ([]amap.AddressBlock, int, error) {
	if len(blocks) == 0 {
		item := amap.AddressBlock{
			Name: amap.NextName(amap.BlockNamePrefix, nil),
			Size: amap.DefaultBlockSize,
		}
		return []amap.AddressBlock{item}, 0, nil
	}

	if anchor < 0 || anchor >= len(blocks) {
		anchor = len(blocks) - 1
	}

	item := amap.AddressBlock{
		Name: amap.NextName(amap.BlockNamePrefix, amap.BlockNames(blocks)),
		Size: amap.DefaultBlockSize,
	}
	footprint := item.Footprint()

	var base int64
	if dir == After {
		base = blocks[anchor].End()
	} else {
		base = blocks[anchor].Base - footprint
		if base < 0 {
			return nil, 0, errors.New(errors.ErrCodeNoSpace,
				"not enough address space to insert before block %q", blocks[anchor].Name)
		}
	}
	item.Base = base

	out := slices.Clone(blocks)
	if c, hit := Conflict(Blocks, out, base, base+footprint-1, anchor); hit {
		resized, ok := shrinkBlock(out[c], dir, base)
		if !ok {
			return nil, 0, errors.New(errors.ErrCodeOverlap,
				"address range [0x%X, 0x%X) overlaps block %q", base, base+footprint, out[c].Name)
		}
		out[c] = resized
	}

	pos := anchor
	if dir == After {
		pos = anchor + 1
	}
	out = slices.Insert(out, pos, item)

	if dir == After {
		out = RepackForward(Blocks, out, anchor+2)
	} else {
		out = RepackBackward(Blocks, out, pos-1)
	}
	out = Normalize(Blocks, out)

	return out, indexOf(Blocks, out, item.Name), nil
}

// shrinkBlock proposes the auto-resize of a crowding neighbor: on an
// insert-before whose candidate starts inside the preceding sibling, the
// sibling's explicit size is cut to end exactly at the new item's start.
// The resize is impossible for a block whose footprint derives from owned
// registers, for a sibling that starts at or past the candidate, and when
// the required size would not be positive.
func shrinkBlock(b amap.AddressBlock, dir Direction, newStart int64) (amap.AddressBlock, bool) {
	if dir != Before {
		return b, false
	}
	if len(b.Registers) > 0 {
		return b, false
	}
	if b.Base >= newStart {
		return b, false
	}
	need := newStart - b.Base
	if need <= 0 {
		return b, false
	}
	b.Size = need
	return b, true
}
