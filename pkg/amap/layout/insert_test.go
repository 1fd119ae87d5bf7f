package layout

import (
	"strings"
	"testing"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
)

func TestInsertFieldEmptyCollection(t *testing.T) {
	got, idx, err := InsertField(nil, 0, After, 32)
	if err != nil {
		t.Fatalf("InsertField() error = %v", err)
	}
	if len(got) != 1 || idx != 0 {
		t.Fatalf("got %d items, idx %d, want 1 item at idx 0", len(got), idx)
	}
	if got[0].Name != "field1" || got[0].Offset != 0 || got[0].Footprint() != 1 {
		t.Errorf("synthesized field = %+v, want field1 at bit 0, width 1", got[0])
	}
}

func TestInsertFieldAfter(t *testing.T) {
	// A [7:4] field with no neighbors: the new 1-bit field lands at [8:8].
	fields := []amap.BitField{{Name: "mode", Offset: 4, Width: 4}}

	got, idx, err := InsertField(fields, 0, After, 32)
	if err != nil {
		t.Fatalf("InsertField() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("new index = %d, want 1", idx)
	}
	if got[idx].Offset != 8 || got[idx].MSB() != 8 {
		t.Errorf("new field range = [%d:%d], want [8:8]", got[idx].MSB(), got[idx].Offset)
	}
	if got[idx].Name != "field1" {
		t.Errorf("new field name = %q, want field1", got[idx].Name)
	}
}

func TestInsertFieldBefore(t *testing.T) {
	fields := []amap.BitField{{Name: "mode", Offset: 4, Width: 4}}

	got, idx, err := InsertField(fields, 0, Before, 32)
	if err != nil {
		t.Fatalf("InsertField() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("new index = %d, want 0", idx)
	}
	if got[idx].Offset != 3 || got[idx].MSB() != 3 {
		t.Errorf("new field range = [%d:%d], want [3:3]", got[idx].MSB(), got[idx].Offset)
	}
	// The anchor stays where it was.
	if got[1].Offset != 4 {
		t.Errorf("anchor moved to bit %d", got[1].Offset)
	}
}

func TestInsertFieldBeforeZeroOffsetFails(t *testing.T) {
	fields := []amap.BitField{{Name: "en", Offset: 0, Width: 1}}

	_, _, err := InsertField(fields, 0, Before, 32)
	if err == nil {
		t.Fatal("InsertField() succeeded, want out-of-bounds error")
	}
	if !errors.Is(err, errors.ErrCodeOutOfBounds) {
		t.Errorf("error code = %v, want OUT_OF_BOUNDS", errors.GetCode(err))
	}
}

func TestInsertFieldOutOfBounds(t *testing.T) {
	fields := []amap.BitField{{Name: "flags", Offset: 28, Width: 4}}

	_, _, err := InsertField(fields, 0, After, 32)
	if err == nil {
		t.Fatal("InsertField() succeeded, want out-of-bounds error")
	}
	if !errors.Is(err, errors.ErrCodeOutOfBounds) {
		t.Errorf("error code = %v, want OUT_OF_BOUNDS", errors.GetCode(err))
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "[32:32]") {
		t.Errorf("diagnostic %q does not name the offending range", msg)
	}
}

func TestInsertFieldOverlap(t *testing.T) {
	fields := []amap.BitField{
		{Name: "en", Offset: 4, Width: 1},
		{Name: "irq", Offset: 5, Width: 4},
	}

	_, _, err := InsertField(fields, 0, After, 32)
	if err == nil {
		t.Fatal("InsertField() succeeded, want overlap error")
	}
	if !errors.Is(err, errors.ErrCodeOverlap) {
		t.Errorf("error code = %v, want OVERLAP", errors.GetCode(err))
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "irq") {
		t.Errorf("diagnostic %q does not name the blocking sibling", msg)
	}
}

func TestInsertFieldGeneratedNameSkipsSuffixes(t *testing.T) {
	fields := []amap.BitField{
		{Name: "field3", Offset: 0, Width: 1},
		{Name: "field7", Offset: 1, Width: 1},
	}

	got, idx, err := InsertField(fields, 1, After, 32)
	if err != nil {
		t.Fatalf("InsertField() error = %v", err)
	}
	if got[idx].Name != "field8" {
		t.Errorf("new field name = %q, want field8", got[idx].Name)
	}
}

func TestInsertFieldInvalidAnchorUsesLast(t *testing.T) {
	fields := []amap.BitField{
		{Name: "en", Offset: 0, Width: 1},
		{Name: "mode", Offset: 4, Width: 4},
	}

	got, idx, err := InsertField(fields, 99, After, 32)
	if err != nil {
		t.Fatalf("InsertField() error = %v", err)
	}
	if got[idx].Offset != 8 {
		t.Errorf("new field at bit %d, want 8 (after last field)", got[idx].Offset)
	}
}

func TestInsertFieldNoOverlapInvariant(t *testing.T) {
	fields := []amap.BitField{
		{Name: "a", Offset: 0, Width: 2},
		{Name: "b", Offset: 8, Width: 4},
		{Name: "c", Offset: 16, Width: 1},
	}

	got, _, err := InsertField(fields, 1, After, 32)
	if err != nil {
		t.Fatalf("InsertField() error = %v", err)
	}
	if v := Violations(Fields, got, "field", "bit"); len(v) != 0 {
		t.Errorf("planner returned an overlapping collection: %v", v)
	}
}

func TestInsertRegisterEmptyCollection(t *testing.T) {
	got, idx, err := InsertRegister(nil, 0, Before)
	if err != nil {
		t.Fatalf("InsertRegister() error = %v", err)
	}
	if len(got) != 1 || idx != 0 {
		t.Fatalf("got %d items, idx %d, want 1 item at idx 0", len(got), idx)
	}
	if got[0].Name != "reg1" || got[0].Offset != 0 || got[0].Footprint() != 4 {
		t.Errorf("synthesized register = %+v, want reg1 at 0, 4 bytes", got[0])
	}
}

func TestInsertRegisterAfterCompactsSuffix(t *testing.T) {
	regs := []amap.Register{
		{Name: "ctrl", Offset: 0},
		{Name: "status", Offset: 16},
	}

	got, idx, err := InsertRegister(regs, 0, After)
	if err != nil {
		t.Fatalf("InsertRegister() error = %v", err)
	}
	if idx != 1 || got[1].Offset != 4 {
		t.Fatalf("new register at index %d offset %d, want index 1 offset 4", idx, got[1].Offset)
	}
	// The suffix past the new register is repacked to adjacency.
	if got[2].Offset != 8 {
		t.Errorf("suffix register at %d, want 8", got[2].Offset)
	}
}

func TestInsertRegisterAfterArrayAnchor(t *testing.T) {
	regs := []amap.Register{
		{Name: "fifo", Offset: 0, Count: 4, Stride: 8},
	}

	got, idx, err := InsertRegister(regs, 0, After)
	if err != nil {
		t.Fatalf("InsertRegister() error = %v", err)
	}
	if got[idx].Offset != 32 {
		t.Errorf("new register at %d, want 32 (past the array footprint)", got[idx].Offset)
	}
}

func TestInsertRegisterBeforeZeroOffsetFails(t *testing.T) {
	regs := []amap.Register{{Name: "ctrl", Offset: 0}}

	_, _, err := InsertRegister(regs, 0, Before)
	if err == nil {
		t.Fatal("InsertRegister() succeeded, want no-space error")
	}
	if !errors.Is(err, errors.ErrCodeNoSpace) {
		t.Errorf("error code = %v, want NO_SPACE", errors.GetCode(err))
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "not enough address space") {
		t.Errorf("diagnostic %q, want a not-enough-address-space message", msg)
	}
}

func TestInsertRegisterBeforeRepacksPrefix(t *testing.T) {
	regs := []amap.Register{
		{Name: "ctrl", Offset: 4},
		{Name: "status", Offset: 12},
	}

	got, idx, err := InsertRegister(regs, 1, Before)
	if err != nil {
		t.Fatalf("InsertRegister() error = %v", err)
	}
	if idx != 1 || got[idx].Offset != 8 {
		t.Fatalf("new register at index %d offset %d, want index 1 offset 8", idx, got[idx].Offset)
	}
	// The prefix is pushed down to stay adjacent to the new register.
	if got[0].Offset != 4 {
		t.Errorf("prefix register at %d, want 4", got[0].Offset)
	}
	if got[2].Offset != 12 {
		t.Errorf("anchor moved to %d", got[2].Offset)
	}
}

func TestInsertRegisterOverlapFails(t *testing.T) {
	regs := []amap.Register{
		{Name: "ctrl", Offset: 0},
		{Name: "status", Offset: 4},
	}

	_, _, err := InsertRegister(regs, 0, After)
	if err == nil {
		t.Fatal("InsertRegister() succeeded, want overlap error")
	}
	if !errors.Is(err, errors.ErrCodeOverlap) {
		t.Errorf("error code = %v, want OVERLAP", errors.GetCode(err))
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "status") {
		t.Errorf("diagnostic %q does not name the blocking sibling", msg)
	}
}

func TestInsertBlockEmptyCollection(t *testing.T) {
	got, idx, err := InsertBlock(nil, 5, After)
	if err != nil {
		t.Fatalf("InsertBlock() error = %v", err)
	}
	if len(got) != 1 || idx != 0 {
		t.Fatalf("got %d items, idx %d, want 1 item at idx 0", len(got), idx)
	}
	if got[0].Name != "block1" || got[0].Base != 0 {
		t.Errorf("synthesized block = %+v, want block1 at 0", got[0])
	}
}

func TestInsertBlockBeforeFirstFails(t *testing.T) {
	blocks := []amap.AddressBlock{{Name: "rom", Base: 0, Size: 0x1000}}

	_, _, err := InsertBlock(blocks, 0, Before)
	if err == nil {
		t.Fatal("InsertBlock() succeeded, want no-space error")
	}
	if !errors.Is(err, errors.ErrCodeNoSpace) {
		t.Errorf("error code = %v, want NO_SPACE", errors.GetCode(err))
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "not enough address space") {
		t.Errorf("diagnostic %q, want a not-enough-address-space message", msg)
	}
}

func TestInsertBlockBeforeShrinksNeighbor(t *testing.T) {
	blocks := []amap.AddressBlock{
		{Name: "rom", Base: 0, Size: 0x100},
		{Name: "ram", Base: 0x100, Size: 0x100},
	}

	got, idx, err := InsertBlock(blocks, 1, Before)
	if err != nil {
		t.Fatalf("InsertBlock() error = %v", err)
	}
	if idx != 1 {
		t.Fatalf("new index = %d, want 1", idx)
	}
	if got[idx].Base != 0xFC {
		t.Errorf("new block base = %#x, want 0xFC", got[idx].Base)
	}
	// The crowding neighbor's size is cut to exactly close the gap.
	if got[0].Size != 0xFC {
		t.Errorf("neighbor size = %#x, want 0xFC", got[0].Size)
	}
	if got[2].Base != 0x100 {
		t.Errorf("anchor moved to %#x", got[2].Base)
	}
	if v := Violations(Blocks, got, "block", "byte"); len(v) != 0 {
		t.Errorf("planner returned an overlapping collection: %v", v)
	}
}

func TestInsertBlockResizeImpossible(t *testing.T) {
	blocks := []amap.AddressBlock{
		// Footprint derives from owned registers, so the block cannot shrink.
		{Name: "uart", Base: 0, Registers: []amap.Register{{Name: "ctrl"}, {Name: "data", Offset: 4}}},
		{Name: "ram", Base: 8, Size: 0x100},
	}

	_, _, err := InsertBlock(blocks, 1, Before)
	if err == nil {
		t.Fatal("InsertBlock() succeeded, want overlap error")
	}
	if !errors.Is(err, errors.ErrCodeOverlap) {
		t.Errorf("error code = %v, want OVERLAP", errors.GetCode(err))
	}
}

func TestInsertBlockAfter(t *testing.T) {
	blocks := []amap.AddressBlock{
		{Name: "rom", Base: 0, Size: 0x100},
		{Name: "ram", Base: 0x1000, Size: 0x100},
	}

	got, idx, err := InsertBlock(blocks, 0, After)
	if err != nil {
		t.Fatalf("InsertBlock() error = %v", err)
	}
	if got[idx].Base != 0x100 {
		t.Errorf("new block base = %#x, want 0x100", got[idx].Base)
	}
	// Suffix repacked to adjacency past the new block.
	if got[2].Base != 0x104 {
		t.Errorf("suffix block base = %#x, want 0x104", got[2].Base)
	}
}

func TestInsertDoesNotMutateInput(t *testing.T) {
	regs := []amap.Register{
		{Name: "ctrl", Offset: 0},
		{Name: "status", Offset: 16},
	}

	_, _, err := InsertRegister(regs, 0, After)
	if err != nil {
		t.Fatalf("InsertRegister() error = %v", err)
	}
	if regs[0].Offset != 0 || regs[1].Offset != 16 || len(regs) != 2 {
		t.Errorf("input collection mutated: %+v", regs)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("after"); err != nil || d != After {
		t.Errorf("ParseDirection(after) = %v, %v", d, err)
	}
	if d, err := ParseDirection("before"); err != nil || d != Before {
		t.Errorf("ParseDirection(before) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) succeeded, want error")
	}
}
