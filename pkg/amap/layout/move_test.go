package layout

import (
	"testing"

	"github.com/bleviet/ipcraft/pkg/amap"
)

func TestMoveUp(t *testing.T) {
	in := regsAt(0, 4, 8)

	got, pos := MoveUp(Registers, in, 2)

	if pos != 1 {
		t.Fatalf("pos = %d, want 1", pos)
	}
	if got[1].Name != in[2].Name || got[2].Name != in[1].Name {
		t.Errorf("order = [%s %s %s], want swap of last two", got[0].Name, got[1].Name, got[2].Name)
	}
	if !equalOffsets(registerOffsets(got), []int64{0, 4, 8}) {
		t.Errorf("offsets = %v, want packed [0 4 8]", registerOffsets(got))
	}
	if !equalOffsets(registerOffsets(in), []int64{0, 4, 8}) {
		t.Error("input mutated")
	}
}

func TestMoveUpAtTop(t *testing.T) {
	in := regsAt(0, 4)

	got, pos := MoveUp(Registers, in, 0)

	if pos != 0 {
		t.Errorf("pos = %d, want 0", pos)
	}
	if got[0].Name != in[0].Name {
		t.Error("top item should not move")
	}
}

func TestMoveDown(t *testing.T) {
	in := regsAt(0, 4, 8)

	got, pos := MoveDown(Registers, in, 0)

	if pos != 1 {
		t.Fatalf("pos = %d, want 1", pos)
	}
	if got[0].Name != in[1].Name || got[1].Name != in[0].Name {
		t.Errorf("order = [%s %s %s], want swap of first two", got[0].Name, got[1].Name, got[2].Name)
	}
	if !equalOffsets(registerOffsets(got), []int64{0, 4, 8}) {
		t.Errorf("offsets = %v, want packed [0 4 8]", registerOffsets(got))
	}
}

func TestMoveDownAtBottom(t *testing.T) {
	in := regsAt(0, 4)

	got, pos := MoveDown(Registers, in, 1)

	if pos != 1 {
		t.Errorf("pos = %d, want 1", pos)
	}
	if got[1].Name != in[1].Name {
		t.Error("bottom item should not move")
	}
}

func TestMoveOutOfRange(t *testing.T) {
	in := regsAt(0, 4)

	if _, pos := MoveUp(Registers, in, 5); pos != 5 {
		t.Errorf("MoveUp out of range: pos = %d, want 5", pos)
	}
	if _, pos := MoveDown(Registers, in, -1); pos != -1 {
		t.Errorf("MoveDown out of range: pos = %d, want -1", pos)
	}
}

func TestMoveRepacksUnevenFootprints(t *testing.T) {
	in := []amap.Register{
		{Name: "a", Offset: 0, BitSize: 64},
		{Name: "b", Offset: 8, BitSize: 32},
	}

	got, pos := MoveDown(Registers, in, 0)

	if pos != 1 {
		t.Fatalf("pos = %d, want 1", pos)
	}
	// b now leads with its 4-byte footprint; a follows adjacently.
	if got[0].Offset != 0 || got[1].Offset != 4 {
		t.Errorf("offsets = [%d %d], want [0 4]", got[0].Offset, got[1].Offset)
	}
}
