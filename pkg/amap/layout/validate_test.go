package layout

import (
	"strings"
	"testing"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
)

func TestViolationsCleanCollection(t *testing.T) {
	if got := Violations(Registers, regsAt(0, 4, 8), "register", "byte"); len(got) != 0 {
		t.Errorf("packed collection reported %d violations: %v", len(got), got)
	}
	// A gap between siblings is not a violation, only overlap is.
	if got := Violations(Registers, regsAt(0, 0x100), "register", "byte"); len(got) != 0 {
		t.Errorf("gapped collection reported %d violations: %v", len(got), got)
	}
	if got := Violations(Registers, nil, "register", "byte"); len(got) != 0 {
		t.Errorf("empty collection reported %d violations", len(got))
	}
}

func TestViolationsOverlap(t *testing.T) {
	// 4-byte registers at 0 and 2 collide on [2,3].
	got := Violations(Registers, regsAt(0, 2), "register", "byte")

	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(got), got)
	}
	if !errors.Is(got[0], errors.ErrCodeOverlap) {
		t.Errorf("code = %v, want overlap", got[0])
	}
	if !strings.Contains(got[0].Error(), "overlaps") {
		t.Errorf("diagnostic %q should name the overlap", got[0])
	}
}

func TestViolationsReportsEachPairOnce(t *testing.T) {
	// Three registers stacked at the same offset: each item reports its
	// first conflicting later sibling, so two diagnostics, not three.
	got := Violations(Registers, regsAt(0, 0, 0), "register", "byte")

	if len(got) != 2 {
		t.Errorf("got %d violations, want 2: %v", len(got), got)
	}
}

func TestViolationsNegativeOffset(t *testing.T) {
	got := Violations(Registers, regsAt(-4), "register", "byte")

	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(got), got)
	}
	if !errors.Is(got[0], errors.ErrCodeOutOfBounds) {
		t.Errorf("code = %v, want out of bounds", got[0])
	}
}

func TestRegisterViolations(t *testing.T) {
	tests := []struct {
		name string
		reg  amap.Register
		want int
	}{
		{
			"clean register",
			amap.Register{Name: "ctrl", BitSize: 32, Fields: []amap.BitField{
				{Name: "en", Offset: 0, Width: 1},
				{Name: "mode", Offset: 1, Width: 2},
			}},
			0,
		},
		{
			"no fields",
			amap.Register{Name: "data", BitSize: 32},
			0,
		},
		{
			"field past register width",
			amap.Register{Name: "ctrl", BitSize: 8, Fields: []amap.BitField{
				{Name: "div", Offset: 4, Width: 8},
			}},
			1,
		},
		{
			"overlapping fields",
			amap.Register{Name: "ctrl", BitSize: 32, Fields: []amap.BitField{
				{Name: "a", Offset: 0, Width: 4},
				{Name: "b", Offset: 2, Width: 4},
			}},
			1,
		},
		{
			"widths exceed register width",
			amap.Register{Name: "ctrl", BitSize: 8, Fields: []amap.BitField{
				{Name: "a", Offset: 0, Width: 6},
				{Name: "b", Offset: 6, Width: 6},
			}},
			// The second field also runs past bit 7, so two diagnostics.
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegisterViolations(tt.reg)
			if len(got) != tt.want {
				t.Errorf("got %d violations, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}
