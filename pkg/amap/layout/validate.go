package layout

import (
	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
)

// Violations checks a collection against the packed-state invariants:
// non-negative offsets and no overlap between sibling occupied ranges.
// kind names the item kind in diagnostics ("field", "register", "block");
// unit names the axis unit ("bit", "byte"). It returns one diagnostic per
// violation; an empty slice means the collection is valid.
func Violations[T any](acc Accessor[T], items []T, kind, unit string) []error {
	var out []error

	for i, it := range items {
		if acc.Offset(it) < 0 {
			out = append(out, errors.New(errors.ErrCodeOutOfBounds,
				"%s %q has a negative %s offset %d", kind, acc.Name(it), unit, acc.Offset(it)))
		}

		lo := acc.Offset(it)
		hi := lo + acc.Footprint(it) - 1
		// Check only later siblings so each overlapping pair is reported once.
		rest := items[i+1:]
		if c, hit := Conflict(acc, rest, lo, hi, NoExclude); hit {
			out = append(out, errors.New(errors.ErrCodeOverlap,
				"%s %q overlaps %q", kind, acc.Name(it), acc.Name(rest[c])))
		}
	}

	return out
}

// RegisterViolations checks a register's field list: packed-state invariants
// on the bit axis, the field-width sum against the declared register width,
// and every field's range against that width.
func RegisterViolations(reg amap.Register) []error {
	out := Violations(Fields, reg.Fields, "field", "bit")

	width := reg.BitWidth()
	var sum int64
	for _, f := range reg.Fields {
		sum += f.Footprint()
		if f.MSB() >= width {
			out = append(out, errors.New(errors.ErrCodeOutOfBounds,
				"field %q bit range [%d:%d] exceeds register %q's %d-bit width",
				f.Name, f.MSB(), f.Offset, reg.Name, width))
		}
	}
	if sum > width {
		out = append(out, errors.New(errors.ErrCodeNoSpace,
			"register %q: field widths sum to %d bits, more than the %d-bit register width",
			reg.Name, sum, width))
	}

	return out
}
