package layout

import (
	"cmp"
	"slices"
)

// Normalize returns the collection stable-sorted by offset ascending.
// Stability matters: several items can legitimately share an offset
// transiently mid-edit, and their relative input order must survive.
func Normalize[T any](acc Accessor[T], items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(acc.Offset(a), acc.Offset(b))
	})
	return out
}

// indexOf locates an item by name after a normalization pass.
// Returns -1 when the name is absent.
func indexOf[T any](acc Accessor[T], items []T, name string) int {
	for i, it := range items {
		if acc.Name(it) == name {
			return i
		}
	}
	return -1
}
