package layout

import "slices"

// MoveUp swaps the item at index with its lower-offset neighbor, then
// restores adjacency for the disturbed suffix. It returns the new collection
// and the item's new index. Index 0 (and any out-of-range index) is a no-op.
func MoveUp[T any](acc Accessor[T], items []T, index int) ([]T, int) {
	if index <= 0 || index >= len(items) {
		return slices.Clone(items), index
	}
	out := slices.Clone(items)
	out[index-1], out[index] = out[index], out[index-1]
	return RepackForward(acc, out, index-1), index - 1
}

// MoveDown swaps the item at index with its higher-offset neighbor, then
// restores adjacency for the disturbed suffix. The last index (and any
// out-of-range index) is a no-op.
func MoveDown[T any](acc Accessor[T], items []T, index int) ([]T, int) {
	if index < 0 || index >= len(items)-1 {
		return slices.Clone(items), index
	}
	out := slices.Clone(items)
	out[index], out[index+1] = out[index+1], out[index]
	return RepackForward(acc, out, index), index + 1
}
