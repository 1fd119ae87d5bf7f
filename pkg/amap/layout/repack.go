package layout

import "slices"

// target is the backward-repack cursor: either "keep the item's current
// offset" (the zero value) or an explicit position.
type target struct {
	known bool
	at    int64
}

func keepCurrent() target   { return target{} }
func setTo(at int64) target { return target{known: true, at: at} }
func (t target) resolve(current int64) int64 {
	if t.known {
		return t.at
	}
	return current
}

// RepackForward re-lays-out the suffix of items starting at from, offsets
// increasing. The first repacked item lands directly after its predecessor
// (or at zero when from is 0) and every later item follows adjacently; any
// original gaps in the suffix are discarded. Items before from are untouched.
//
// An out-of-range from returns an unchanged copy. The input slice and its
// elements are never mutated.
func RepackForward[T any](acc Accessor[T], items []T, from int) []T {
	out := slices.Clone(items)
	if from < 0 || from >= len(out) {
		return out
	}

	var cursor int64
	if from > 0 {
		prev := out[from-1]
		cursor = acc.Offset(prev) + acc.Footprint(prev)
	}

	for i := from; i < len(out); i++ {
		out[i] = acc.WithOffset(out[i], cursor)
		cursor += acc.Footprint(out[i])
	}
	return out
}

// RepackBackward re-lays-out the prefix of items ending at from, offsets
// decreasing and clamped at zero. When from is not the last index the first
// repacked item is placed so that it ends exactly where its successor
// begins; when from is the last index that item keeps its current offset.
//
// Clamping affects only the stored offset of the clamped item: the
// arithmetic base used to place its predecessor keeps the unclamped value,
// preserving relative spacing even when the tail runs out of room. Items
// after from are untouched. An out-of-range from returns an unchanged copy.
func RepackBackward[T any](acc Accessor[T], items []T, from int) []T {
	out := slices.Clone(items)
	if from < 0 || from >= len(out) {
		return out
	}

	cursor := keepCurrent()
	if from < len(out)-1 {
		cursor = setTo(acc.Offset(out[from+1]) - acc.Footprint(out[from]))
	}

	for i := from; i >= 0; i-- {
		resolved := cursor.resolve(acc.Offset(out[i]))
		out[i] = acc.WithOffset(out[i], max(0, resolved))

		prev := i - 1
		if prev < 0 {
			prev = 0
		}
		cursor = setTo(resolved - acc.Footprint(out[prev]))
	}
	return out
}
