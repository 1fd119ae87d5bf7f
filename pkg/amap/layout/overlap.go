package layout

// NoExclude disables the sibling exclusion in Conflict.
const NoExclude = -1

// Conflict reports the first sibling whose occupied range intersects the
// candidate range [lo, hi], both bounds inclusive. exclude names a sibling
// index to skip (the anchor of an insertion), or NoExclude.
//
// Two inclusive ranges [aLo, aHi] and [bLo, bHi] overlap iff
// aLo <= bHi && aHi >= bLo.
func Conflict[T any](acc Accessor[T], items []T, lo, hi int64, exclude int) (int, bool) {
	for i, it := range items {
		if i == exclude {
			continue
		}
		bLo := acc.Offset(it)
		bHi := bLo + acc.Footprint(it) - 1
		if lo <= bHi && hi >= bLo {
			return i, true
		}
	}
	return 0, false
}
