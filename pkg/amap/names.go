package amap

import (
	"regexp"
	"strconv"
)

// Generated-name prefixes for items synthesized by the insertion planner.
const (
	FieldNamePrefix    = "field"
	RegisterNamePrefix = "reg"
	BlockNamePrefix    = "block"
)

// NextName returns prefix followed by one plus the largest numeric suffix
// among existing names matching the generated-name pattern, so repeated
// insertions never collide. With no matching names it returns prefix + "1".
func NextName(prefix string, existing []string) string {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)$`)

	var maxSuffix int64
	for _, name := range existing {
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if n > maxSuffix {
			maxSuffix = n
		}
	}

	return prefix + strconv.FormatInt(maxSuffix+1, 10)
}

// FieldNames returns the names of all fields in order.
func FieldNames(fields []BitField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// RegisterNames returns the names of all registers in order.
func RegisterNames(regs []Register) []string {
	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = r.Name
	}
	return names
}

// BlockNames returns the names of all blocks in order.
func BlockNames(blocks []AddressBlock) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}
	return names
}
