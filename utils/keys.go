package utils

import (
	"maps"
	"slices"
)

// SortedKeys returns the keys of m in ascending order, never nil.
func SortedKeys[T any](m map[string]T) []string {
	keys := slices.AppendSeq(make([]string, 0, len(m)), maps.Keys(m))
	slices.Sort(keys)
	return keys
}
