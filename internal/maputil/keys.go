// Package maputil provides deterministic helpers for working with maps.
package maputil

import "sort"

// SortedKeys returns the keys of m in ascending order.
// A nil or empty map yields an empty, non-nil slice so callers can
// range over the result without nil checks.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
