package collections

import "sort"

// SortedKeys returns the keys of the map in sorted order.  Resolution output
// must be deterministic, so every map iteration that reaches a caller goes
// through here.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
