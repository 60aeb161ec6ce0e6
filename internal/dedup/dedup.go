// Package dedup partitions candidate records against the set of identifiers
// already present in the destination store.
package dedup

// Partition splits items into fresh and existing by identity. Content is
// ignored: an item whose id is already known always lands in existing, even if
// its fields differ from what was persisted before.
func Partition[T any](items []T, known map[string]struct{}, id func(T) string) (fresh, existing []T) {
	for _, item := range items {
		if _, ok := known[id(item)]; ok {
			existing = append(existing, item)
		} else {
			fresh = append(fresh, item)
		}
	}
	return fresh, existing
}
