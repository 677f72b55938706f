// Package ordered provides generic helpers for id-keyed ordered sequences:
// reordering by an explicit id list, removal by id, and prepending.
package ordered

// ReorderByID projects items into the order given by orderedIDs. Only ids
// present in both the item list and orderedIDs survive: unknown ids are
// skipped, and items whose id is absent from orderedIDs are dropped.
// Callers that only want to reorder must pass the complete id set.
func ReorderByID[T any](items []T, orderedIDs []string, id func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}
	result := make([]T, 0, len(orderedIDs))
	for _, want := range orderedIDs {
		if it, ok := byID[want]; ok {
			result = append(result, it)
		}
	}
	return result
}

// RemoveByID returns items without the element whose id matches. An absent
// id leaves the sequence unchanged.
func RemoveByID[T any](items []T, target string, id func(T) string) []T {
	result := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) == target {
			continue
		}
		result = append(result, it)
	}
	return result
}

// Prepend returns a new slice with item at index 0 (newest-first ordering).
func Prepend[T any](items []T, item T) []T {
	result := make([]T, 0, len(items)+1)
	result = append(result, item)
	return append(result, items...)
}
