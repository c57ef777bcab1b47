package engine

import "sort"

// PaintOrder returns object names sorted by descending centroid Z, the order
// in which they should be painted. Objects that overlap in depth can still
// paint incorrectly; there is no per-polygon sort. Ties have no fixed order.
func PaintOrder(w *World) []string {
	type entry struct {
		name string
		z    float64
	}

	entries := make([]entry, 0, len(w.objects))
	for name, obj := range w.objects {
		entries = append(entries, entry{name: name, z: obj.Centroid.Z})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].z > entries[j].z
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
