package engine

import (
	"fmt"
	"sync"
)

// Importer places template objects into world space. It owns the point
// identity counter shared by every import, so two imports never hand out the
// same point ID.
type Importer struct {
	mu   sync.Mutex
	next int
}

// NewImporter creates an importer whose first point ID is 0.
func NewImporter() *Importer {
	return &Importer{}
}

// reserve hands out n consecutive point IDs and returns the first.
func (im *Importer) reserve(n int) int {
	im.mu.Lock()
	defer im.mu.Unlock()
	first := im.next
	im.next += n
	return first
}

// Import translates every template point by (x, y, z), assigns fresh point IDs
// and recomputes the centroid. Edges and surfaces reference positions, so they
// are copied as they are.
func (im *Importer) Import(tmpl *Object, x, y, z float64) (*Object, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	m := Translate(x, y, z)
	first := im.reserve(len(tmpl.Points))

	points := make([]Point, len(tmpl.Points))
	for i, p := range tmpl.Points {
		points[i] = m.TransformPoint(p)
		points[i].ID = first + i
	}

	centroid, err := Centroid(points)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	edges := make([]Edge, len(tmpl.Edges))
	copy(edges, tmpl.Edges)

	surfaces := make([]Surface, len(tmpl.Surfaces))
	for i, s := range tmpl.Surfaces {
		surfaces[i] = append(Surface(nil), s...)
	}

	return &Object{
		Color:    tmpl.Color,
		Points:   points,
		Edges:    edges,
		Surfaces: surfaces,
		Centroid: centroid,
	}, nil
}
