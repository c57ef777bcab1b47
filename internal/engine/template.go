package engine

import (
	"fmt"

	"github.com/wirecanvas/wirecanvas/internal/document"
)

// ObjectFromTemplate converts a library template into an object in its own
// local coordinates. Point IDs are the template positions 0..n-1; the
// importer replaces them when the object is placed.
func ObjectFromTemplate(t document.Template) (*Object, error) {
	points := make([]Point, len(t.Points))
	for i, p := range t.Points {
		points[i] = Point{ID: i, X: p[0], Y: p[1], Z: p[2]}
	}

	centroid, err := Centroid(points)
	if err != nil {
		return nil, err
	}

	edges := make([]Edge, len(t.Edges))
	for i, e := range t.Edges {
		edges[i] = Edge(e)
	}

	surfaces := make([]Surface, len(t.Surfaces))
	for i, s := range t.Surfaces {
		surfaces[i] = append(Surface(nil), s...)
	}

	obj := &Object{
		Color:    t.Color,
		Points:   points,
		Edges:    edges,
		Surfaces: surfaces,
		Centroid: centroid,
	}
	if err := obj.Validate(); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return obj, nil
}
