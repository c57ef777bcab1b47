package engine

import "fmt"

// Point is a vertex in world space. ID is unique within a world; transforms
// produce a new Point carrying the same ID.
type Point struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// Edge is a line segment between two positions in the owning object's point list.
type Edge [2]int

// Surface is a closed polygon visiting positions in the owning object's point
// list in order. It is expected to be planar and non-self-intersecting.
type Surface []int

// Object is a named rigid body in world space. Centroid is the mean of Points
// and is recomputed (or transformed) together with them.
type Object struct {
	Color    string    `json:"color"`
	Points   []Point   `json:"points"`
	Edges    []Edge    `json:"edges"`
	Surfaces []Surface `json:"surfaces"`
	Centroid Point     `json:"centroid"`
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, ErrEmptyObject
	}

	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(points))
	c.X /= n
	c.Y /= n
	c.Z /= n
	return c, nil
}

// Validate checks that the object has points and that every edge and surface
// references positions inside its point list.
func (o *Object) Validate() error {
	n := len(o.Points)
	if n == 0 {
		return ErrEmptyObject
	}

	for i, e := range o.Edges {
		for _, idx := range e {
			if idx < 0 || idx >= n {
				return fmt.Errorf("edge %d references point %d of %d: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}

	for i, s := range o.Surfaces {
		if len(s) < 3 {
			return fmt.Errorf("surface %d has %d points: %w", i, len(s), ErrDegenerateSurface)
		}
		for _, idx := range s {
			if idx < 0 || idx >= n {
				return fmt.Errorf("surface %d references point %d of %d: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}

	return nil
}

// Transform returns a new object with every point and the centroid passed
// through m. Color, edges and surfaces are shared with the receiver; they are
// never mutated after import.
func (o *Object) Transform(m Matrix) *Object {
	points := make([]Point, len(o.Points))
	for i, p := range o.Points {
		points[i] = m.TransformPoint(p)
	}

	return &Object{
		Color:    o.Color,
		Points:   points,
		Edges:    o.Edges,
		Surfaces: o.Surfaces,
		Centroid: m.TransformPoint(o.Centroid),
	}
}
