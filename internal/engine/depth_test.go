package engine

import (
	"reflect"
	"testing"
)

func atDepth(z float64) *Object {
	obj := triangle()
	obj.Centroid.Z = z
	return obj
}

func TestPaintOrder(t *testing.T) {
	w := worldOf(t, map[string]*Object{
		"back":   atDepth(-1.0),
		"middle": atDepth(0.0),
		"front":  atDepth(2.5),
	})

	got := PaintOrder(w)
	want := []string{"front", "middle", "back"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PaintOrder = %v, want %v", got, want)
	}
}

func TestPaintOrderEmpty(t *testing.T) {
	if got := PaintOrder(NewWorld()); len(got) != 0 {
		t.Fatalf("PaintOrder = %v, want empty", got)
	}
}

func TestPaintOrderFollowsTicks(t *testing.T) {
	w := worldOf(t, map[string]*Object{
		"left":  atDepth(1),
		"right": atDepth(-1),
	})
	if got := PaintOrder(w); got[0] != "left" {
		t.Fatalf("before: %v", got)
	}

	// Half a turn about Y swaps the sign of every z.
	w = w.Apply(RotateY(180))
	if got := PaintOrder(w); got[0] != "right" {
		t.Fatalf("after: %v", got)
	}
}
