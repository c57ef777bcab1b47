package engine

import (
	"fmt"
	"sort"
)

// World is the set of named objects in world space. A World is never
// modified once it is visible to readers: a tick builds a replacement with
// Apply and the engine swaps it in.
type World struct {
	objects map[string]*Object
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{objects: make(map[string]*Object)}
}

// Len returns the number of objects.
func (w *World) Len() int {
	return len(w.objects)
}

// Object returns the named object.
func (w *World) Object(name string) (*Object, error) {
	obj, ok := w.objects[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrObjectNotFound)
	}
	return obj, nil
}

// Names returns every object name in lexical order.
func (w *World) Names() []string {
	names := make([]string, 0, len(w.objects))
	for name := range w.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of the world that also holds obj under name.
func (w *World) With(name string, obj *Object) (*World, error) {
	if _, ok := w.objects[name]; ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNameTaken)
	}

	next := make(map[string]*Object, len(w.objects)+1)
	for k, v := range w.objects {
		next[k] = v
	}
	next[name] = obj
	return &World{objects: next}, nil
}

// Apply returns a new world where every object has been transformed by m.
// Names and point counts are unchanged; only coordinates move.
func (w *World) Apply(m Matrix) *World {
	next := make(map[string]*Object, len(w.objects))
	for name, obj := range w.objects {
		next[name] = obj.Transform(m)
	}
	return &World{objects: next}
}
