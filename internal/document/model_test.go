package document

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestSampleLibraryValidates(t *testing.T) {
	lib := NewSampleLibrary()
	if err := lib.Validate(); err != nil {
		t.Fatal(err)
	}

	names := lib.Names()
	sort.Strings(names)
	want := []string{"cube", "prism", "pyramid", "triangle"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}

	for name, tmpl := range lib.Templates {
		for _, s := range tmpl.Surfaces {
			if len(s) < 3 {
				t.Errorf("%s: surface %v is degenerate", name, s)
			}
			for _, idx := range s {
				if idx < 0 || idx >= len(tmpl.Points) {
					t.Errorf("%s: surface index %d out of range", name, idx)
				}
			}
		}
		for _, e := range tmpl.Edges {
			for _, idx := range e {
				if idx < 0 || idx >= len(tmpl.Points) {
					t.Errorf("%s: edge index %d out of range", name, idx)
				}
			}
		}
	}
}

func TestPaletteDistinct(t *testing.T) {
	colors := palette(4)
	seen := make(map[string]bool)
	for _, c := range colors {
		if err := ValidateColor(c); err != nil {
			t.Fatal(err)
		}
		if seen[c] {
			t.Fatalf("color %s repeated in %v", c, colors)
		}
		seen[c] = true
	}
}

func TestParse(t *testing.T) {
	data := []byte(`{
		"templates": {
			"tri": {"color": "#00ff00", "points": [[0,0,0],[1,0,0],[0,1,0]], "edges": [[0,1],[1,2],[2,0]], "surfaces": [[0,1,2]]}
		},
		"world": [{"name": "a", "template": "tri", "x": 1, "y": 2, "z": 3}]
	}`)

	lib, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	tri := lib.Templates["tri"]
	if len(tri.Points) != 3 || tri.Points[1] != [3]float64{1, 0, 0} {
		t.Fatalf("points = %v", tri.Points)
	}
	if len(lib.World) != 1 || lib.World[0].Z != 3 {
		t.Fatalf("world = %+v", lib.World)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown template", `{"templates": {}, "world": [{"name": "a", "template": "cube"}]}`, ErrUnknownTemplate},
		{"duplicate name", `{"templates": {"t": {"color": "red"}}, "world": [{"name": "a", "template": "t"}, {"name": "a", "template": "t"}]}`, ErrDuplicateName},
		{"bad hex", `{"templates": {"t": {"color": "#zzzzzz"}}}`, ErrInvalidColor},
		{"empty color", `{"templates": {"t": {"color": ""}}}`, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.json")
	if err := os.WriteFile(path, []byte(`{"templates": {"t": {"color": "navy", "points": [[0,0,0]]}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lib.Templates["t"].Color != "navy" {
		t.Fatalf("lib = %+v", lib)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileYAML(t *testing.T) {
	const src = `templates:
  tri:
    color: "#cc3300"
    points:
      - [0, 0, 0]
      - [1, 0, 0]
      - [0, 1, 0]
    edges:
      - [0, 1]
      - [1, 2]
      - [2, 0]
    surfaces:
      - [0, 1, 2]
world:
  - name: a
    template: tri
    x: 1
    y: 2
    z: 3
`
	path := filepath.Join(t.TempDir(), "lib.yaml")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tri, ok := lib.Templates["tri"]
	if !ok || len(tri.Points) != 3 || tri.Points[1] != [3]float64{1, 0, 0} {
		t.Fatalf("tri = %+v", tri)
	}
	if len(lib.World) != 1 || lib.World[0].Z != 3 {
		t.Fatalf("world = %+v", lib.World)
	}
}

func TestParseYAMLUnknownTemplate(t *testing.T) {
	_, err := ParseYAML([]byte("templates: {}\nworld:\n  - name: a\n    template: ghost\n"))
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v, want ErrUnknownTemplate", err)
	}
}
