package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrDuplicateName   = errors.New("duplicate placement name")
	ErrInvalidColor    = errors.New("invalid color")
)

// Library is a set of object templates plus an optional starting layout.
type Library struct {
	Templates map[string]Template `json:"templates" yaml:"templates"`
	World     []Placement         `json:"world" yaml:"world"`
}

// Template is an object in its own local coordinates. Edges and surfaces
// index into Points.
type Template struct {
	Color    string       `json:"color" yaml:"color"`
	Points   [][3]float64 `json:"points" yaml:"points"`
	Edges    [][2]int     `json:"edges" yaml:"edges"`
	Surfaces [][]int      `json:"surfaces" yaml:"surfaces"`
}

// Placement puts a named instance of a template at a world offset.
type Placement struct {
	Name     string  `json:"name" yaml:"name"`
	Template string  `json:"template" yaml:"template"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Z        float64 `json:"z" yaml:"z"`
}

// Parse decodes and validates a library from JSON.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// ParseYAML decodes and validates a library written in YAML. The layout
// matches the JSON form.
func ParseYAML(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// LoadFile reads a library from a .json, .yaml or .yml file.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Validate checks template colors and that every placement names a known
// template under a unique name. Geometry is checked on import.
func (l *Library) Validate() error {
	for name, t := range l.Templates {
		if err := ValidateColor(t.Color); err != nil {
			return fmt.Errorf("template %q: %w", name, err)
		}
	}

	seen := make(map[string]bool, len(l.World))
	for _, p := range l.World {
		if _, ok := l.Templates[p.Template]; !ok {
			return fmt.Errorf("placement %q uses %q: %w", p.Name, p.Template, ErrUnknownTemplate)
		}
		if p.Name == "" {
			continue
		}
		if seen[p.Name] {
			return fmt.Errorf("%q: %w", p.Name, ErrDuplicateName)
		}
		seen[p.Name] = true
	}
	return nil
}

// ValidateColor accepts hex colors that parse and leaves named canvas colors
// ("red", "steelblue") to the renderer.
func ValidateColor(c string) error {
	c = strings.TrimSpace(c)
	if c == "" {
		return fmt.Errorf("empty: %w", ErrInvalidColor)
	}
	if !strings.HasPrefix(c, "#") {
		return nil
	}
	if _, err := colorful.Hex(c); err != nil {
		return fmt.Errorf("%q: %w", c, ErrInvalidColor)
	}
	return nil
}

// Names returns the template names.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.Templates))
	for name := range l.Templates {
		names = append(names, name)
	}
	return names
}
