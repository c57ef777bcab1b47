package engine

import (
	"encoding/json"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// unitsAcross is how many world units fit across the shorter canvas side.
const unitsAcross = 20

// highlightBlend is how far a highlighted color moves toward white.
const highlightBlend = 0.4

// DrawObject is one object ready for the canvas. Points carry world x/y/z;
// there is no projection, the frontend scales x and y by Frame.Step.
type DrawObject struct {
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Highlight bool      `json:"highlight,omitempty"`
	Points    []Point   `json:"points"`
	Edges     []Edge    `json:"edges"`
	Surfaces  []Surface `json:"surfaces"`
}

// Frame is everything the frontend needs to draw one animation frame.
// Objects are in painter's order (back to front).
type Frame struct {
	Operation string       `json:"operation"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Step      float64      `json:"step"`
	Objects   []DrawObject `json:"objects"`
}

// PixelStep returns the pixel-per-unit factor for a viewport, or 0 when the
// viewport size is not known yet.
func PixelStep(width, height float64) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return min(width, height) / unitsAcross
}

// CompileFrame builds the draw list for a world. When highlight is set the
// front-most object is marked and drawn in a lighter shade.
func CompileFrame(w *World, text string, width, height float64, highlight bool) Frame {
	order := PaintOrder(w)

	frame := Frame{
		Operation: text,
		Width:     width,
		Height:    height,
		Step:      PixelStep(width, height),
		Objects:   make([]DrawObject, 0, len(order)),
	}

	for i, name := range order {
		obj := w.objects[name]
		d := DrawObject{
			Name:     name,
			Color:    obj.Color,
			Points:   obj.Points,
			Edges:    obj.Edges,
			Surfaces: obj.Surfaces,
		}
		if highlight && i == len(order)-1 {
			d.Highlight = true
			d.Color = Lighten(obj.Color, highlightBlend)
		}
		frame.Objects = append(frame.Objects, d)
	}

	return frame
}

// Lighten blends a hex color toward white in Lab space. Colors that are not
// hex strings are returned unchanged.
func Lighten(color string, amount float64) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, amount).Clamped().Hex()
}

// FrameToJSON serializes a frame to JSON.
func FrameToJSON(f Frame) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}
	return string(data), nil
}
