package document

import colorful "github.com/lucasb-eyer/go-colorful"

// palette spreads n hues evenly around the color wheel.
func palette(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = colorful.Hsv(float64(i)*360/float64(n), 0.65, 0.9).Hex()
	}
	return out
}

// NewSampleLibrary returns the built-in templates and a small layout using
// each of them once.
func NewSampleLibrary() *Library {
	colors := palette(4)

	return &Library{
		Templates: map[string]Template{
			"cube": {
				Color: colors[0],
				Points: [][3]float64{
					{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
					{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
				},
				Edges: [][2]int{
					{0, 1}, {1, 2}, {2, 3}, {3, 0},
					{4, 5}, {5, 6}, {6, 7}, {7, 4},
					{0, 4}, {1, 5}, {2, 6}, {3, 7},
				},
				Surfaces: [][]int{
					{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
					{2, 3, 7, 6}, {0, 3, 7, 4}, {1, 2, 6, 5},
				},
			},
			"pyramid": {
				Color: colors[1],
				Points: [][3]float64{
					{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
					{0, 1, 0},
				},
				Edges: [][2]int{
					{0, 1}, {1, 2}, {2, 3}, {3, 0},
					{0, 4}, {1, 4}, {2, 4}, {3, 4},
				},
				Surfaces: [][]int{
					{0, 1, 2, 3},
					{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
				},
			},
			"prism": {
				Color: colors[2],
				Points: [][3]float64{
					{-1, -1, -1}, {1, -1, -1}, {0, 1, -1},
					{-1, -1, 1}, {1, -1, 1}, {0, 1, 1},
				},
				Edges: [][2]int{
					{0, 1}, {1, 2}, {2, 0},
					{3, 4}, {4, 5}, {5, 3},
					{0, 3}, {1, 4}, {2, 5},
				},
				Surfaces: [][]int{
					{0, 1, 2}, {3, 4, 5},
					{0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5},
				},
			},
			"triangle": {
				Color:    colors[3],
				Points:   [][3]float64{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}},
				Edges:    [][2]int{{0, 1}, {1, 2}, {2, 0}},
				Surfaces: [][]int{{0, 1, 2}},
			},
		},
		World: []Placement{
			{Name: "cube", Template: "cube", X: -4, Y: 0, Z: 0},
			{Name: "pyramid", Template: "pyramid", X: 0, Y: 0, Z: 3},
			{Name: "prism", Template: "prism", X: 4, Y: 0, Z: -2},
			{Name: "triangle", Template: "triangle", X: 0, Y: 4, Z: 0},
		},
	}
}
