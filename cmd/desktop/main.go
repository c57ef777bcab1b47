// Command desktop shows the world in a native window.
package main

import (
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/wirecanvas/wirecanvas/internal/config"
	"github.com/wirecanvas/wirecanvas/internal/document"
	"github.com/wirecanvas/wirecanvas/internal/engine"
	"github.com/wirecanvas/wirecanvas/internal/input"
)

// keyNames maps ebiten keys to the names input.ForKey understands.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
	ebiten.KeyArrowUp:    "ArrowUp",
	ebiten.KeyArrowDown:  "ArrowDown",
	ebiten.KeyPageUp:     "PageUp",
	ebiten.KeyPageDown:   "PageDown",
	ebiten.KeyX:          "x",
	ebiten.KeyY:          "y",
	ebiten.KeyZ:          "z",
	ebiten.KeyH:          "h",
	ebiten.KeyEscape:     "Escape",
}

var fallbackColor = color.RGBA{0x99, 0x99, 0x99, 0xff}

type game struct {
	eng    *engine.Engine
	frames int

	width, height int
	white         *ebiten.Image
}

func (g *game) Update() error {
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			if _, err := input.Dispatch(g.eng, name, shift, g.frames); err != nil {
				slog.Warn("key ignored", "error", err)
			}
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		// ebiten reports scrolling up as positive; the browser as negative.
		if err := g.eng.SetUpOperation(input.ForWheel(-dy), g.frames); err != nil {
			slog.Warn("wheel ignored", "error", err)
		}
	}

	g.eng.Tick()
	g.eng.StopIfExhausted()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	if g.white == nil {
		g.white = ebiten.NewImage(3, 3)
		g.white.Fill(color.White)
	}
	src := g.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	f := g.eng.Frame()
	cx, cy := float32(f.Width/2), float32(f.Height/2)
	step := float32(f.Step)
	toScreen := func(p engine.Point) (float32, float32) {
		return cx + float32(p.X)*step, cy - float32(p.Y)*step
	}

	for _, obj := range f.Objects {
		r, gr, b := rgb(obj.Color)

		for _, s := range obj.Surfaces {
			var path vector.Path
			for i, idx := range s {
				x, y := toScreen(obj.Points[idx])
				if i == 0 {
					path.MoveTo(x, y)
				} else {
					path.LineTo(x, y)
				}
			}
			path.Close()

			vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
			for i := range vs {
				vs[i].SrcX, vs[i].SrcY = 1, 1
				vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, gr, b, 0.6
			}
			screen.DrawTriangles(vs, is, src, &ebiten.DrawTrianglesOptions{AntiAlias: true})
		}

		width := float32(1)
		if obj.Highlight {
			width = 2
		}
		for _, e := range obj.Edges {
			x0, y0 := toScreen(obj.Points[e[0]])
			x1, y1 := toScreen(obj.Points[e[1]])
			vector.StrokeLine(screen, x0, y0, x1, y1, width, color.Black, true)
		}
	}

	ebitenutil.DebugPrint(screen, f.Operation)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.eng.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// rgb returns the color's channels in [0, 1]. Named colors are not parsed
// and draw in gray.
func rgb(hex string) (float32, float32, float32) {
	c, err := colorful.Hex(hex)
	if err != nil {
		fr, fg, fb, _ := fallbackColor.RGBA()
		return float32(fr) / 0xffff, float32(fg) / 0xffff, float32(fb) / 0xffff
	}
	c = c.Clamped()
	return float32(c.R), float32(c.G), float32(c.B)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	eng := engine.NewEngine()
	if cfg.TemplateFile != "" {
		lib, err := document.LoadFile(cfg.TemplateFile)
		if err != nil {
			slog.Error("load templates", "error", err, "file", cfg.TemplateFile)
			os.Exit(1)
		}
		eng.LoadLibrary(lib)
	}
	if cfg.SampleWorld {
		if err := eng.LoadSampleWorld(); err != nil {
			slog.Error("load sample world", "error", err)
			os.Exit(1)
		}
	}

	ebiten.SetWindowTitle("wirecanvas")
	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(&game{eng: eng, frames: cfg.Frames}); err != nil {
		slog.Error("run window", "error", err)
		os.Exit(1)
	}
}
