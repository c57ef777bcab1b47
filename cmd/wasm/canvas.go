//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/wirecanvas/wirecanvas/internal/engine"
	"github.com/wirecanvas/wirecanvas/internal/input"
)

var width, height float64

func fitCanvas(doc js.Value) {
	w := doc.Get("body").Get("clientWidth").Float()
	h := doc.Get("body").Get("clientHeight").Float()
	if w == width && h == height {
		return
	}
	width, height = w, h
	canvas.Set("width", width)
	canvas.Set("height", height)
	if width > 0 && height > 0 {
		eng.SetViewport(width, height)
	}
}

func startRenderLoop(doc js.Value) {
	var renderFrame js.Func
	renderFrame = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fitCanvas(doc)

		eng.Tick()
		eng.StopIfExhausted()
		draw(eng.Frame())

		js.Global().Call("requestAnimationFrame", renderFrame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", renderFrame)
}

// draw paints a frame back to front. World x grows right and y grows up,
// with the origin in the middle of the canvas.
func draw(f engine.Frame) {
	ctx2d.Set("fillStyle", "white")
	ctx2d.Call("fillRect", 0, 0, f.Width, f.Height)

	cx, cy := f.Width/2, f.Height/2
	toScreen := func(p engine.Point) (float64, float64) {
		return cx + p.X*f.Step, cy - p.Y*f.Step
	}

	for _, obj := range f.Objects {
		ctx2d.Set("fillStyle", obj.Color)
		ctx2d.Set("globalAlpha", 0.6)
		for _, s := range obj.Surfaces {
			ctx2d.Call("beginPath")
			for i, idx := range s {
				x, y := toScreen(obj.Points[idx])
				if i == 0 {
					ctx2d.Call("moveTo", x, y)
				} else {
					ctx2d.Call("lineTo", x, y)
				}
			}
			ctx2d.Call("closePath")
			ctx2d.Call("fill")
		}

		ctx2d.Set("globalAlpha", 1.0)
		ctx2d.Set("strokeStyle", "black")
		if obj.Highlight {
			ctx2d.Set("lineWidth", 2)
		} else {
			ctx2d.Set("lineWidth", 1)
		}
		ctx2d.Call("beginPath")
		for _, e := range obj.Edges {
			x0, y0 := toScreen(obj.Points[e[0]])
			x1, y1 := toScreen(obj.Points[e[1]])
			ctx2d.Call("moveTo", x0, y0)
			ctx2d.Call("lineTo", x1, y1)
		}
		ctx2d.Call("stroke")
	}

	ctx2d.Set("fillStyle", "black")
	ctx2d.Set("font", "16px sans-serif")
	ctx2d.Call("fillText", f.Operation, 10, 24)
}

func keyDown(this js.Value, args []js.Value) interface{} {
	e := args[0]
	bound, err := input.Dispatch(eng, e.Get("key").String(), e.Get("shiftKey").Bool(), defaultFrames)
	if err != nil {
		logError("key", err)
	}
	if bound {
		e.Call("preventDefault")
	}
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	e := args[0]
	e.Call("preventDefault")
	if err := eng.SetUpOperation(input.ForWheel(e.Get("deltaY").Float()), defaultFrames); err != nil {
		logError("wheel", err)
	}
	return nil
}
