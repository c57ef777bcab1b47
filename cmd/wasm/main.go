//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/wirecanvas/wirecanvas/internal/engine"
)

// defaultFrames is how many animation frames an input-driven operation spans.
const defaultFrames = 12

var (
	eng    *engine.Engine
	canvas js.Value
	ctx2d  js.Value
)

func main() {
	eng = engine.NewEngine()
	if err := eng.LoadSampleWorld(); err != nil {
		logError("load sample world", err)
	}

	// Create the engine API object
	wirecanvasEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	wirecanvasEngine.Set("setUpOperation", js.FuncOf(setUpOperation))
	wirecanvasEngine.Set("cancel", js.FuncOf(cancel))
	wirecanvasEngine.Set("tick", js.FuncOf(tick))
	wirecanvasEngine.Set("importObject", js.FuncOf(importObject))
	wirecanvasEngine.Set("resize", js.FuncOf(resize))
	wirecanvasEngine.Set("setHighlight", js.FuncOf(setHighlight))

	// --- Queries (frontend ← backend) ---
	wirecanvasEngine.Set("frame", js.FuncOf(frame))
	wirecanvasEngine.Set("paintOrder", js.FuncOf(paintOrder))
	wirecanvasEngine.Set("getObject", js.FuncOf(getObject))
	wirecanvasEngine.Set("getOperationText", js.FuncOf(getOperationText))

	// Register on global scope
	js.Global().Set("wirecanvasEngine", wirecanvasEngine)

	// Draw into #mycanvas when the page has one; otherwise the host page
	// drives tick/frame itself.
	doc := js.Global().Get("document")
	canvas = doc.Call("getElementById", "mycanvas")
	if canvas.Truthy() {
		ctx2d = canvas.Call("getContext", "2d")
		fitCanvas(doc)
		doc.Call("addEventListener", "keydown", js.FuncOf(keyDown))
		canvas.Call("addEventListener", "wheel", js.FuncOf(wheel), map[string]interface{}{"passive": false})
		startRenderLoop(doc)
	}

	// Signal that WASM is ready
	js.Global().Set("wirecanvasWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

// setUpOperation(kind, x, y, z, frames?)
func setUpOperation(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return errorResult("expected kind, x, y, z")
	}

	op, err := engine.ParseOperation(args[0].String(), args[1].Float(), args[2].Float(), args[3].Float())
	if err != nil {
		return errorResult(err.Error())
	}

	frames := defaultFrames
	if len(args) > 4 && args[4].Type() == js.TypeNumber {
		frames = args[4].Int()
	}

	if err := eng.SetUpOperation(op, frames); err != nil {
		return errorResult(err.Error())
	}
	return okResult()
}

func cancel(this js.Value, args []js.Value) interface{} {
	eng.Cancel()
	return okResult()
}

// tick advances one animation frame. Returns whether the world moved.
func tick(this js.Value, args []js.Value) interface{} {
	moved := eng.Tick()
	eng.StopIfExhausted()
	return js.ValueOf(moved)
}

// importObject(template, x, y, z, name?)
func importObject(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return errorResult("expected template, x, y, z")
	}

	name := ""
	if len(args) > 4 && args[4].Type() == js.TypeString {
		name = args[4].String()
	}

	name, err := eng.ImportTemplate(name, args[0].String(), args[1].Float(), args[2].Float(), args[3].Float())
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "name": name})
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("expected width, height")
	}
	width, height := args[0].Float(), args[1].Float()
	if width <= 0 || height <= 0 {
		return errorResult("width and height must be positive")
	}
	eng.SetViewport(width, height)
	return okResult()
}

func setHighlight(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.ToggleHighlight()
	} else {
		eng.SetHighlight(args[0].Truthy())
	}
	return okResult()
}

// --- Query Handlers ---

func frame(this js.Value, args []js.Value) interface{} {
	data, err := eng.FrameJSON()
	if err != nil {
		logError("frame", err)
		return errorResult(err.Error())
	}
	return js.ValueOf(data)
}

func paintOrder(this js.Value, args []js.Value) interface{} {
	order := eng.PaintOrder()
	out := make([]interface{}, len(order))
	for i, name := range order {
		out[i] = name
	}
	return js.ValueOf(out)
}

func getObject(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	obj, err := eng.Object(args[0].String())
	if err != nil {
		return js.Null()
	}

	points := make([]interface{}, len(obj.Points))
	for i, p := range obj.Points {
		points[i] = map[string]interface{}{"id": p.ID, "x": p.X, "y": p.Y, "z": p.Z}
	}
	return js.ValueOf(map[string]interface{}{
		"color":  obj.Color,
		"points": points,
		"centroid": map[string]interface{}{
			"x": obj.Centroid.X,
			"y": obj.Centroid.Y,
			"z": obj.Centroid.Z,
		},
	})
}

func getOperationText(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.OperationText())
}

func logError(what string, err error) {
	js.Global().Get("console").Call("error", what+": "+err.Error())
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}
