package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wirecanvas/wirecanvas/internal/document"
	"github.com/wirecanvas/wirecanvas/internal/typeid"
)

// TextComplete is shown once a tick finds nothing left to apply.
const TextComplete = "Complete"

// Engine owns the world, the active operation and the viewport state.
// Every entry point (animation tick, input handlers, queries) goes through it.
type Engine struct {
	mu sync.RWMutex

	// Animation state
	state OperationState

	// World space, replaced wholesale on every applied tick
	world    *World
	importer *Importer

	// Object templates available for import
	library *document.Library

	// Presentation state
	width     float64
	height    float64
	highlight bool
}

// NewEngine creates an engine with an empty world and the built-in templates.
func NewEngine() *Engine {
	return &Engine{
		state:    IdleState(),
		world:    NewWorld(),
		importer: NewImporter(),
		library:  document.NewSampleLibrary(),
	}
}

// --- Commands (frontend → engine) ---

// SetUpOperation replaces the active operation with op spread over frames
// ticks. Any frames left on the previous operation are abandoned.
func (e *Engine) SetUpOperation(op Operation, frames int) error {
	state, err := NewOperationState(op, frames)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
	return nil
}

// Cancel stops the active operation from the next tick on.
func (e *Engine) Cancel() {
	e.mu.Lock()
	e.state.Op = NoOp{}
	e.mu.Unlock()
}

// Tick applies one step of the active operation to every object and reports
// whether anything moved. This is called once per animation frame by the host.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.halted() {
		e.state.Text = TextComplete
		return false
	}

	e.world = e.world.Apply(e.state.Step)
	e.state.Remaining--
	return true
}

// StopIfExhausted cancels an operation whose frame budget is used up and
// reports whether it did. Hosts call it after Tick so that rotate and
// translate stop with the same budget as scale.
func (e *Engine) StopIfExhausted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, idle := e.state.Op.(NoOp); idle || !e.state.Exhausted() {
		return false
	}
	e.state.Op = NoOp{}
	return true
}

// Import places tmpl into the world under name at (x, y, z). An empty name
// gets a generated one. The name used is returned.
func (e *Engine) Import(name string, tmpl *Object, x, y, z float64) (string, error) {
	if name == "" {
		name = typeid.NewObjectID()
	}

	obj, err := e.importer.Import(tmpl, x, y, z)
	if err != nil {
		return "", fmt.Errorf("import %q: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	world, err := e.world.With(name, obj)
	if err != nil {
		return "", fmt.Errorf("import: %w", err)
	}
	e.world = world
	return name, nil
}

// ImportTemplate imports a library template by name.
func (e *Engine) ImportTemplate(name, template string, x, y, z float64) (string, error) {
	e.mu.RLock()
	t, ok := e.library.Templates[template]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%q: %w", template, ErrTemplateNotFound)
	}

	tmpl, err := ObjectFromTemplate(t)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", template, err)
	}
	return e.Import(name, tmpl, x, y, z)
}

// LoadLibrary replaces the templates available for import.
func (e *Engine) LoadLibrary(lib *document.Library) {
	e.mu.Lock()
	e.library = lib
	e.mu.Unlock()
}

// AddTemplates merges templates into the library, replacing any with the
// same name. Objects already imported are unaffected.
func (e *Engine) AddTemplates(templates map[string]document.Template) {
	e.mu.Lock()
	defer e.mu.Unlock()

	merged := make(map[string]document.Template, len(e.library.Templates)+len(templates))
	for name, t := range e.library.Templates {
		merged[name] = t
	}
	for name, t := range templates {
		merged[name] = t
	}
	e.library = &document.Library{Templates: merged, World: e.library.World}
}

// LoadSampleWorld imports every placement listed by the current library.
func (e *Engine) LoadSampleWorld() error {
	e.mu.RLock()
	placements := e.library.World
	e.mu.RUnlock()

	for _, p := range placements {
		if _, err := e.ImportTemplate(p.Name, p.Template, p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return nil
}

// SetViewport records the canvas size in pixels.
func (e *Engine) SetViewport(width, height float64) {
	e.mu.Lock()
	e.width = width
	e.height = height
	e.mu.Unlock()
}

// SetHighlight turns highlighting of the front-most object on or off.
func (e *Engine) SetHighlight(on bool) {
	e.mu.Lock()
	e.highlight = on
	e.mu.Unlock()
}

// ToggleHighlight flips the highlight flag.
func (e *Engine) ToggleHighlight() {
	e.mu.Lock()
	e.highlight = !e.highlight
	e.mu.Unlock()
}

// --- Queries (frontend ← engine) ---

// Snapshot returns the current world. The world is never mutated, so the
// caller can read it without holding the lock, and every read through it
// sees the same tick.
func (e *Engine) Snapshot() *World {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.world
}

// PaintOrder returns object names back to front.
func (e *Engine) PaintOrder() []string {
	return PaintOrder(e.Snapshot())
}

// Object returns the named object.
func (e *Engine) Object(name string) (*Object, error) {
	return e.Snapshot().Object(name)
}

// Names returns every object name in lexical order.
func (e *Engine) Names() []string {
	return e.Snapshot().Names()
}

// TemplateNames returns the importable template names in lexical order.
func (e *Engine) TemplateNames() []string {
	e.mu.RLock()
	names := e.library.Names()
	e.mu.RUnlock()
	sort.Strings(names)
	return names
}

// State returns a copy of the operation state.
func (e *Engine) State() OperationState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// OperationText returns the description shown on screen.
func (e *Engine) OperationText() string {
	return e.State().Text
}

// Active returns the active operation.
func (e *Engine) Active() Operation {
	return e.State().Op
}

// Remaining returns the frames left on the active operation.
func (e *Engine) Remaining() int {
	return e.State().Remaining
}

// Viewport returns the canvas size in pixels.
func (e *Engine) Viewport() (float64, float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.width, e.height
}

// Highlight returns the highlight flag.
func (e *Engine) Highlight() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.highlight
}

// Frame returns the draw list for the current world.
func (e *Engine) Frame() Frame {
	e.mu.RLock()
	world := e.world
	text := e.state.Text
	width, height := e.width, e.height
	highlight := e.highlight
	e.mu.RUnlock()

	return CompileFrame(world, text, width, height, highlight)
}

// FrameJSON returns the current frame as JSON.
func (e *Engine) FrameJSON() (string, error) {
	return FrameToJSON(e.Frame())
}
