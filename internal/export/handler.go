package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wirecanvas/wirecanvas/internal/document"
	"github.com/wirecanvas/wirecanvas/internal/engine"
)

type Handler struct {
	eng *engine.Engine
}

func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

// ExportWorld handles GET /api/export. The response is a template library
// holding every object in its current world position, so loading it back
// through TEMPLATE_FILE recreates the scene.
func (h *Handler) ExportWorld(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "world"
	}
	name = sanitize(name)

	lib, err := WorldLibrary(h.eng)
	if err != nil {
		slog.Error("export world", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		slog.Error("marshal library", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, name))
	w.Write(data)

	slog.Info("export complete", "objects", len(lib.World), "size", len(data))
}

// WorldLibrary converts the engine's world into a library with one template
// per object and a placement of each at the origin. Every object comes from
// the same tick.
func WorldLibrary(eng *engine.Engine) (*document.Library, error) {
	world := eng.Snapshot()
	names := world.Names()
	lib := &document.Library{
		Templates: make(map[string]document.Template, len(names)),
		World:     make([]document.Placement, 0, len(names)),
	}

	for _, name := range names {
		obj, err := world.Object(name)
		if err != nil {
			return nil, fmt.Errorf("export %q: %w", name, err)
		}
		lib.Templates[name] = templateOf(obj)
		lib.World = append(lib.World, document.Placement{Name: name, Template: name})
	}
	return lib, nil
}

func templateOf(obj *engine.Object) document.Template {
	t := document.Template{
		Color:    obj.Color,
		Points:   make([][3]float64, len(obj.Points)),
		Edges:    make([][2]int, len(obj.Edges)),
		Surfaces: make([][]int, len(obj.Surfaces)),
	}
	for i, p := range obj.Points {
		t.Points[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, e := range obj.Edges {
		t.Edges[i] = [2]int(e)
	}
	for i, s := range obj.Surfaces {
		t.Surfaces[i] = append([]int(nil), s...)
	}
	return t
}

// sanitize keeps filename characters that are safe in a header.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
