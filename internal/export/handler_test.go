package export

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/wirecanvas/wirecanvas/internal/document"
	"github.com/wirecanvas/wirecanvas/internal/engine"
)

func sampleEngine(t *testing.T) *engine.Engine {
	t.Helper()

	eng := engine.NewEngine()
	if err := eng.LoadSampleWorld(); err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestWorldLibraryRoundTrip(t *testing.T) {
	eng := sampleEngine(t)
	if err := eng.SetUpOperation(engine.RotateOp{Y: 90}, 3); err != nil {
		t.Fatal(err)
	}
	eng.Tick()
	eng.Tick()

	lib, err := WorldLibrary(eng)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(lib)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := document.Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	restored := engine.NewEngine()
	restored.LoadLibrary(parsed)
	if err := restored.LoadSampleWorld(); err != nil {
		t.Fatal(err)
	}

	for _, name := range eng.Names() {
		want, _ := eng.Object(name)
		got, err := restored.Object(name)
		if err != nil {
			t.Fatalf("%s missing after round trip: %v", name, err)
		}
		if len(got.Points) != len(want.Points) || got.Color != want.Color {
			t.Fatalf("%s: got %+v", name, got)
		}
		for i := range want.Points {
			w, g := want.Points[i], got.Points[i]
			if w.X != g.X || w.Y != g.Y || w.Z != g.Z {
				t.Fatalf("%s point %d = %+v, want %+v", name, i, g, w)
			}
		}
	}
}

func TestExportWorld(t *testing.T) {
	h := NewHandler(sampleEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/api/export?name=my%20scene!", nil)
	rec := httptest.NewRecorder()
	h.ExportWorld(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="my-scene-.json"` {
		t.Fatalf("content disposition = %q", got)
	}

	var lib document.Library
	if err := json.NewDecoder(rec.Body).Decode(&lib); err != nil {
		t.Fatal(err)
	}
	if len(lib.Templates) != 4 || len(lib.World) != 4 {
		t.Fatalf("library has %d templates, %d placements", len(lib.Templates), len(lib.World))
	}
}

func TestWorldLibraryDuringTicks(t *testing.T) {
	eng := engine.NewEngine()
	tmpl := &engine.Object{
		Color:  "#000000",
		Points: []engine.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}},
		Edges:  []engine.Edge{{0, 1}, {1, 2}, {2, 0}},
	}
	for i := 0; i < 8; i++ {
		if _, err := eng.Import(fmt.Sprintf("t%d", i), tmpl, 0, 0, 0); err != nil {
			t.Fatal(err)
		}
	}
	// Translate keeps reapplying once its frame is spent.
	if err := eng.SetUpOperation(engine.TranslateOp{X: 1}, 1); err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				eng.Tick()
			}
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	for i := 0; i < 500; i++ {
		lib, err := WorldLibrary(eng)
		if err != nil {
			t.Fatal(err)
		}
		first := lib.Templates["t0"].Points[0][0]
		for name, tmpl := range lib.Templates {
			if got := tmpl.Points[0][0]; got != first {
				t.Fatalf("export %d: %s at x=%v, t0 at x=%v", i, name, got, first)
			}
		}
	}
}
