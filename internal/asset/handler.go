package asset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wirecanvas/wirecanvas/internal/document"
	"github.com/wirecanvas/wirecanvas/internal/engine"
	"github.com/wirecanvas/wirecanvas/internal/typeid"
)

const maxUploadSize = 1 << 20 // 1MB

// UploadResponse is returned from the upload endpoint.
type UploadResponse struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Templates []string `json:"templates"`
	Name      string   `json:"name,omitempty"`
}

// Handler accepts template library uploads and serves stored copies.
type Handler struct {
	dir string // directory to store library files
	eng *engine.Engine
}

// NewHandler creates a new library handler that stores files in dir.
func NewHandler(dir string, eng *engine.Engine) *Handler {
	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir, eng: eng}
}

// Upload handles POST /assets/libraries. The body is either a multipart form
// with a "file" field or the library JSON itself. Its templates are added to
// the engine; its world layout is ignored.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	data, filename, err := readLibrary(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	lib, err := document.Parse(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(lib.Templates) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "library has no templates"})
		return
	}

	// Geometry is checked before anything is stored.
	for name, t := range lib.Templates {
		if _, err := engine.ObjectFromTemplate(t); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("template %q: %v", name, err)})
			return
		}
	}

	libraryID := typeid.NewLibraryID()
	stored := libraryID + ".json"
	if err := os.WriteFile(filepath.Join(h.dir, stored), data, 0644); err != nil {
		slog.Error("write library file", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save file"})
		return
	}

	h.eng.AddTemplates(lib.Templates)

	names := lib.Names()
	sort.Strings(names)

	slog.Info("library uploaded", "id", libraryID, "templates", len(names))
	writeJSON(w, http.StatusCreated, UploadResponse{
		ID:        libraryID,
		URL:       fmt.Sprintf("/assets/%s", stored),
		Templates: names,
		Name:      filename,
	})
}

// Serve returns an http.Handler that serves stored library files with caching headers.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Library IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

func readLibrary(r *http.Request) ([]byte, string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, "", fmt.Errorf("file too large (max 1MB)")
		}
		return data, "", nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", fmt.Errorf("file too large (max 1MB)")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing file field")
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	return buf.Bytes(), header.Filename, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
