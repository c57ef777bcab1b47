package viewer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wirecanvas/wirecanvas/internal/auth"
	"github.com/wirecanvas/wirecanvas/internal/engine"
)

// Handler exposes the engine over HTTP.
type Handler struct {
	eng    *engine.Engine
	frames int // frame budget when a request does not name one
}

func NewHandler(eng *engine.Engine, frames int) *Handler {
	return &Handler{eng: eng, frames: frames}
}

type operationRequest struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Frames *int    `json:"frames"`
}

type importRequest struct {
	Name     string  `json:"name"`
	Template string  `json:"template"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type highlightRequest struct {
	On bool `json:"on"`
}

type operationResponse struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	Remaining int    `json:"remaining"`
}

func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	frame := h.eng.Frame()
	data, err := engine.FrameToJSON(frame)
	if err != nil {
		slog.Error("encode frame", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "frame not encodable"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(data))
}

func (h *Handler) Order(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.PaintOrder())
}

func (h *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Names())
}

func (h *Handler) GetObject(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	obj, err := h.eng.Object(name)
	if err != nil {
		handleEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, obj)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.TemplateNames())
}

func (h *Handler) ImportObject(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Template == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "template is required"})
		return
	}

	name, err := h.eng.ImportTemplate(req.Name, req.Template, req.X, req.Y, req.Z)
	if err != nil {
		handleEngineError(w, err)
		return
	}

	slog.Info("object imported", "name", name, "template", req.Template, "session", auth.SessionIDFromContext(r.Context()))
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (h *Handler) SetUpOperation(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	op, err := engine.ParseOperation(req.Kind, req.X, req.Y, req.Z)
	if err != nil {
		handleEngineError(w, err)
		return
	}

	frames := h.frames
	if req.Frames != nil {
		frames = *req.Frames
	}

	if err := h.eng.SetUpOperation(op, frames); err != nil {
		handleEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, h.operationState())
}

func (h *Handler) CancelOperation(w http.ResponseWriter, r *http.Request) {
	h.eng.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetOperation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.operationState())
}

func (h *Handler) SetViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Width <= 0 || req.Height <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "width and height must be positive"})
		return
	}

	h.eng.SetViewport(req.Width, req.Height)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.eng.SetHighlight(req.On)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) operationState() operationResponse {
	s := h.eng.State()
	return operationResponse{
		Kind:      s.Op.Kind(),
		Text:      s.Text,
		Remaining: s.Remaining,
	}
}

func handleEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrObjectNotFound), errors.Is(err, engine.ErrTemplateNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrNameTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidFrameCount),
		errors.Is(err, engine.ErrUnknownOperation),
		errors.Is(err, engine.ErrEmptyObject),
		errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, engine.ErrDegenerateSurface):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("engine error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
