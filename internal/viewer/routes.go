package viewer

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wirecanvas/wirecanvas/internal/auth"
)

// Register mounts the viewer API under /api. Queries and viewport updates are
// public; anything that changes the world needs a session token.
func (h *Handler) Register(r *mux.Router, authSvc *auth.Service) {
	protect := func(fn http.HandlerFunc) http.Handler {
		return authSvc.AuthMiddleware(fn)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", authSvc.CreateSession).Methods("POST")

	api.HandleFunc("/frame", h.Frame).Methods("GET")
	api.HandleFunc("/order", h.Order).Methods("GET")
	api.HandleFunc("/objects", h.ListObjects).Methods("GET")
	api.HandleFunc("/objects/{name}", h.GetObject).Methods("GET")
	api.HandleFunc("/templates", h.ListTemplates).Methods("GET")
	api.HandleFunc("/operations", h.GetOperation).Methods("GET")
	api.HandleFunc("/viewport", h.SetViewport).Methods("PUT")

	api.Handle("/objects", protect(h.ImportObject)).Methods("POST")
	api.Handle("/operations", protect(h.SetUpOperation)).Methods("POST")
	api.Handle("/operations", protect(h.CancelOperation)).Methods("DELETE")
	api.Handle("/highlight", protect(h.SetHighlight)).Methods("PUT")
}
