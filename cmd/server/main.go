package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wirecanvas/wirecanvas/internal/asset"
	"github.com/wirecanvas/wirecanvas/internal/auth"
	"github.com/wirecanvas/wirecanvas/internal/collab"
	"github.com/wirecanvas/wirecanvas/internal/config"
	"github.com/wirecanvas/wirecanvas/internal/document"
	"github.com/wirecanvas/wirecanvas/internal/engine"
	"github.com/wirecanvas/wirecanvas/internal/export"
	"github.com/wirecanvas/wirecanvas/internal/viewer"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.NewEngine()

	if cfg.TemplateFile != "" {
		lib, err := document.LoadFile(cfg.TemplateFile)
		if err != nil {
			slog.Error("load templates", "error", err, "file", cfg.TemplateFile)
			os.Exit(1)
		}
		eng.LoadLibrary(lib)
		slog.Info("templates loaded", "file", cfg.TemplateFile, "count", len(lib.Templates))
	}

	if cfg.SampleWorld {
		if err := eng.LoadSampleWorld(); err != nil {
			slog.Error("load sample world", "error", err)
			os.Exit(1)
		}
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	viewerHandler := viewer.NewHandler(eng, cfg.Frames)
	assetHandler := asset.NewHandler(cfg.AssetDir, eng)
	exportHandler := export.NewHandler(eng)

	hub := collab.NewHub(eng, cfg.Frames, cfg.TickInterval())
	go hub.Run(ctx)

	r := mux.NewRouter()

	// Global middleware
	r.Use(recovery)
	r.Use(requestLogger)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Template libraries: upload needs a session, stored files are public
	r.Handle("/assets/libraries", authService.AuthMiddleware(http.HandlerFunc(assetHandler.Upload))).Methods("POST")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// World export (public)
	r.HandleFunc("/api/export", exportHandler.ExportWorld).Methods("GET")

	viewerHandler.Register(r, authService)

	// WebSocket endpoint
	origins := cfg.Origins()
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, origins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      cors(origins)(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop the animation loop first so viewers get closed cleanly
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "fps", cfg.FPS, "objects", len(eng.Names()))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// handleWebSocket upgrades a viewer connection. A token is optional: without
// one the client only watches.
func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, origins []string) {
	var sessionID string
	if token := r.URL.Query().Get("token"); token != "" {
		var err error
		sessionID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, clientID, sessionID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// cors answers preflight requests and adds CORS headers for origins whose
// host matches one of the patterns (same syntax as websocket OriginPatterns).
// It wraps the router so preflights never reach route method matching.
func cors(patterns []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !originAllowed(origin, patterns) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				h.Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, patterns []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, p := range patterns {
		if ok, _ := path.Match(strings.ToLower(p), host); ok {
			return true
		}
	}
	return false
}

func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic in handler", "panic", rec, "path", r.URL.Path)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack hands the connection to websocket.Accept.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
