package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/scene"
	"github.com/vigil-313/citymesh/pkg/stream"
	"github.com/vigil-313/citymesh/pkg/validation"
)

// State is the read-only world view the server exposes. The streaming core
// is single-threaded; the caller hands the server a finished tree and final
// counters rather than live mutable structures.
type State struct {
	Root    *scene.Node
	Queue   stream.QueueStats
	Chunks  stream.ManagerStats
	Report  *validation.Report
	Records []mapdata.Record
}

// Server is the local debug server for inspecting a generated scene.
type Server struct {
	port  int
	state State
	log   *zap.Logger
}

// New creates a server over the given state.
func New(port int, state State) *Server {
	return &Server{
		port:  port,
		state: state,
		log:   zap.L().With(zap.String("component", "server")),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/api/scene", s.handleScene)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/validation", s.handleValidation)
	r.Get("/api/records", s.handleRecords)
	return r
}

// Start launches the HTTP server and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("server starting", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>citymesh</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>citymesh</h1>
<p>Scene data at <code>/api/scene</code>, counters at <code>/api/stats</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	if s.state.Root == nil {
		http.Error(w, `{"error":"no scene loaded"}`, http.StatusNotFound)
		return
	}
	s.writeJSON(w, scene.Snap(s.state.Root))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]any{
		"queue":  s.state.Queue,
		"chunks": s.state.Chunks,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	report := s.state.Report
	if report == nil {
		report = validation.NewReport()
	}
	s.writeJSON(w, report)
}

func (s *Server) handleRecords(w http.ResponseWriter, _ *http.Request) {
	byKind := map[mapdata.Kind]int{}
	for _, rec := range s.state.Records {
		byKind[rec.Kind]++
	}
	s.writeJSON(w, map[string]any{
		"total":   len(s.state.Records),
		"by_kind": byKind,
		"records": s.state.Records,
	})
}
