// Package server exposes the renderer over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	registry *prometheus.Registry
	metrics  *renderer.Metrics
	console  *Console

	mu   sync.Mutex
	last *renderer.Result // Most recent successful render
}

// NewServer creates a new web server. console may be nil.
func NewServer(port int, console *Console) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		port:     port,
		registry: registry,
		metrics:  renderer.NewMetrics(registry),
		console:  console,
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/paths", s.handlePaths)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/console", s.handleConsole)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	core.Logger().Info("starting web server", "addr", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleStats returns the result of the most recent render
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		writeError(w, http.StatusNotFound, "no render yet")
		return
	}
	writeJSON(w, http.StatusOK, last)
}

// handleConsole returns recent log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	messages := []ConsoleMessage{}
	if s.console != nil {
		messages = s.console.Messages()
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) recordResult(result renderer.Result) {
	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		core.Logger().Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
