package server

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"net/url"

	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene          string         `json:"scene"`  // Scene id (e.g., "default")
	Width          int            `json:"width"`  // Image width
	Height         int            `json:"height"` // Image height
	MaxReflections int            `json:"maxReflections"`
	MaxRefractions int            `json:"maxRefractions"`
	Portion        *renderer.Rect `json:"portion,omitempty"`
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(query url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default"}
	if id := query.Get("scene"); id != "" {
		req.Scene = id
	}

	defaults := renderer.DefaultConfig()
	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, 1, 2000); err != nil {
		return nil, err
	}
	if req.MaxReflections, err = parseIntParam(query, "maxReflections", defaults.Tracer.MaxReflections, 0, 100); err != nil {
		return nil, err
	}
	if req.MaxRefractions, err = parseIntParam(query, "maxRefractions", defaults.Tracer.MaxRefractions, 0, 100); err != nil {
		return nil, err
	}
	if rect := query.Get("rect"); rect != "" {
		portion, err := renderer.ParseRect(rect)
		if err != nil {
			return nil, err
		}
		req.Portion = &portion
	}

	return req, nil
}

// newRenderer builds the scene and renderer for a request
func (s *Server) newRenderer(req *RenderRequest) (*renderer.Renderer, error) {
	sceneObj, err := scene.New(req.Scene)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.Portion = req.Portion
	config.Tracer.MaxReflections = req.MaxReflections
	config.Tracer.MaxRefractions = req.MaxRefractions

	r, err := renderer.New(sceneObj, config)
	if err != nil {
		return nil, err
	}
	r.SetMetrics(s.metrics)
	return r, nil
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	rend, err := s.newRenderer(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, result, err := rend.Render(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}
	s.recordResult(result)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Id", result.RenderID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handlePaths traces a grid of diagnostic paths and responds with their
// segments as JSON
func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := s.parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	numX, err := parseIntParam(query, "numX", 9, 1, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	numY, err := parseIntParam(query, "numY", 1, 1, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rend, err := s.newRenderer(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	paths, counters := rend.TracePaths(numX, numY, renderer.DefaultMissSegmentLength)
	writeJSON(w, http.StatusOK, map[string]any{
		"paths":    paths,
		"counters": counters,
	})
}
