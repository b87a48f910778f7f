// Package renderer drives the tracer over the pixels of an image: one
// initial ray through the center of every pixel, traced in parallel tiles.
package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Result describes a finished render
type Result struct {
	RenderID uuid.UUID              `json:"renderId"`
	Bounds   image.Rectangle        `json:"bounds"` // Rendered pixels in image coordinates
	Counters tracer.CounterSnapshot `json:"counters"`
	Duration time.Duration          `json:"duration"`
}

// Renderer renders one scene with a fixed configuration
type Renderer struct {
	scene     *scene.Scene
	raytracer *tracer.Raytracer
	camera    *Camera
	config    Config
	metrics   *Metrics
}

// New creates a renderer for s. Shapes without a material are shaded gray.
func New(s *scene.Scene, config Config) (*Renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: scene is nil", core.ErrInvalidArgument)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	rt, err := tracer.New(s, material.NewCompoundMaterial(), config.Tracer)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		scene:     s,
		raytracer: rt,
		camera:    NewCamera(s.Camera, float64(config.Width)/float64(config.Height)),
		config:    config,
	}, nil
}

// SetMetrics makes every render report to m
func (r *Renderer) SetMetrics(m *Metrics) {
	r.metrics = m
}

// Scene returns the rendered scene
func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// Config returns the render configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces every pixel of the configured bounds. The image has the size
// of the bounds; its origin is the bounds' top-left pixel. Cancelling ctx
// stops the render between tiles.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, Result, error) {
	result := Result{RenderID: uuid.New()}

	bounds, err := r.config.Bounds()
	if err != nil {
		return nil, result, err
	}
	result.Bounds = bounds

	ctx, span := otel.Tracer("renderer").Start(ctx, "renderer.Render",
		trace.WithAttributes(
			attribute.String("render_id", result.RenderID.String()),
			attribute.Int("width", bounds.Dx()),
			attribute.Int("height", bounds.Dy()),
		),
	)
	defer span.End()

	logger := core.Logger().With("render_id", result.RenderID.String())
	logger.Info("render started", "bounds", bounds.String(), "image", fmt.Sprintf("%dx%d", r.config.Width, r.config.Height))

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	counters := &tracer.Counters{}

	renderTile := func(ctx context.Context, tile *Tile) error {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				c := r.tracePixel(x, y, counters)
				img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, c.RGBA8())
			}
		}
		return nil
	}

	tiles := NewTileGrid(bounds, r.config.TileSize)
	pool := NewWorkerPool(ctx, renderTile, len(tiles), r.config.NumWorkers)
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}
	pool.Stop()

	var renderErr error
	for {
		res, ok := pool.GetResult()
		if !ok {
			break
		}
		if res.Error != nil && renderErr == nil {
			renderErr = fmt.Errorf("tile %d: %w", res.TaskID, res.Error)
		}
	}

	result.Duration = time.Since(start)
	result.Counters = counters.Snapshot()

	if renderErr != nil {
		span.RecordError(renderErr)
		span.SetStatus(codes.Error, "render failed")
		logger.Warn("render aborted", "error", renderErr, "duration", result.Duration)
		return nil, result, renderErr
	}

	span.SetAttributes(
		attribute.Int64("initial_rays", result.Counters.InitialRays),
		attribute.Int64("raycasts", result.Counters.Raycasts),
		attribute.Int64("backtraces", result.Counters.Backtraces),
		attribute.Int64("overwhites", result.Counters.Overwhites),
	)
	if r.metrics != nil {
		r.metrics.Observe(result)
	}
	logger.Info("render finished",
		"duration", result.Duration,
		"initial_rays", result.Counters.InitialRays,
		"total_raycasts", result.Counters.TotalRaycasts(),
		"total_reflections", result.Counters.TotalReflections(),
		"refractions", result.Counters.Refractions,
	)

	return img, result, nil
}

// PixelRay returns the initial ray through the center of pixel (x, y)
func (r *Renderer) PixelRay(x, y int) core.Ray {
	return r.camera.GetPixelRay(x, y, r.config.Width, r.config.Height)
}

// tracePixel traces the initial ray through the center of pixel (x, y)
func (r *Renderer) tracePixel(x, y int, counters *tracer.Counters) core.Color {
	counters.InitialRays.Add(1)
	ray := r.PixelRay(x, y)
	record := tracer.NewTraceRecord(r.scene.Background, counters, false)
	return r.raytracer.Trace(ray, record)
}
