package renderer

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func smallConfig(width, height int) Config {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.TileSize = 4
	config.NumWorkers = 2
	return config
}

func emptyScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.NewEmptyScene()
	if err != nil {
		t.Fatalf("NewEmptyScene failed: %v", err)
	}
	return s
}

// redSphereScene has a red sphere straight ahead of the camera, lit by
// ambient light only
func redSphereScene() *scene.Scene {
	return &scene.Scene{
		Shapes:     []geometry.Shape{geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDiffuse(core.RGB(1, 0, 0)))},
		Ambient:    core.RGB(1, 1, 1),
		Background: core.RGB(0, 0, 1),
		Camera: scene.CameraConfig{
			Center: core.NewVec3(0, 0, 0),
			LookAt: core.NewVec3(0, 0, -1),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   60,
		},
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, DefaultConfig()); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for nil scene, got %v", err)
	}
	if _, err := New(emptyScene(t), smallConfig(0, 4)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for invalid config, got %v", err)
	}
}

func TestRender_EmptyScene(t *testing.T) {
	s := emptyScene(t)
	r, err := New(s, smallConfig(8, 6))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img, result, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("Expected 8x6 image, got %v", img.Bounds())
	}
	background := s.Background.RGBA8()
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if got := img.RGBAAt(x, y); got != background {
				t.Fatalf("Pixel (%d, %d): expected background %v, got %v", x, y, background, got)
			}
		}
	}

	c := result.Counters
	if c.InitialRays != 48 || c.Raycasts != 48 || c.Backtraces != 0 {
		t.Errorf("Unexpected counters %+v", c)
	}
	if result.RenderID.String() == "" || result.Duration <= 0 {
		t.Errorf("Expected a render id and duration, got %+v", result)
	}
}

func TestRender_RedSphere(t *testing.T) {
	r, err := New(redSphereScene(), smallConfig(9, 9))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	red := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	if got := img.RGBAAt(4, 4); got != red {
		t.Errorf("Expected the center pixel on the sphere, got %v", got)
	}
	for _, p := range [][2]int{{0, 0}, {8, 0}, {0, 8}, {8, 8}} {
		if got := img.RGBAAt(p[0], p[1]); got != blue {
			t.Errorf("Expected corner %v to miss the sphere, got %v", p, got)
		}
	}
}

func TestRender_Portion(t *testing.T) {
	config := smallConfig(9, 9)
	config.Portion = &Rect{X: 4, Y: 4, Width: -1, Height: 2}

	r, err := New(redSphereScene(), config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img, result, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 5x2 image, got %v", img.Bounds())
	}
	if result.Counters.InitialRays != 10 {
		t.Errorf("Expected 10 initial rays, got %d", result.Counters.InitialRays)
	}
	// The portion's top-left pixel is the full image's center
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Expected the sphere at the portion origin, got %v", got)
	}
}

func TestRender_Cancelled(t *testing.T) {
	r, err := New(emptyScene(t), smallConfig(8, 8))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, result, err := r.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
	if result.Counters.InitialRays != 0 {
		t.Errorf("Expected no rays traced, got %d", result.Counters.InitialRays)
	}
}

func TestRender_Metrics(t *testing.T) {
	r, err := New(emptyScene(t), smallConfig(4, 3))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	r.SetMetrics(metrics)

	for i := 0; i < 2; i++ {
		if _, _, err := r.Render(context.Background()); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	if got := testutil.ToFloat64(metrics.rendersTotal); got != 2 {
		t.Errorf("Expected 2 renders, got %f", got)
	}
	if got := testutil.ToFloat64(metrics.pixelsTotal); got != 24 {
		t.Errorf("Expected 24 pixels, got %f", got)
	}
	if got := testutil.ToFloat64(metrics.raysTotal.WithLabelValues("initial")); got != 24 {
		t.Errorf("Expected 24 initial rays, got %f", got)
	}
	if got := testutil.ToFloat64(metrics.raysTotal.WithLabelValues("backtrace")); got != 0 {
		t.Errorf("Expected no backtraces, got %f", got)
	}
	if count := testutil.CollectAndCount(metrics.renderDuration); count != 1 {
		t.Errorf("Expected one duration histogram, got %d", count)
	}
}
