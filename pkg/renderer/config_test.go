package renderer

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestRect_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rect
		expected image.Rectangle
		wantErr  bool
	}{
		{"to the edges", Rect{0, 0, -1, -1}, image.Rect(0, 0, 10, 8), false},
		{"clipped", Rect{5, 4, 10, 10}, image.Rect(5, 4, 10, 8), false},
		{"inside", Rect{2, 3, 4, 2}, image.Rect(2, 3, 6, 5), false},
		{"width to the edge only", Rect{7, 0, -1, 2}, image.Rect(7, 0, 10, 2), false},
		{"x past the right edge", Rect{10, 0, 1, 1}, image.Rectangle{}, true},
		{"negative x", Rect{-1, 0, 1, 1}, image.Rectangle{}, true},
		{"y past the bottom edge", Rect{0, 8, 1, 1}, image.Rectangle{}, true},
		{"empty", Rect{0, 0, 0, 5}, image.Rectangle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rect.Resolve(10, 8)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidArgument) {
					t.Errorf("Expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseRect(t *testing.T) {
	got, err := ParseRect("1, 2,3,-1")
	if err != nil {
		t.Fatalf("ParseRect failed: %v", err)
	}
	if got != (Rect{X: 1, Y: 2, Width: 3, Height: -1}) {
		t.Errorf("Unexpected rect %+v", got)
	}

	for _, s := range []string{"1,2,3", "a,b,c,d", ""} {
		if _, err := ParseRect(s); !errors.Is(err, core.ErrInvalidArgument) {
			t.Errorf("ParseRect(%q): expected ErrInvalidArgument, got %v", s, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -3 }},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }},
		{"negative workers", func(c *Config) { c.NumWorkers = -1 }},
		{"portion outside", func(c *Config) { c.Portion = &Rect{X: 1000, Y: 0, Width: 1, Height: 1} }},
		{"negative tracer limit", func(c *Config) { c.Tracer.MaxRefractions = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			if err := config.Validate(); !errors.Is(err, core.ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"width": 64,
		"portion": {"x": 8, "y": 0, "width": -1, "height": 16},
		"tracer": {"maxRefractions": 3, "stopOnOverwhite": false}
	}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	defaults := DefaultConfig()
	if config.Width != 64 || config.Height != defaults.Height || config.TileSize != defaults.TileSize {
		t.Errorf("Unexpected size settings %+v", config)
	}
	if config.Tracer.MaxRefractions != 3 || config.Tracer.StopOnOverwhite {
		t.Errorf("Unexpected tracer settings %+v", config.Tracer)
	}
	if config.Tracer.MaxReflections != defaults.Tracer.MaxReflections {
		t.Errorf("Expected default reflections to survive, got %d", config.Tracer.MaxReflections)
	}

	bounds, err := config.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if bounds != image.Rect(8, 0, 64, 16) {
		t.Errorf("Unexpected bounds %v", bounds)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, `{"width": `)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
	if _, err := LoadConfig(writeConfig(t, `{"width": -1}`)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for invalid values, got %v", err)
	}
}
