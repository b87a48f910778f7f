package renderer

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Config contains the render settings
type Config struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	TileSize   int           `json:"tileSize"`          // Size of each tile in pixels
	NumWorkers int           `json:"numWorkers"`        // Number of parallel workers (0 = use CPU count)
	Portion    *Rect         `json:"portion,omitempty"` // Render only this part of the image
	Tracer     tracer.Config `json:"tracer"`
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      400,
		Height:     300,
		TileSize:   32,
		NumWorkers: 0,
		Tracer:     tracer.DefaultConfig(),
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the image size, tiling, portion and tracer limits
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", core.ErrInvalidArgument, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", core.ErrInvalidArgument, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", core.ErrInvalidArgument, c.NumWorkers)
	}
	if _, err := c.Bounds(); err != nil {
		return err
	}
	return c.Tracer.Validate()
}

// Bounds returns the pixels to render: the portion if one is set, else the
// whole image
func (c Config) Bounds() (image.Rectangle, error) {
	if c.Portion == nil {
		return image.Rect(0, 0, c.Width, c.Height), nil
	}
	return c.Portion.Resolve(c.Width, c.Height)
}

// Rect is a part of the image in pixels, y = 0 being the top row. A negative
// width or height extends the rectangle to the image edge.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resolve clips r to a width x height image. The origin must lie inside the
// image; the far edges are clipped to it.
func (r Rect) Resolve(width, height int) (image.Rectangle, error) {
	if r.X < 0 || r.X >= width {
		return image.Rectangle{}, fmt.Errorf("%w: portion x must fall in [0, %d), got %d", core.ErrInvalidArgument, width, r.X)
	}
	if r.Y < 0 || r.Y >= height {
		return image.Rectangle{}, fmt.Errorf("%w: portion y must fall in [0, %d), got %d", core.ErrInvalidArgument, height, r.Y)
	}

	w, h := r.Width, r.Height
	if w < 0 || r.X+w > width {
		w = width - r.X
	}
	if h < 0 || r.Y+h > height {
		h = height - r.Y
	}
	if w == 0 || h == 0 {
		return image.Rectangle{}, fmt.Errorf("%w: portion %v is empty", core.ErrInvalidArgument, r)
	}

	return image.Rect(r.X, r.Y, r.X+w, r.Y+h), nil
}

// ParseRect parses "x,y,width,height"
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("%w: expected x,y,width,height, got %q", core.ErrInvalidArgument, s)
	}

	var values [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("%w: invalid rectangle %q: %v", core.ErrInvalidArgument, s, err)
		}
		values[i] = v
	}
	return Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}
