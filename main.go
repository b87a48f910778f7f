package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene      string
	Width      int
	Height     int
	ConfigPath string
	Rect       string
	Paths      string
	OutputDir  string
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.Scene, "scene", "default", "Scene id (see -list)")
	flag.IntVar(&opts.Width, "width", 0, "Image width (overrides config)")
	flag.IntVar(&opts.Height, "height", 0, "Image height (overrides config)")
	flag.StringVar(&opts.ConfigPath, "config", "", "JSON render config file")
	flag.StringVar(&opts.Rect, "rect", "", "Render only x,y,width,height (negative size extends to the edge)")
	flag.StringVar(&opts.Paths, "paths", "", "Also write trace paths for a grid of rays, e.g. 9x1")
	flag.StringVar(&opts.OutputDir, "output", "output", "Output directory")
	list := flag.Bool("list", false, "List available scenes")
	verbose := flag.Bool("v", false, "Log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *list {
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-10s %s\n", info.ID, info.Description)
		}
		return
	}

	filename, err := run(context.Background(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// run renders the requested scene into <output>/<scene>/render_<timestamp>.png
// and returns the image path
func run(ctx context.Context, opts options) (string, error) {
	config, err := buildConfig(opts)
	if err != nil {
		return "", err
	}

	var gridX, gridY int
	if opts.Paths != "" {
		if gridX, gridY, err = parsePathGrid(opts.Paths); err != nil {
			return "", err
		}
	}

	selectedScene, err := scene.New(opts.Scene)
	if err != nil {
		return "", err
	}
	rend, err := renderer.New(selectedScene, config)
	if err != nil {
		return "", err
	}

	img, result, err := rend.Render(ctx)
	if err != nil {
		return "", err
	}
	fmt.Printf("Render completed in %v (%d raycasts, %d backtraces, %d refractions)\n",
		result.Duration, result.Counters.Raycasts, result.Counters.Backtraces, result.Counters.Refractions)

	// Create output directory for this scene
	outputDir := filepath.Join(opts.OutputDir, opts.Scene)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := writePNG(filename, img); err != nil {
		return "", err
	}

	if gridX > 0 {
		paths, counters := rend.TracePaths(gridX, gridY, renderer.DefaultMissSegmentLength)
		pathsFile := filepath.Join(outputDir, fmt.Sprintf("paths_%s.json", timestamp))
		if err := writeJSON(pathsFile, map[string]any{"paths": paths, "counters": counters}); err != nil {
			return "", err
		}
		fmt.Printf("Trace paths saved as %s\n", pathsFile)
	}

	return filename, nil
}

// buildConfig loads the config file if one is given and applies the command
// line overrides
func buildConfig(opts options) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if config, err = renderer.LoadConfig(opts.ConfigPath); err != nil {
			return renderer.Config{}, err
		}
	}

	if opts.Width > 0 {
		config.Width = opts.Width
	}
	if opts.Height > 0 {
		config.Height = opts.Height
	}
	if opts.Rect != "" {
		rect, err := renderer.ParseRect(opts.Rect)
		if err != nil {
			return renderer.Config{}, err
		}
		config.Portion = &rect
	}

	if err := config.Validate(); err != nil {
		return renderer.Config{}, err
	}
	return config, nil
}

// parsePathGrid parses a grid size such as "9x1"
func parsePathGrid(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: path grid must look like 9x1, got %q", core.ErrInvalidArgument, s)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil || x <= 0 || y <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid path grid %q", core.ErrInvalidArgument, s)
	}
	return x, y, nil
}

func writePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}

func writeJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
