package tracer

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Config contains the recursion limits and lighting overrides of a Raytracer
type Config struct {
	MaxReflections       int        `json:"maxReflections"`       // Reflections from outside a surface per path
	MaxInnerReflections  int        `json:"maxInnerReflections"`  // Reflections from inside a medium per path
	MaxRefractions       int        `json:"maxRefractions"`       // Refractions per path
	StopOnOverwhite      bool       `json:"stopOnOverwhite"`      // Stop recursing once a color saturates
	OverrideAmbientLight bool       `json:"overrideAmbientLight"` // Use AmbientLight instead of the scene's
	AmbientLight         core.Color `json:"ambientLight"`
}

// DefaultConfig returns the default tracing limits
func DefaultConfig() Config {
	return Config{
		MaxReflections:      10,
		MaxInnerReflections: 1,
		MaxRefractions:      10,
		StopOnOverwhite:     true,
		AmbientLight:        core.RGB(0.2, 0.2, 0.2),
	}
}

// Validate checks that every limit is non-negative
func (c Config) Validate() error {
	if c.MaxReflections < 0 {
		return fmt.Errorf("%w: maxReflections must not be negative, got %d", core.ErrInvalidArgument, c.MaxReflections)
	}
	if c.MaxInnerReflections < 0 {
		return fmt.Errorf("%w: maxInnerReflections must not be negative, got %d", core.ErrInvalidArgument, c.MaxInnerReflections)
	}
	if c.MaxRefractions < 0 {
		return fmt.Errorf("%w: maxRefractions must not be negative, got %d", core.ErrInvalidArgument, c.MaxRefractions)
	}
	return nil
}
