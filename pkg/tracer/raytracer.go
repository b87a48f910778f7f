// Package tracer implements the recursive trace engine: visibility queries,
// backward resolution of rays travelling inside transparent volumes, and the
// reflection/refraction continuation shared by materials.
package tracer

import (
	"fmt"
	"reflect"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

const (
	// PushOutMagnitude offsets secondary ray origins off the surface they start on
	PushOutMagnitude = 1e-4
	// MinRaycastDistance is the smallest search distance of a backward query
	MinRaycastDistance = 0.01
)

// Intersector is the scene query service used by the Raytracer
type Intersector interface {
	// NearestHit returns the closest surface facing the ray, if any
	NearestHit(ray core.Ray) (core.HitRecord, bool)
	// AllHits returns every surface facing the ray closer than maxDistance, unordered
	AllHits(ray core.Ray, maxDistance float64) []core.HitRecord
}

// Shader computes the color of a resolved hit. Shaders may call back into
// rt.Trace, usually through rt.Continue.
type Shader interface {
	Shade(rt *Raytracer, ray core.Ray, hit core.HitRecord, record *TraceRecord) core.Color
}

// Shaded is implemented by surfaces that carry their own shader
type Shaded interface {
	Shader() Shader
}

// Raytracer traces rays through an Intersector. It holds no per-path state
// and is safe for concurrent use as long as each goroutine traces with its
// own TraceRecord.
type Raytracer struct {
	scene         Intersector
	defaultShader Shader
	config        Config
}

// New creates a raytracer. The default shader colors surfaces that do not
// carry a shader of their own.
func New(scene Intersector, defaultShader Shader, config Config) (*Raytracer, error) {
	if scene == nil {
		return nil, fmt.Errorf("%w: raytracer needs a scene", core.ErrInvalidArgument)
	}
	if defaultShader == nil {
		return nil, fmt.Errorf("%w: raytracer needs a default shader", core.ErrInvalidArgument)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{scene: scene, defaultShader: defaultShader, config: config}, nil
}

// Scene returns the intersector being traced
func (rt *Raytracer) Scene() Intersector { return rt.scene }

// Config returns the tracing limits
func (rt *Raytracer) Config() Config { return rt.config }

// Trace returns the color seen along ray
func (rt *Raytracer) Trace(ray core.Ray, record *TraceRecord) core.Color {
	record.Counters.Raycasts.Add(1)

	if hit, ok := rt.scene.NearestHit(ray); ok {
		if record.Depth() > 0 {
			if color, ok := rt.traceBackward(ray, hit.Distance+PushOutMagnitude, record); ok {
				return color
			}
		}

		color := rt.shade(ray, hit, record)
		record.AddHistoryItem(ray, &hit, color)
		return color
	}

	if top, ok := record.Peek(); ok {
		// Nothing ahead facing the ray, so bound the search by the sphere
		// around the volume we are inside
		toCenter := top.Bounds.Center().Subtract(ray.Origin)
		bound := toCenter.Dot(ray.Direction) + top.Bounds.BoundingRadius() + PushOutMagnitude
		if color, ok := rt.traceBackward(ray, bound, record); ok {
			return color
		}
	}

	record.AddHistoryItem(ray, nil, record.Background)
	return record.Background
}

// traceBackward looks for the exit point of the volume on top of the
// penetration stack by casting a ray from bound back toward the origin.
// The surfaces facing the backward ray are the ones the forward ray leaves.
func (rt *Raytracer) traceBackward(ray core.Ray, bound float64, record *TraceRecord) (core.Color, bool) {
	record.Counters.Backtraces.Add(1)

	top, _ := record.Peek()
	backward := core.NewRay(ray.At(bound), ray.Direction.Negate())
	// Only the query distance is clamped; the origin stays at bound
	search := max(bound, MinRaycastDistance)

	var best core.HitRecord
	found := false
	for _, h := range rt.scene.AllHits(backward, search) {
		if h.Surface != top.Surface || h.Distance >= search {
			continue
		}
		if !found || h.Distance > best.Distance {
			best = h
			found = true
		}
	}
	if !found {
		return core.Color{}, false
	}

	best.Distance = max(bound-best.Distance, 0)
	color := rt.shade(ray, best, record)
	record.AddHistoryItem(ray, &best, color)
	return color, true
}

func (rt *Raytracer) shade(ray core.Ray, hit core.HitRecord, record *TraceRecord) core.Color {
	shader := rt.defaultShader
	if s, ok := hit.Surface.(Shaded); ok {
		if own := s.Shader(); !isNilShader(own) {
			shader = own
		}
	}
	return shader.Shade(rt, ray, hit, record).Opaque()
}

// isNilShader reports whether s is nil or wraps a nil pointer
func isNilShader(s Shader) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// MustInterrupt reports whether the path accumulating color should stop.
// It counts one overwhite each time it returns true.
func (rt *Raytracer) MustInterrupt(color core.Color, record *TraceRecord) bool {
	if rt.config.StopOnOverwhite && color.IsOverwhite() {
		record.Counters.Overwhites.Add(1)
		return true
	}
	return false
}
