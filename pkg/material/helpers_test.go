package material

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/texture"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// mockEnvironment is a linear-scan scene with lighting
type mockEnvironment struct {
	shapes  []geometry.Shape
	lights  []PointLight
	ambient core.Color
}

func (e *mockEnvironment) PointLights() []PointLight { return e.lights }
func (e *mockEnvironment) AmbientLight() core.Color  { return e.ambient }

func (e *mockEnvironment) NearestHit(ray core.Ray) (core.HitRecord, bool) {
	var best *core.HitRecord
	for _, s := range e.shapes {
		if hit, ok := s.Hit(ray, 1e-7, math.Inf(1)); ok && (best == nil || hit.Distance < best.Distance) {
			best = hit
		}
	}
	if best == nil {
		return core.HitRecord{}, false
	}
	return *best, true
}

func (e *mockEnvironment) AllHits(ray core.Ray, maxDistance float64) []core.HitRecord {
	var hits []core.HitRecord
	for _, s := range e.shapes {
		hits = append(hits, s.HitAll(ray, 1e-7, maxDistance)...)
	}
	return hits
}

func newRaytracer(t *testing.T, env *mockEnvironment, config tracer.Config) *tracer.Raytracer {
	t.Helper()
	rt, err := tracer.New(env, NewDiffuse(core.RGB(1, 0, 1)), config)
	if err != nil {
		t.Fatalf("tracer.New failed: %v", err)
	}
	return rt
}

// upHit is a hit on a surface facing +Y at the origin, seen from above
func upHit() (core.Ray, core.HitRecord) {
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Distance: 1,
		Tangent:  core.NewVec3(1, 0, 0),
		TexCoord: core.NewVec2(0.5, 0.5),
	}
	return ray, hit
}

func solidTexture(t *testing.T, c core.Color) *texture.Texture {
	t.Helper()
	tex, err := texture.NewFromPixels(1, 1, []core.Color{c})
	if err != nil {
		t.Fatalf("NewFromPixels failed: %v", err)
	}
	return tex
}
