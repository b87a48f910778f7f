package tracer

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// mockSurface is an opaque surface identity with fixed bounds
type mockSurface struct {
	name   string
	bounds core.AABB
}

func (s *mockSurface) BoundingBox() core.AABB { return s.bounds }

// shadedSurface carries its own shader
type shadedSurface struct {
	mockSurface
	shader Shader
}

func (s *shadedSurface) Shader() Shader { return s.shader }

// mockScene replays queued nearest hits and records every query
type mockScene struct {
	nearest []*core.HitRecord // Consumed front first; nil or empty means miss
	all     []core.HitRecord

	nearestRays  []core.Ray
	allRays      []core.Ray
	allDistances []float64
}

func (m *mockScene) NearestHit(ray core.Ray) (core.HitRecord, bool) {
	m.nearestRays = append(m.nearestRays, ray)
	if len(m.nearest) == 0 {
		return core.HitRecord{}, false
	}
	next := m.nearest[0]
	m.nearest = m.nearest[1:]
	if next == nil {
		return core.HitRecord{}, false
	}
	return *next, true
}

func (m *mockScene) AllHits(ray core.Ray, maxDistance float64) []core.HitRecord {
	m.allRays = append(m.allRays, ray)
	m.allDistances = append(m.allDistances, maxDistance)
	return m.all
}

// shaderFunc adapts a function to the Shader interface
type shaderFunc func(rt *Raytracer, ray core.Ray, hit core.HitRecord, record *TraceRecord) core.Color

func (f shaderFunc) Shade(rt *Raytracer, ray core.Ray, hit core.HitRecord, record *TraceRecord) core.Color {
	return f(rt, ray, hit, record)
}

// pointerShader has a pointer receiver, so a nil *pointerShader is a
// non-nil Shader
type pointerShader struct {
	color core.Color
}

func (s *pointerShader) Shade(*Raytracer, core.Ray, core.HitRecord, *TraceRecord) core.Color {
	return s.color
}

// constantShader colors every hit the same
func constantShader(c core.Color) Shader {
	return shaderFunc(func(*Raytracer, core.Ray, core.HitRecord, *TraceRecord) core.Color { return c })
}

// testSphere is an analytic sphere reporting only hits on its outward face
type testSphere struct {
	center core.Vec3
	radius float64
}

func (s *testSphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	return core.NewAABB(s.center.Subtract(r), s.center.Add(r))
}

func (s *testSphere) hits(ray core.Ray, maxDistance float64) []core.HitRecord {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.radius*s.radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	var hits []core.HitRecord
	for _, t := range []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if t <= 1e-7 || t >= maxDistance {
			continue
		}
		point := ray.At(t)
		normal := point.Subtract(s.center).Multiply(1 / s.radius)
		if normal.Dot(ray.Direction) >= 0 {
			continue
		}
		hits = append(hits, core.HitRecord{
			Point:    point,
			Normal:   normal,
			Distance: t,
			Surface:  s,
			Bounds:   s.BoundingBox(),
		})
	}
	return hits
}

// sphereScene is a linear-scan intersector over test spheres
type sphereScene []*testSphere

func (sc sphereScene) NearestHit(ray core.Ray) (core.HitRecord, bool) {
	var best core.HitRecord
	found := false
	for _, s := range sc {
		for _, h := range s.hits(ray, math.Inf(1)) {
			if !found || h.Distance < best.Distance {
				best = h
				found = true
			}
		}
	}
	return best, found
}

func (sc sphereScene) AllHits(ray core.Ray, maxDistance float64) []core.HitRecord {
	var all []core.HitRecord
	for _, s := range sc {
		all = append(all, s.hits(ray, maxDistance)...)
	}
	return all
}

func newTestRaytracer(t *testing.T, scene Intersector, shader Shader, config Config) *Raytracer {
	t.Helper()
	rt, err := New(scene, shader, config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return rt
}
