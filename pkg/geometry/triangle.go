package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Triangle represents a single one-sided triangle defined by three vertices.
// Its outward face points along (V1-V0) × (V2-V0).
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Material   tracer.Shader // Material of the triangle
	normal     core.Vec3     // Cached normal vector
	bbox       core.AABB     // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material tracer.Shader) *Triangle {
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		bbox:     padFlat(core.NewAABBFromPoints(v0, v1, v2)),
	}
}

// Shader returns the triangle's material
func (t *Triangle) Shader() tracer.Shader {
	return t.Material
}

// Hit tests if a ray hits the front of the triangle using the Möller-Trumbore
// algorithm. The texture coordinate is the barycentric weight of V1 and V2.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// A non-positive determinant means a parallel ray or a back-face hit
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	distance := f * edge2.Dot(q)
	if distance <= tMin || distance >= tMax {
		return nil, false
	}

	return &core.HitRecord{
		Point:    ray.At(distance),
		Normal:   t.normal,
		Distance: distance,
		Surface:  t,
		Bounds:   t.bbox,
		TexCoord: core.NewVec2(u, v),
		Tangent:  edge1.Normalize(),
	}, true
}

// HitAll returns the front hit as a slice
func (t *Triangle) HitAll(ray core.Ray, tMin, tMax float64) []core.HitRecord {
	if hit, ok := t.Hit(ray, tMin, tMax); ok {
		return []core.HitRecord{*hit}
	}
	return nil
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
