package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Quad represents a one-sided rectangular surface defined by a corner and
// two edge vectors. Its outward face points along U × V.
type Quad struct {
	Corner   core.Vec3     // One corner of the quad
	U        core.Vec3     // First edge vector
	V        core.Vec3     // Second edge vector
	Normal   core.Vec3     // Normal vector (computed from U × V)
	Material tracer.Shader // Material of the quad
	D        float64       // Plane equation constant: ax + by + cz = d
	W        core.Vec3     // Cached cross product for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material tracer.Shader) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		D:        normal.Dot(corner),
		W:        normal.Multiply(1.0 / normal.Dot(cross)),
	}
}

// Shader returns the quad's material
func (q *Quad) Shader() tracer.Shader {
	return q.Material
}

// Hit tests if a ray hits the front of the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	hit, ok := q.intersect(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Surface = q
	hit.Bounds = q.BoundingBox()
	return &hit, true
}

// HitAll returns the front hit as a slice, since a plane is crossed at most once
func (q *Quad) HitAll(ray core.Ray, tMin, tMax float64) []core.HitRecord {
	if hit, ok := q.Hit(ray, tMin, tMax); ok {
		return []core.HitRecord{*hit}
	}
	return nil
}

// BoundingBox returns the bounds of the four corners, padded along flat axes
func (q *Quad) BoundingBox() core.AABB {
	return padFlat(core.NewAABBFromPoints(q.Corner, q.Corner.Add(q.U), q.Corner.Add(q.V), q.Corner.Add(q.U).Add(q.V)))
}

// intersect finds the front-face hit without filling in the owning surface.
// The texture coordinate is the barycentric position along U and V.
func (q *Quad) intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Parallel rays and rays hitting the back never count
	if denominator > -1e-8 {
		return core.HitRecord{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= tMin || t >= tMax {
		return core.HitRecord{}, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 || math.IsNaN(alpha) || math.IsNaN(beta) {
		return core.HitRecord{}, false
	}

	return core.HitRecord{
		Point:    hitPoint,
		Normal:   q.Normal,
		Distance: t,
		TexCoord: core.NewVec2(alpha, beta),
		Tangent:  q.U.Normalize(),
	}, true
}
