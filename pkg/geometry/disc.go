package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Disc represents a one-sided circular disc in 3D space
type Disc struct {
	Center   core.Vec3     // Center of the disc
	Normal   core.Vec3     // Outward normal
	Radius   float64       // Radius of the disc
	Material tracer.Shader // Material of the disc
	Right    core.Vec3     // Right vector (perpendicular to normal)
	Up       core.Vec3     // Up vector (perpendicular to normal and right)
}

// NewDisc creates a new disc facing along normal
func NewDisc(center, normal core.Vec3, radius float64, material tracer.Shader) *Disc {
	normalNormalized := normal.Normalize()

	// Create orthogonal vectors
	var right core.Vec3
	if math.Abs(normalNormalized.X) > 0.1 {
		right = core.NewVec3(0, 1, 0)
	} else {
		right = core.NewVec3(1, 0, 0)
	}

	right = right.Cross(normalNormalized).Normalize()
	up := normalNormalized.Cross(right).Normalize()

	return &Disc{
		Center:   center,
		Normal:   normalNormalized,
		Radius:   radius,
		Material: material,
		Right:    right,
		Up:       up,
	}
}

// Shader returns the disc's material
func (d *Disc) Shader() tracer.Shader {
	return d.Material
}

// Hit tests if a ray hits the front of the disc. The texture coordinate maps
// the disc's bounding square onto [0,1]².
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if denom > -1e-8 {
		return nil, false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= tMin || t >= tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	centerToHit := hitPoint.Subtract(d.Center)
	if centerToHit.LengthSquared() > d.Radius*d.Radius {
		return nil, false
	}

	return &core.HitRecord{
		Point:    hitPoint,
		Normal:   d.Normal,
		Distance: t,
		Surface:  d,
		Bounds:   d.BoundingBox(),
		TexCoord: core.NewVec2(
			0.5+centerToHit.Dot(d.Right)/(2*d.Radius),
			0.5+centerToHit.Dot(d.Up)/(2*d.Radius),
		),
		Tangent: d.Right,
	}, true
}

// HitAll returns the front hit as a slice
func (d *Disc) HitAll(ray core.Ray, tMin, tMax float64) []core.HitRecord {
	if hit, ok := d.Hit(ray, tMin, tMax); ok {
		return []core.HitRecord{*hit}
	}
	return nil
}

// BoundingBox returns the bounds of the square around the disc
func (d *Disc) BoundingBox() core.AABB {
	rightExtent := d.Right.Multiply(d.Radius)
	upExtent := d.Up.Multiply(d.Radius)

	return padFlat(core.NewAABBFromPoints(
		d.Center.Add(rightExtent).Add(upExtent),
		d.Center.Add(rightExtent).Subtract(upExtent),
		d.Center.Subtract(rightExtent).Add(upExtent),
		d.Center.Subtract(rightExtent).Subtract(upExtent),
	))
}
