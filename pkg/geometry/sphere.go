package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material tracer.Shader
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material tracer.Shader) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Shader returns the sphere's material
func (s *Sphere) Shader() tracer.Shader {
	return s.Material
}

// Hit tests if a ray enters the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nearest(s.HitAll(ray, tMin, tMax))
}

// HitAll returns the points where ray enters the sphere. A ray crosses the
// outward face at most once, so there is at most one.
func (s *Sphere) HitAll(ray core.Ray, tMin, tMax float64) []core.HitRecord {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	var hits []core.HitRecord
	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if root <= tMin || root >= tMax {
			continue
		}

		point := ray.At(root)
		outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
		if !frontFacing(ray, outwardNormal) {
			continue
		}

		texCoord, tangent := sphereTexCoord(outwardNormal)
		hits = append(hits, core.HitRecord{
			Point:    point,
			Normal:   outwardNormal,
			Distance: root,
			Surface:  s,
			Bounds:   s.BoundingBox(),
			TexCoord: texCoord,
			Tangent:  tangent,
		})
	}
	return hits
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// sphereTexCoord maps a unit normal to longitude/latitude coordinates.
// The tangent follows increasing longitude.
func sphereTexCoord(n core.Vec3) (core.Vec2, core.Vec3) {
	x := math.Max(-1, math.Min(1, n.X))
	y := math.Max(-1, math.Min(1, n.Y))
	z := math.Max(-1, math.Min(1, n.Z))

	u := (math.Atan2(z, x) + math.Pi) / (2 * math.Pi)
	v := (math.Asin(y) + math.Pi/2) / math.Pi
	texCoord := core.NewVec2(math.Max(0, math.Min(1, u)), math.Max(0, math.Min(1, v)))

	// At the poles the tangent is undefined
	tangent := core.NewVec3(-z, 0, x).Normalize()
	if tangent.IsZero() {
		tangent = core.NewVec3(1, 0, 0)
	}
	return texCoord, tangent
}
