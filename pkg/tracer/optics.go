package tracer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Reflect mirrors v about the normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit direction v through a surface with unit normal n,
// where k is the ratio of the refractive indices n1/n2. It returns false on
// total internal reflection. The result is normalized.
func Refract(v, n core.Vec3, k float64) (core.Vec3, bool) {
	c := n.Dot(v)
	cosT2 := 1 - k*k*(1-c*c)
	if cosT2 < 0 {
		return core.Vec3{}, false
	}

	cosT := math.Sqrt(cosT2)
	var scale float64
	if -c >= 0 {
		scale = k*(-c) - cosT
	} else {
		scale = k*(-c) + cosT
	}
	return n.Multiply(scale).Add(v.Multiply(k)).Normalize(), true
}

// Entering reports whether ray crosses the surface of hit from outside.
// It always uses the geometric normal, never a perturbed shading normal.
func Entering(hit core.HitRecord, ray core.Ray) bool {
	return hit.Normal.Dot(ray.Direction) < 0
}
