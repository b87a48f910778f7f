package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Intersect returns the parametric interval [tNear, tFar] where the ray is
// inside the box, using the slab method. ok is false when the ray misses.
func (aabb AABB) Intersect(ray Ray) (tNear, tFar float64, ok bool) {
	tNear = math.Inf(-1)
	tFar = math.Inf(1)

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	direction := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{aabb.Min.X, aabb.Min.Y, aabb.Min.Z}
	hi := [3]float64{aabb.Max.X, aabb.Max.Y, aabb.Max.Z}

	for axis := 0; axis < 3; axis++ {
		// Parallel to the slab: either always inside or never
		if math.Abs(direction[axis]) < 1e-12 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, 0, false
			}
			continue
		}

		invDirection := 1.0 / direction[axis]
		t1 := (lo[axis] - origin[axis]) * invDirection
		t2 := (hi[axis] - origin[axis]) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, 0, false
		}
	}

	return tNear, tFar, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBFromPoints(aabb.Min, aabb.Max, other.Min, other.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Extents returns the half size of the AABB
func (aabb AABB) Extents() Vec3 {
	return aabb.Size().Multiply(0.5)
}

// BoundingRadius returns the radius of the sphere through the box corners
// centered on the box center
func (aabb AABB) BoundingRadius() float64 {
	return aabb.Extents().Length()
}

// Contains reports whether p lies inside the box, borders included
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}
