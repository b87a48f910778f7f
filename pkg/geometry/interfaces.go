// Package geometry provides the analytic shapes a scene is built from.
//
// Shapes only report intersections with their outward face: a ray that
// starts inside a closed shape does not see it. Rays travelling inside a
// volume find their exit through the backward trace in package tracer.
package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Shape is a surface that can be hit by rays
type Shape interface {
	core.Surface
	tracer.Shaded

	// Hit returns the nearest outward-facing intersection in (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
	// HitAll returns every outward-facing intersection in (tMin, tMax)
	HitAll(ray core.Ray, tMin, tMax float64) []core.HitRecord
}

// frontFacing reports whether ray approaches the outward normal from outside
func frontFacing(ray core.Ray, outwardNormal core.Vec3) bool {
	return ray.Direction.Dot(outwardNormal) < 0
}

// nearest picks the closest of hits
func nearest(hits []core.HitRecord) (*core.HitRecord, bool) {
	if len(hits) == 0 {
		return nil, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Distance < best.Distance {
			best = h
		}
	}
	return &best, true
}

// padFlat thickens the axes along which box has no extent
func padFlat(box core.AABB) core.AABB {
	const padding = 1e-4
	pad := core.NewVec3(0, 0, 0)
	size := box.Size()
	if size.X < padding {
		pad.X = padding
	}
	if size.Y < padding {
		pad.Y = padding
	}
	if size.Z < padding {
		pad.Z = padding
	}
	return core.NewAABB(box.Min.Subtract(pad), box.Max.Add(pad))
}
