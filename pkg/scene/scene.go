// Package scene holds the scenes rendered by the tracer: the shapes and
// lights, a linear-scan intersection service over them, and the built-in
// scenes.
package scene

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// minHitDistance keeps a ray from hitting the surface it starts on
const minHitDistance = 1e-7

// CameraConfig places the camera. The aspect ratio comes from the image
// being rendered.
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Shapes     []geometry.Shape      // Objects in the scene
	Lights     []material.PointLight // Lights in the scene
	Ambient    core.Color            // Ambient light, unless the tracer overrides it
	Background core.Color            // Color of rays that hit nothing
	Camera     CameraConfig
}

var (
	_ tracer.Intersector   = (*Scene)(nil)
	_ material.Environment = (*Scene)(nil)
)

// NewGroundQuad creates a horizontal quad centered at the given point with
// its face pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, m tracer.Shader) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, m)
}

// NearestHit returns the closest outward-facing intersection along ray
func (s *Scene) NearestHit(ray core.Ray) (core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := math.Inf(1)

	for _, shape := range s.Shapes {
		if hit, ok := shape.Hit(ray, minHitDistance, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.Distance
		}
	}

	if closest == nil {
		return core.HitRecord{}, false
	}
	return *closest, true
}

// AllHits returns every outward-facing intersection along ray closer than
// maxDistance, in no particular order
func (s *Scene) AllHits(ray core.Ray, maxDistance float64) []core.HitRecord {
	var hits []core.HitRecord
	for _, shape := range s.Shapes {
		hits = append(hits, shape.HitAll(ray, minHitDistance, maxDistance)...)
	}
	return hits
}

// PointLights implements material.Environment
func (s *Scene) PointLights() []material.PointLight {
	return s.Lights
}

// AmbientLight implements material.Environment
func (s *Scene) AmbientLight() core.Color {
	return s.Ambient
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position core.Vec3, c core.Color, intensity, lightRange float64) {
	s.Lights = append(s.Lights, material.PointLight{
		Position:  position,
		Color:     c,
		Intensity: intensity,
		Range:     lightRange,
	})
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
