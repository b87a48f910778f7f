package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// Box represents an axis-aligned box made up of 6 outward-facing quads.
// The box, not its faces, is the surface reported in hit records.
type Box struct {
	Center   core.Vec3     // Center point of the box
	Size     core.Vec3     // Half extents along each axis
	Material tracer.Shader // Material for all faces
	faces    [6]*Quad      // The 6 quad faces
	bbox     core.AABB     // Cached bounding box
}

// NewBox creates a new axis-aligned box with the given center, size and
// material. Size represents half-extents (so a size of (1,1,1) creates a
// 2x2x2 box).
func NewBox(center, size core.Vec3, material tracer.Shader) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Material: material,
	}
	box.generateFaces()
	return box
}

// generateFaces creates the 6 quad faces of the box
func (b *Box) generateFaces() {
	// Define the 8 corners of a unit box centered at origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}
	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.Size).Add(b.Center)
	}

	// Each face is a corner and two edges whose cross product points outward
	b.faces = [6]*Quad{
		NewQuad(corners[4], corners[5].Subtract(corners[4]), corners[7].Subtract(corners[4]), nil), // Z+
		NewQuad(corners[1], corners[0].Subtract(corners[1]), corners[2].Subtract(corners[1]), nil), // Z-
		NewQuad(corners[5], corners[1].Subtract(corners[5]), corners[6].Subtract(corners[5]), nil), // X+
		NewQuad(corners[0], corners[4].Subtract(corners[0]), corners[3].Subtract(corners[0]), nil), // X-
		NewQuad(corners[3], corners[7].Subtract(corners[3]), corners[2].Subtract(corners[3]), nil), // Y+
		NewQuad(corners[4], corners[0].Subtract(corners[4]), corners[5].Subtract(corners[4]), nil), // Y-
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
}

// Shader returns the box's material
func (b *Box) Shader() tracer.Shader {
	return b.Material
}

// Hit tests if a ray enters the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nearest(b.HitAll(ray, tMin, tMax))
}

// HitAll returns every face hit from outside in (tMin, tMax)
func (b *Box) HitAll(ray core.Ray, tMin, tMax float64) []core.HitRecord {
	var hits []core.HitRecord
	for _, face := range b.faces {
		hit, ok := face.intersect(ray, tMin, tMax)
		if !ok {
			continue
		}
		hit.Surface = b
		hit.Bounds = b.bbox
		hit.TexCoord, hit.Tangent = b.texCoord(hit.Point, hit.Normal)
		hits = append(hits, hit)
	}
	return hits
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// texCoord maps each face to the unit square. Side faces run around the box
// so that U increases along the tangent.
func (b *Box) texCoord(point, normal core.Vec3) (core.Vec2, core.Vec3) {
	size := b.Size.Multiply(2)
	local := point.Subtract(b.bbox.Min)

	var u, v float64
	var tangent core.Vec3
	var sign float64

	switch {
	case math.Abs(normal.X) > 0.5: // Right or left
		sign = math.Copysign(1, normal.X)
		u, v = local.Z/size.Z, local.Y/size.Y
		tangent = core.NewVec3(0, 0, sign)
	case math.Abs(normal.Y) > 0.5: // Top or bottom
		sign = math.Copysign(1, normal.Y)
		u, v = local.X/size.X, local.Z/size.Z
		tangent = core.NewVec3(sign, 0, 0)
	default: // Front or back, the -Z face is the front
		sign = -math.Copysign(1, normal.Z)
		u, v = local.X/size.X, local.Y/size.Y
		tangent = core.NewVec3(sign, 0, 0)
	}

	if sign < 0 {
		u = 1 - u
	}
	return core.NewVec2(u, v), tangent
}
