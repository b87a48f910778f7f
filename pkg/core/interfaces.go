package core

// Surface is the identity of a hittable object in the scene. Hit records
// compare surfaces by interface equality, so implementations must be
// pointer types.
type Surface interface {
	// BoundingBox returns the world-space bounds of the surface
	BoundingBox() AABB
}

// HitRecord is the result of a scene intersection query
type HitRecord struct {
	Point    Vec3    // Point of intersection
	Normal   Vec3    // Geometric outward normal, unit length
	Distance float64 // Distance along the ray
	Surface  Surface // Surface that owns the hit
	Bounds   AABB    // Bounds of the owning surface
	TexCoord Vec2    // Texture coordinate, if the surface provides one
	Tangent  Vec3    // Tangent along increasing U, zero if unavailable
}
