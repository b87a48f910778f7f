package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Camera generates rays through a rectangular viewport
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a pinhole camera placed by config. The viewport sits one
// unit in front of the camera.
func NewCamera(config scene.CameraConfig, aspectRatio float64) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	// Orthonormal basis, w pointing backwards
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the lower left corner. The direction is normalized.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// GetPixelRay generates the ray through the center of pixel (x, y) of a
// width x height image, with y = 0 at the top
func (c *Camera) GetPixelRay(x, y, width, height int) core.Ray {
	s := (float64(x) + 0.5) / float64(width)
	t := 1 - (float64(y)+0.5)/float64(height)
	return c.GetRay(s, t)
}
