package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// HSV is a color in hue/saturation/value space, every component in [0, 1]
type HSV struct {
	H, S, V, A float64
}

// ToHSV converts an RGB color to HSV
func ToHSV(c core.Color) HSV {
	lo := math.Min(c.R, math.Min(c.G, c.B))
	hi := math.Max(c.R, math.Max(c.G, c.B))
	delta := hi - lo

	hsv := HSV{V: hi, A: c.A}
	if delta == 0 {
		return hsv
	}
	hsv.S = delta / hi

	var h float64
	switch hi {
	case c.R:
		h = (c.G - c.B) / delta
	case c.G:
		h = 2 + (c.B-c.R)/delta
	default:
		h = 4 + (c.R-c.G)/delta
	}
	hsv.H = wrapHue(h / 6)
	return hsv
}

// RGB converts the color back to RGB
func (c HSV) RGB() core.Color {
	if c.S == 0 {
		return core.RGBA(c.V, c.V, c.V, c.A)
	}

	h := wrapHue(c.H) * 6
	sector := math.Floor(h)
	f := h - sector
	p := c.V * (1 - c.S)
	q := c.V * (1 - c.S*f)
	t := c.V * (1 - c.S*(1-f))

	switch int(sector) {
	case 0:
		return core.RGBA(c.V, t, p, c.A)
	case 1:
		return core.RGBA(q, c.V, p, c.A)
	case 2:
		return core.RGBA(p, c.V, t, c.A)
	case 3:
		return core.RGBA(p, q, c.V, c.A)
	case 4:
		return core.RGBA(t, p, c.V, c.A)
	default:
		return core.RGBA(c.V, p, q, c.A)
	}
}

// ChangeHue rotates the hue of c by delta turns
func ChangeHue(c core.Color, delta float64) core.Color {
	hsv := ToHSV(c)
	hsv.H = wrapHue(hsv.H + delta)
	return hsv.RGB()
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	return h
}
