package core

import (
	"fmt"
	"image/color"
)

// Color is a linear RGBA color. Channels are not clamped, so accumulated
// light may exceed 1.
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color with explicit alpha
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Black is opaque black
var Black = RGB(0, 0, 0)

// Add returns the channel-wise sum, alpha included
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Scale multiplies every channel by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mul returns the channel-wise product
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Lerp interpolates between c and other by t, without clamping t
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Grayscale returns the perceptual gray level of the RGB channels
func (c Color) Grayscale() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// IsOverwhite reports whether every RGB channel has saturated
func (c Color) IsOverwhite() bool {
	return c.R >= 1 && c.G >= 1 && c.B >= 1
}

// Opaque returns c with alpha set to 1
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// Equals reports whether two colors are equal within a small tolerance
func (c Color) Equals(other Color) bool {
	const tolerance = 1e-9
	d := func(a, b float64) bool { return a-b < tolerance && b-a < tolerance }
	return d(c.R, other.R) && d(c.G, other.G) && d(c.B, other.B) && d(c.A, other.A)
}

// RGBA8 converts the color to 8-bit sRGB-less RGBA, clamping every channel to [0, 1]
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{
		R: uint8(255*clamp01(c.R) + 0.5),
		G: uint8(255*clamp01(c.G) + 0.5),
		B: uint8(255*clamp01(c.B) + 0.5),
		A: uint8(255*clamp01(c.A) + 0.5),
	}
}

// FromColor converts a standard library color to Color
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g, %.4g)", c.R, c.G, c.B, c.A)
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
