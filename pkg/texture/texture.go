// Package texture implements mipmapped 2D textures with nearest, bilinear and
// trilinear filtering.
//
// Texel rows are addressed by v: row 0 is sampled at v = 0. Texture
// coordinates are normalized to [0, 1) according to the wrap mode before
// they are mapped to texels.
package texture

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// WrapMode selects how texture coordinates outside [0, 1) are folded back
type WrapMode uint8

const (
	// Clamp saturates the coordinate to [0, 1] and then keeps its fractional part
	Clamp WrapMode = iota
	// Repeat keeps the fractional part, shifting negative values into [0, 1)
	Repeat
)

// String returns a string representation of the wrap mode
func (m WrapMode) String() string {
	switch m {
	case Clamp:
		return "Clamp"
	case Repeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// FilterMode selects how texels are combined when sampling
type FilterMode uint8

const (
	// Nearest picks the texel containing the coordinate on the closest mip level
	Nearest FilterMode = iota
	// Bilinear blends the 2x2 neighborhood on the closest mip level
	Bilinear
	// Trilinear blends bilinear samples from the two adjacent mip levels
	Trilinear
)

// String returns a string representation of the filter mode
func (m FilterMode) String() string {
	switch m {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	case Trilinear:
		return "Trilinear"
	default:
		return "Unknown"
	}
}

// texelSnap is the distance under which a texel-space coordinate is treated
// as sitting exactly on a texel center
const texelSnap = 1e-7

// Texture is a 2D grid of colors. The top level of a mipmapped texture owns
// the whole chain; lower levels are plain textures without a chain.
type Texture struct {
	width, height int
	pixels        []core.Color // Row-major: pixels[y*width + x]
	mipLayers     []*Texture   // Level 0 is the texture itself, nil on lower levels

	Wrap   WrapMode
	Filter FilterMode
}

// New creates a transparent black texture of the given size
func New(width, height int) (*Texture, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: texture width must be greater than zero, got %d", core.ErrInvalidArgument, width)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: texture height must be greater than zero, got %d", core.ErrInvalidArgument, height)
	}

	return &Texture{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
		Filter: Bilinear,
	}, nil
}

// NewFromPixels creates a texture backed by the given row-major pixels.
// The slice is used directly, not copied.
func NewFromPixels(width, height int, pixels []core.Color) (*Texture, error) {
	t, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: expected %d pixels for %dx%d texture, got %d",
			core.ErrInvalidArgument, width*height, width, height, len(pixels))
	}
	t.pixels = pixels
	return t, nil
}

// NewMipmapped links precomputed mip levels into a chain owned by levels[0].
// Each level must be half the size of the previous one, rounded down, but
// never smaller than 1x1.
func NewMipmapped(levels ...*Texture) (*Texture, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: mip chain needs at least one level", core.ErrInvalidArgument)
	}

	top := levels[0]
	for i, level := range levels {
		if level == nil {
			return nil, fmt.Errorf("%w: mip level %d is nil", core.ErrInvalidArgument, i)
		}
		expectedW := max(1, top.width>>i)
		expectedH := max(1, top.height>>i)
		if level.width != expectedW || level.height != expectedH {
			return nil, fmt.Errorf("%w: mip level %d is %dx%d, expected %dx%d",
				core.ErrInvalidArgument, i, level.width, level.height, expectedW, expectedH)
		}
		if i > 0 {
			level.mipLayers = nil
			level.Wrap = top.Wrap
			level.Filter = top.Filter
		}
	}

	top.mipLayers = append([]*Texture(nil), levels...)
	return top, nil
}

// Width returns the width in texels
func (t *Texture) Width() int { return t.width }

// Height returns the height in texels
func (t *Texture) Height() int { return t.height }

// MipCount returns the number of mip levels, at least 1
func (t *Texture) MipCount() int {
	if len(t.mipLayers) == 0 {
		return 1
	}
	return len(t.mipLayers)
}

// Level returns the mip level n, where level 0 is the texture itself
func (t *Texture) Level(n int) (*Texture, error) {
	if n < 0 || n >= t.MipCount() {
		return nil, fmt.Errorf("%w: mip level must be in range from 0 to %d inclusively, got %d",
			core.ErrInvalidArgument, t.MipCount()-1, n)
	}
	if n == 0 {
		return t, nil
	}
	return t.mipLayers[n], nil
}

// Pixel returns the texel at (x, y) without wrapping
func (t *Texture) Pixel(x, y int) (core.Color, error) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return core.Color{}, fmt.Errorf("%w: texel (%d, %d) outside %dx%d texture",
			core.ErrInvalidArgument, x, y, t.width, t.height)
	}
	return t.pixels[y*t.width+x], nil
}

// SetPixel stores c at (x, y)
func (t *Texture) SetPixel(x, y int, c core.Color) error {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return fmt.Errorf("%w: texel (%d, %d) outside %dx%d texture",
			core.ErrInvalidArgument, x, y, t.width, t.height)
	}
	t.pixels[y*t.width+x] = c
	return nil
}

// NormalizeTexCoord folds (u, v) into [0, 1) according to the wrap mode
func (t *Texture) NormalizeTexCoord(u, v float64) (float64, float64) {
	return normalizeCoord(u, t.Wrap), normalizeCoord(v, t.Wrap)
}

// PixelCoord maps (u, v) to the texel that contains it
func (t *Texture) PixelCoord(u, v float64) (x, y int) {
	return t.pixelCoord(u, v, t.Wrap)
}

// PixelNearest samples this level with nearest filtering
func (t *Texture) PixelNearest(u, v float64) core.Color {
	return t.nearest(u, v, t.Wrap)
}

// PixelBilinear samples this level with bilinear filtering. Sampling exactly
// at a texel center returns that texel unchanged.
func (t *Texture) PixelBilinear(u, v float64) core.Color {
	return t.bilinear(u, v, t.Wrap)
}

// PixelNearestAt samples mip level n with nearest filtering
func (t *Texture) PixelNearestAt(u, v float64, n int) (core.Color, error) {
	level, err := t.Level(n)
	if err != nil {
		return core.Color{}, err
	}
	return level.nearest(u, v, t.Wrap), nil
}

// PixelBilinearAt samples mip level n with bilinear filtering
func (t *Texture) PixelBilinearAt(u, v float64, n int) (core.Color, error) {
	level, err := t.Level(n)
	if err != nil {
		return core.Color{}, err
	}
	return level.bilinear(u, v, t.Wrap), nil
}

// PixelTrilinear blends bilinear samples of the two mip levels around
// mipLevel. The level is clamped to the available chain first.
func (t *Texture) PixelTrilinear(u, v, mipLevel float64) core.Color {
	mipLevel = t.clampMipLevel(mipLevel)
	lower := int(math.Floor(mipLevel))
	higher := int(math.Ceil(mipLevel))

	lowerColor := t.layer(lower).bilinear(u, v, t.Wrap)
	if lower == higher {
		return lowerColor
	}

	higherColor := t.layer(higher).bilinear(u, v, t.Wrap)
	return lowerColor.Lerp(higherColor, mipLevel-float64(lower))
}

// Sample filters the texture at (u, v) on the given mip level according to
// the texture's filter mode
func (t *Texture) Sample(u, v, mipLevel float64) core.Color {
	switch t.Filter {
	case Nearest:
		return t.layer(t.roundMipLevel(mipLevel)).nearest(u, v, t.Wrap)
	case Bilinear:
		return t.layer(t.roundMipLevel(mipLevel)).bilinear(u, v, t.Wrap)
	default:
		return t.PixelTrilinear(u, v, mipLevel)
	}
}

func (t *Texture) clampMipLevel(mipLevel float64) float64 {
	return math.Max(0, math.Min(mipLevel, float64(t.MipCount()-1)))
}

func (t *Texture) roundMipLevel(mipLevel float64) int {
	return int(t.clampMipLevel(mipLevel) + 0.5)
}

// layer returns level n, which the caller has already clamped
func (t *Texture) layer(n int) *Texture {
	if n == 0 || len(t.mipLayers) == 0 {
		return t
	}
	return t.mipLayers[n]
}

func (t *Texture) pixelCoord(u, v float64, wrap WrapMode) (x, y int) {
	u = normalizeCoord(u, wrap)
	v = normalizeCoord(v, wrap)
	x = min(int(u*float64(t.width)), t.width-1)
	y = min(int(v*float64(t.height)), t.height-1)
	return x, y
}

func (t *Texture) nearest(u, v float64, wrap WrapMode) core.Color {
	x, y := t.pixelCoord(u, v, wrap)
	return t.pixels[y*t.width+x]
}

func (t *Texture) bilinear(u, v float64, wrap WrapMode) core.Color {
	u = normalizeCoord(u, wrap)
	v = normalizeCoord(v, wrap)

	// Texel centers sit at half-integer positions
	fx := snapToTexel(u*float64(t.width) - 0.5)
	fy := snapToTexel(v*float64(t.height) - 0.5)
	floorX := math.Floor(fx)
	floorY := math.Floor(fy)
	weightX := fx - floorX
	weightY := fy - floorY

	x0, x1 := neighbors(int(floorX), t.width, wrap)
	y0, y1 := neighbors(int(floorY), t.height, wrap)

	top := t.pixels[y0*t.width+x0].Lerp(t.pixels[y0*t.width+x1], weightX)
	bottom := t.pixels[y1*t.width+x0].Lerp(t.pixels[y1*t.width+x1], weightX)
	return top.Lerp(bottom, weightY)
}

func normalizeCoord(c float64, wrap WrapMode) float64 {
	if wrap == Clamp {
		return math.Mod(math.Max(0, math.Min(1, c)), 1)
	}

	c = math.Mod(c, 1)
	if c < 0 {
		c += 1
	}
	return c
}

func snapToTexel(f float64) float64 {
	if r := math.Round(f); math.Abs(f-r) < texelSnap {
		return r
	}
	return f
}

// neighbors returns the wrap-adjusted texel index i and its successor
func neighbors(i, n int, wrap WrapMode) (int, int) {
	if wrap == Repeat {
		return ((i % n) + n) % n, (((i + 1) % n) + n) % n
	}
	return max(0, min(i, n-1)), max(0, min(i+1, n-1))
}
