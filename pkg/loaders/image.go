// Package loaders decodes image files into texture assets.
package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/texture"
)

// LoadImage decodes a PNG, JPEG, BMP, TIFF or WebP file
func LoadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	b := img.Bounds()
	core.Logger().Debug("image decoded", "file", filename, "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// ImageAsset is a decoded image and its mip chain. It implements
// texture.Provider.
type ImageAsset struct {
	key    string
	levels []texture.Image
	wrap   texture.WrapMode
	filter texture.FilterMode
}

// LoadAsset decodes filename into an asset keyed by the file name. With
// mipmaps set, every smaller level down to 1x1 is generated.
func LoadAsset(filename string, wrap texture.WrapMode, filter texture.FilterMode, mipmaps bool) (*ImageAsset, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return NewImageAsset(filename, img, wrap, filter, mipmaps), nil
}

// NewImageAsset wraps an in-memory image
func NewImageAsset(key string, img image.Image, wrap texture.WrapMode, filter texture.FilterMode, mipmaps bool) *ImageAsset {
	chain := []image.Image{img}
	if mipmaps {
		chain = GenerateMips(img)
	}

	levels := make([]texture.Image, len(chain))
	for i, level := range chain {
		levels[i] = toTextureImage(level)
	}
	return &ImageAsset{key: key, levels: levels, wrap: wrap, filter: filter}
}

// Key identifies the asset in a texture cache
func (a *ImageAsset) Key() string { return a.key }

// MipCount returns the number of levels, 1 when mipmaps were not generated
func (a *ImageAsset) MipCount() int { return len(a.levels) }

// WrapMode returns how coordinates outside [0,1] are handled
func (a *ImageAsset) WrapMode() texture.WrapMode { return a.wrap }

// FilterMode returns how the texture is sampled
func (a *ImageAsset) FilterMode() texture.FilterMode { return a.filter }

// MipLevel returns level n, 0 being the full-size image
func (a *ImageAsset) MipLevel(n int) (texture.Image, error) {
	if n < 0 || n >= len(a.levels) {
		return texture.Image{}, fmt.Errorf("%w: mip level %d of %q out of range [0, %d)",
			core.ErrInvalidArgument, n, a.key, len(a.levels))
	}
	return a.levels[n], nil
}

// GenerateMips returns img followed by successive half-size reductions, the
// last one being 1x1. Odd sizes round down.
func GenerateMips(img image.Image) []image.Image {
	chain := []image.Image{img}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		prev := chain[len(chain)-1]

		dst := image.NewRGBA64(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(dst, dst.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		chain = append(chain, dst)
	}
	return chain
}

// toTextureImage converts img to linear colors. Rows are flipped so that
// texture coordinate v = 0 is the bottom of the image.
func toTextureImage(img image.Image) texture.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			// Straight alpha, unlike the premultiplied RGBA() values
			c := color.NRGBA64Model.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA64)
			pixels[row*width+x] = core.RGBA(
				float64(c.R)/65535.0,
				float64(c.G)/65535.0,
				float64(c.B)/65535.0,
				float64(c.A)/65535.0,
			)
		}
	}

	return texture.Image{Width: width, Height: height, Pixels: pixels}
}
