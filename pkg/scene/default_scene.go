package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/texture"
)

// NewDefaultScene creates nested glass spheres, a mirror sphere and a glass
// box over a checkered floor
func NewDefaultScene() (*Scene, error) {
	s := &Scene{
		Ambient:    core.RGB(0.2, 0.2, 0.2),
		Background: core.RGB(0.5, 0.7, 1.0),
		Camera: CameraConfig{
			Center: core.NewVec3(0, 2, 6),
			LookAt: core.NewVec3(0, 0.8, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   40,
		},
	}

	checker, err := checkerTexture()
	if err != nil {
		return nil, err
	}
	floor := material.NewCompoundMaterial()
	floor.DiffuseColor = core.RGB(1, 1, 1)
	floor.DiffuseTexture = checker
	floor.ReflectionComponent = 0.1

	// Glass shell with a smaller water sphere inside
	glassOuter := geometry.NewSphere(core.NewVec3(-1.3, 1, 0), 1, material.NewGlass(1.5))
	water := material.NewGlass(1.33)
	water.ColorAberration = 0.05
	glassInner := geometry.NewSphere(core.NewVec3(-1.3, 1, 0), 0.5, water)

	mirror := geometry.NewSphere(core.NewVec3(1.4, 0.7, -0.6), 0.7, material.NewMirror(core.RGB(0.9, 0.9, 1)))

	boxGlass := material.NewGlass(1.5)
	boxGlass.ColorAberration = 0.1
	box := geometry.NewBox(core.NewVec3(0.4, 0.4, 1.4), core.NewVec3(0.4, 0.4, 0.4), boxGlass)

	s.Shapes = append(s.Shapes, NewGroundQuad(core.NewVec3(0, 0, 0), 20, floor),
		glassOuter, glassInner, mirror, box)

	s.AddPointLight(core.NewVec3(3, 6, 4), core.RGB(1, 1, 1), 1, 30)
	s.AddPointLight(core.NewVec3(-4, 5, -2), core.RGB(1, 0.9, 0.7), 0.6, 25)

	return s, nil
}

// checkerTexture returns the shared mipmapped checkerboard used by floors
func checkerTexture() (*texture.Texture, error) {
	asset := loaders.NewImageAsset("builtin:checker", checkerImage(256, 32), texture.Repeat, texture.Trilinear, true)
	tex, err := texture.DefaultCache.Get(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to build checker texture: %w", err)
	}
	return tex, nil
}

// checkerImage draws alternating light and dark squares of cell pixels
func checkerImage(size, cell int) *image.RGBA {
	light := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.RGBA{R: 60, G: 60, B: 70, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
