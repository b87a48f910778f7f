package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewGalleryScene creates a glass sphere on a checkered disc in front of two
// triangular panels
func NewGalleryScene() (*Scene, error) {
	s := &Scene{
		Ambient:    core.RGB(0.2, 0.2, 0.2),
		Background: core.RGB(0.05, 0.05, 0.08),
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

	matte := material.NewDiffuse(core.RGB(0.2, 0.5, 0.8))
	matte.Attenuation = material.Linear

	polished := material.NewCompoundMaterial()
	polished.DiffuseColor = core.RGB(0.8, 0.6, 0.2)
	polished.ReflectionComponent = 0.4
	polished.SpecularComponent = 0.5
	polished.SpecularPower = 30

	glass := material.NewGlass(1.5)
	glass.ColorAberration = 0.08

	s.Shapes = append(s.Shapes,
		geometry.NewDisc(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 4, floor),
		geometry.NewTriangle(core.NewVec3(-3, 0, -2), core.NewVec3(0, 0, -2.5), core.NewVec3(-1.5, 3, -2.2), matte),
		geometry.NewTriangle(core.NewVec3(0, 0, -2.5), core.NewVec3(3, 0, -2), core.NewVec3(1.5, 3, -2.2), polished),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
	)

	s.AddPointLight(core.NewVec3(2, 5, 4), core.RGB(1, 1, 1), 1, 25)

	return s, nil
}
