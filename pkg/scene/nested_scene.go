package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewNestedScene creates three concentric spheres: glass around water around
// a red core
func NewNestedScene() (*Scene, error) {
	s := &Scene{
		Ambient:    core.RGB(0.25, 0.25, 0.25),
		Background: core.RGB(0.1, 0.1, 0.15),
		Camera: CameraConfig{
			Center: core.NewVec3(0, 0.5, 4),
			LookAt: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   35,
		},
	}

	water := material.NewGlass(1.33)
	water.ColorAberration = 0.05

	redCore := material.NewCompoundMaterial()
	redCore.DiffuseColor = core.RGB(0.8, 0.1, 0.1)
	redCore.SpecularComponent = 0.4
	redCore.SpecularPower = 20

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.Vec3{}, 1, material.NewGlass(1.5)),
		geometry.NewSphere(core.Vec3{}, 0.6, water),
		geometry.NewSphere(core.Vec3{}, 0.3, redCore),
	)
	s.AddPointLight(core.NewVec3(2, 3, 3), core.RGB(1, 1, 1), 1, 20)

	return s, nil
}

// NewEmptyScene creates a scene with nothing but background
func NewEmptyScene() (*Scene, error) {
	return &Scene{
		Ambient:    core.RGB(0.2, 0.2, 0.2),
		Background: core.RGB(0.2, 0.3, 0.5),
		Camera: CameraConfig{
			Center: core.NewVec3(0, 0, 1),
			LookAt: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   60,
		},
	}, nil
}
