// Package material implements the shaders that color resolved hits: a
// compound material combining lighting, textures, reflection and refraction,
// and a plain diffuse material.
package material

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

const (
	lightIntensityFactor = 2.0
	diffuseExponent      = 1.5
)

// PointLight is an omnidirectional light with a finite range
type PointLight struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
	Range     float64 // Beyond this distance the light has no effect
}

// Environment is implemented by scenes that provide lighting
type Environment interface {
	PointLights() []PointLight
	AmbientLight() core.Color
}

// lighting returns the lights and ambient color visible to rt. The
// raytracer's ambient light wins when it overrides the scene.
func lighting(rt *tracer.Raytracer) ([]PointLight, core.Color) {
	config := rt.Config()
	env, ok := rt.Scene().(Environment)
	if !ok {
		return nil, config.AmbientLight
	}
	if config.OverrideAmbientLight {
		return env.PointLights(), config.AmbientLight
	}
	return env.PointLights(), env.AmbientLight()
}
