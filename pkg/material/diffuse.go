package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// AttenuationKind selects how point light intensity falls off with distance
type AttenuationKind uint8

const (
	Logarithmic AttenuationKind = iota
	Quadratic
	Linear
)

// String returns a string representation of the attenuation kind
func (k AttenuationKind) String() string {
	switch k {
	case Logarithmic:
		return "Logarithmic"
	case Quadratic:
		return "Quadratic"
	case Linear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// Diffuse is a matte material lit by the scene's point lights. It never
// reflects or refracts.
type Diffuse struct {
	Color       core.Color
	Attenuation AttenuationKind
}

// NewDiffuse creates a diffuse material with quadratic attenuation
func NewDiffuse(color core.Color) *Diffuse {
	return &Diffuse{Color: color, Attenuation: Quadratic}
}

// Shade implements tracer.Shader
func (d *Diffuse) Shade(rt *tracer.Raytracer, ray core.Ray, hit core.HitRecord, record *tracer.TraceRecord) core.Color {
	lights, ambient := lighting(rt)
	sum := ambient

	for _, light := range lights {
		toLight := light.Position.Subtract(hit.Point)
		distance := toLight.Length()
		if distance >= light.Range {
			continue
		}

		// Treat the light as a small volume so nearby points are not blown out
		distance = math.Abs(distance - distance*0.2)

		intensity := toLight.Normalize().Dot(hit.Normal)
		if intensity <= 0 {
			continue
		}
		intensity = math.Pow(intensity, diffuseExponent)

		scale := d.attenuate(distance, light.Range) * intensity * light.Intensity * lightIntensityFactor
		sum = sum.Add(light.Color.Scale(scale))
	}

	return sum.Mul(d.Color)
}

func (d *Diffuse) attenuate(distance, lightRange float64) float64 {
	switch d.Attenuation {
	case Logarithmic:
		const base = 2.7
		return 1 / (math.Log(distance+base) / math.Log(base))
	case Quadratic:
		a := 1 - distance/lightRange
		return a * a
	default:
		return 1 - distance/lightRange
	}
}
