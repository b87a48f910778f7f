package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/texture"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// lightVolumeFactor sizes the sphere around a point light inside which
// lighting is at full strength, as a fraction of the light range
const lightVolumeFactor = 0.00625

// CompoundMaterial combines ambient and point light shading with optional
// textures, reflection and refraction. Texture maps are sampled at the hit's
// texture coordinate; nil maps are ignored.
type CompoundMaterial struct {
	NormalMap          *texture.Texture // Tangent-space normals
	NormalMapInfluence float64

	DiffuseColor             core.Color
	DiffuseComponent         float64
	DiffuseTexture           *texture.Texture
	DiffuseColorIsBackground bool // Blend translucent texels over DiffuseColor instead of black

	SpecularComponent    float64
	SpecularPower        float64
	SpecularMap          *texture.Texture // Grayscale times alpha scales the specular component
	SpecularMapInfluence float64

	ReflectionComponent      float64
	InnerReflectionComponent float64          // Reflection seen from inside the volume
	ReflectionMap            *texture.Texture // Grayscale times alpha scales reflection
	ReflectionMapInfluence   float64

	RefractionComponent     float64
	RefractionIndex         float64
	RefractWhereTranslucent bool    // Refract only as much as the diffuse color lets through
	ColorAberration         float64 // Hue shift of refracted light when entering, in turns
}

// NewCompoundMaterial creates a gray diffuse material. Other components are
// disabled until set.
func NewCompoundMaterial() *CompoundMaterial {
	return &CompoundMaterial{
		NormalMapInfluence:       1,
		DiffuseColor:             core.RGB(0.5, 0.5, 0.5),
		DiffuseComponent:         1,
		DiffuseColorIsBackground: true,
		SpecularPower:            5,
		SpecularMapInfluence:     1,
		ReflectionMapInfluence:   1,
		RefractionIndex:          1.34312, // Water
	}
}

// NewGlass creates a clear refracting and reflecting material
func NewGlass(refractionIndex float64) *CompoundMaterial {
	m := NewCompoundMaterial()
	m.DiffuseComponent = 0
	m.SpecularComponent = 0.5
	m.SpecularPower = 50
	m.ReflectionComponent = 0.1
	m.InnerReflectionComponent = 0.05
	m.RefractionComponent = 0.9
	m.RefractionIndex = refractionIndex
	return m
}

// NewMirror creates a fully reflective material
func NewMirror(tint core.Color) *CompoundMaterial {
	m := NewCompoundMaterial()
	m.DiffuseColor = tint
	m.DiffuseComponent = 0.1
	m.ReflectionComponent = 0.9
	return m
}

// Shade implements tracer.Shader
func (m *CompoundMaterial) Shade(rt *tracer.Raytracer, ray core.Ray, hit core.HitRecord, record *tracer.TraceRecord) core.Color {
	u, v := hit.TexCoord.X, hit.TexCoord.Y

	// Inside the volume the shading normal faces the ray as well
	entering := tracer.Entering(hit, ray)
	normal := hit.Normal
	if !entering {
		normal = normal.Negate()
	}
	if m.NormalMap != nil && m.NormalMapInfluence > 0 && !hit.Tangent.IsZero() {
		normal = m.perturbNormal(normal, hit.Tangent, u, v)
	}

	specularIntensity := m.SpecularComponent
	if m.SpecularMap != nil && m.SpecularMapInfluence > 0 && specularIntensity > 0 {
		texel := m.SpecularMap.Sample(u, v, 0)
		mapped := specularIntensity * texel.Grayscale() * texel.A
		specularIntensity = lerp(m.SpecularComponent, mapped, clamp01(m.SpecularMapInfluence))
	}

	lights, ambient := lighting(rt)
	diffuseSum := ambient.Scale(m.DiffuseComponent)
	specularSum := core.Black

	for _, light := range lights {
		toLight := light.Position.Subtract(hit.Point)
		distance := toLight.Length() - light.Range*lightVolumeFactor
		if distance < 0 {
			distance = 0
		} else if distance >= light.Range {
			continue
		}

		dirToLight := toLight.Normalize()
		attenuation := 1 - distance/light.Range
		attenuation *= attenuation
		strength := attenuation * light.Intensity * lightIntensityFactor

		if m.DiffuseComponent > 0 {
			if d := dirToLight.Dot(normal); d > 0 {
				diffuseSum = diffuseSum.Add(light.Color.Scale(strength * math.Pow(d, diffuseExponent)))
			}
		}

		if specularIntensity > 0 {
			mirrored := tracer.Reflect(dirToLight.Negate(), normal)
			if s := mirrored.Dot(ray.Direction.Negate()); s > 0 {
				specularSum = specularSum.Add(light.Color.Scale(strength * math.Pow(s, m.SpecularPower)))
			}
		}
	}

	diffuseColor := m.diffuseColor(u, v)
	local := diffuseSum.Mul(diffuseColor).Scale(m.DiffuseComponent).Add(specularSum.Scale(specularIntensity))

	reflection := m.ReflectionComponent
	if !entering {
		reflection = m.InnerReflectionComponent
	}
	if reflection > 0 && m.ReflectionMap != nil && m.ReflectionMapInfluence > 0 {
		texel := m.ReflectionMap.Sample(u, v, 0)
		reflection = lerp(reflection, texel.Grayscale()*texel.A*reflection, clamp01(m.ReflectionMapInfluence))
	}

	refraction := m.RefractionComponent
	if m.RefractWhereTranslucent {
		refraction *= 1 - diffuseColor.A*m.DiffuseComponent
	}

	c := tracer.Continuation{
		Normal:          normal,
		Reflection:      reflection,
		Refraction:      refraction,
		RefractionIndex: m.RefractionIndex,
	}
	if m.ColorAberration != 0 {
		c.RefractionFilter = m.aberrate
	}
	return rt.Continue(ray, hit, record, local, c)
}

// diffuseColor returns the base color at (u, v), blending the diffuse
// texture by its alpha
func (m *CompoundMaterial) diffuseColor(u, v float64) core.Color {
	if m.DiffuseTexture == nil {
		return m.DiffuseColor
	}

	texel := m.DiffuseTexture.Sample(u, v, 0)
	var c core.Color
	if texel.A < 1 && m.DiffuseColorIsBackground {
		c = m.DiffuseColor.Lerp(texel, texel.A)
	} else {
		c = core.Black.Lerp(texel, texel.A)
	}
	c.A = texel.A
	return c
}

// perturbNormal tilts normal toward the normal map sample, expressed in the
// tangent frame of the hit
func (m *CompoundMaterial) perturbNormal(normal, tangent core.Vec3, u, v float64) core.Vec3 {
	texel := m.NormalMap.Sample(u, v, 0)
	local := core.NewVec3(2*texel.R-1, 2*texel.G-1, 2*texel.B-1).Normalize()

	binormal := tangent.Cross(normal)
	world := tangent.Multiply(local.X).
		Add(binormal.Multiply(local.Y)).
		Add(normal.Multiply(local.Z))

	return normal.Lerp(world, clamp01(m.NormalMapInfluence)).Normalize()
}

// aberrate shifts the hue of light refracted into the volume, more so at
// grazing angles
func (m *CompoundMaterial) aberrate(c core.Color, entering bool, cosIncidence float64) core.Color {
	if !entering {
		return c
	}
	return ChangeHue(c, (1+cosIncidence)*m.ColorAberration)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
