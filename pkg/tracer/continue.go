package tracer

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Continuation describes how a shaded point continues the path
type Continuation struct {
	// Normal is the shading normal, already facing the incoming ray. It may
	// differ from the geometric normal, for example under a normal map.
	Normal core.Vec3

	Reflection      float64 // Weight of the reflected contribution for the side being hit
	Refraction      float64 // Weight of the refracted contribution
	RefractionIndex float64 // Index of the medium behind the surface, relative to outside

	// RefractionFilter, when set, adjusts the refracted color before it is
	// weighted. cosIncidence is dot(Normal, ray direction).
	RefractionFilter func(color core.Color, entering bool, cosIncidence float64) core.Color
}

// Continue adds the reflected and refracted contributions of a shaded point
// to its local color and returns the total.
//
// Whether the ray enters or leaves the surface is decided by Entering, that
// is by the geometric normal of hit, even when c.Normal has been perturbed.
// Medium tracking therefore stays consistent with the scene geometry.
//
// Reflection is budgeted by MaxReflections when entering and by
// MaxInnerReflections otherwise; refraction by MaxRefractions. When both are
// possible the refraction continues on a fork of record. Total internal
// reflection is traced as a mirror reflection without touching the
// penetration stack.
func (rt *Raytracer) Continue(ray core.Ray, hit core.HitRecord, record *TraceRecord, local core.Color, c Continuation) core.Color {
	total := local
	if rt.MustInterrupt(total, record) {
		return total
	}

	entering := Entering(hit, ray)

	willReflect := c.Reflection > 0
	if entering {
		willReflect = willReflect && record.NumReflections < rt.config.MaxReflections
	} else {
		willReflect = willReflect && record.NumInnerReflections < rt.config.MaxInnerReflections
	}
	willRefract := c.Refraction > 0 && record.NumRefractions < rt.config.MaxRefractions

	refractionRecord := record
	if willReflect && willRefract {
		refractionRecord = record.Fork()
	}

	if willReflect {
		if entering {
			record.NumReflections++
			record.Counters.Reflections.Add(1)
		} else {
			record.NumInnerReflections++
			record.Counters.InnerReflections.Add(1)
		}

		dir := Reflect(ray.Direction, c.Normal)
		reflected := rt.Trace(core.NewRay(hit.Point.Add(dir.Multiply(PushOutMagnitude)), dir), record)
		total = total.Add(reflected.Scale(c.Reflection))

		if rt.MustInterrupt(total, record) {
			return total
		}
	}

	if willRefract {
		refractionRecord.NumRefractions++
		refractionRecord.Counters.Refractions.Add(1)

		k := c.RefractionIndex
		if entering {
			k = 1 / c.RefractionIndex
		}

		dir, ok := Refract(ray.Direction, c.Normal, k)
		if ok {
			if entering {
				refractionRecord.Push(hit)
			} else {
				rt.exit(hit, refractionRecord)
			}
		} else {
			dir = Reflect(ray.Direction, c.Normal)
		}

		refracted := rt.Trace(core.NewRay(hit.Point.Add(dir.Multiply(PushOutMagnitude)), dir), refractionRecord)
		if c.RefractionFilter != nil {
			refracted = c.RefractionFilter(refracted, entering, c.Normal.Dot(ray.Direction))
		}
		total = total.Add(refracted.Scale(c.Refraction))

		if rt.MustInterrupt(total, refractionRecord) {
			return total
		}
	}

	return total
}

func (rt *Raytracer) exit(hit core.HitRecord, record *TraceRecord) {
	top, ok := record.Pop()
	if !ok {
		core.Logger().Warn("exited a surface with an empty penetration stack", "point", hit.Point)
		return
	}
	if top.Surface != hit.Surface {
		core.Logger().Warn("exited a surface other than the one entered last",
			"point", hit.Point, "depth", record.Depth())
	}
}
