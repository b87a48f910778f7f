package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType"`
	GeometryType string         `json:"geometryType"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	TexCoord     [2]float64     `json:"texCoord"`
	Distance     float64        `json:"distance"`
	Properties   map[string]any `json:"properties"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	rgba := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(shader tracer.Shader) (string, map[string]any) {
	properties := make(map[string]any)

	switch m := shader.(type) {
	case *material.CompoundMaterial:
		properties["color"] = hexColor(m.DiffuseColor)
		properties["diffuse"] = m.DiffuseComponent
		properties["specular"] = m.SpecularComponent
		properties["reflection"] = m.ReflectionComponent
		properties["innerReflection"] = m.InnerReflectionComponent
		properties["refraction"] = m.RefractionComponent
		properties["refractionIndex"] = m.RefractionIndex
		properties["colorAberration"] = m.ColorAberration
		properties["textured"] = m.DiffuseTexture != nil
		return "compound", properties

	case *material.Diffuse:
		properties["color"] = hexColor(m.Color)
		properties["attenuation"] = m.Attenuation.String()
		return "diffuse", properties

	case nil:
		return "default", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(surface core.Surface) (string, map[string]any) {
	properties := make(map[string]any)

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Box:
		properties["center"] = vec(geom.Center)
		properties["halfSize"] = vec(geom.Size)
		return "box", properties

	case *geometry.Quad:
		properties["corner"] = vec(geom.Corner)
		properties["u"] = vec(geom.U)
		properties["v"] = vec(geom.V)
		properties["normal"] = vec(geom.Normal)
		return "quad", properties

	case *geometry.Triangle:
		properties["v0"] = vec(geom.V0)
		properties["v1"] = vec(geom.V1)
		properties["v2"] = vec(geom.V2)
		properties["normal"] = vec(geom.GetNormal())
		return "triangle", properties

	case *geometry.Disc:
		properties["center"] = vec(geom.Center)
		properties["normal"] = vec(geom.Normal)
		properties["radius"] = geom.Radius
		return "disc", properties

	default:
		return "unknown", properties
	}
}

// handleInspect casts the ray through one pixel and describes the first
// surface it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := s.parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	rend, err := s.newRenderer(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hit, ok := rend.Scene().NearestHit(rend.PixelRay(pixelX, pixelY))
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	var shader tracer.Shader
	if shaded, ok := hit.Surface.(tracer.Shaded); ok {
		shader = shaded.Shader()
	}
	materialType, materialProps := extractMaterialInfo(shader)
	geometryType, geometryProps := extractGeometryInfo(hit.Surface)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		TexCoord:     [2]float64{hit.TexCoord.X, hit.TexCoord.Y},
		Distance:     hit.Distance,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
