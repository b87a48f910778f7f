package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builtin struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Nested glass spheres, a mirror sphere and a glass box on a checkered floor",
		},
		build: NewDefaultScene,
	},
	"nested": {
		info: SceneInfo{
			ID:          "nested",
			DisplayName: "Nested Spheres",
			Description: "Glass around water around a red core",
		},
		build: NewNestedScene,
	},
	"gallery": {
		info: SceneInfo{
			ID:          "gallery",
			DisplayName: "Gallery",
			Description: "A glass sphere on a checkered disc in front of triangular panels",
		},
		build: NewGalleryScene,
	},
	"empty": {
		info: SceneInfo{
			ID:          "empty",
			DisplayName: "Empty Scene",
			Description: "Background only",
		},
		build: NewEmptyScene,
	},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// New builds the built-in scene with the given id
func New(id string) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scene %q", core.ErrInvalidArgument, id)
	}
	s, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", id, err)
	}
	return s, nil
}
