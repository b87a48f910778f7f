package texture

import (
	"fmt"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Image is the decoded pixel grid of a single mip level
type Image struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major, row 0 sampled at v = 0
}

// Provider supplies the decoded mip levels of an image asset. Generating the
// levels is the provider's job.
type Provider interface {
	// Key identifies the asset in a Cache
	Key() string
	MipCount() int
	MipLevel(n int) (Image, error)
	WrapMode() WrapMode
	FilterMode() FilterMode
}

// FromProvider builds a mipmapped texture from every level of p
func FromProvider(p Provider) (*Texture, error) {
	count := p.MipCount()
	if count <= 0 {
		return nil, fmt.Errorf("%w: asset %q has no mip levels", core.ErrInvalidArgument, p.Key())
	}

	levels := make([]*Texture, count)
	for n := range count {
		img, err := p.MipLevel(n)
		if err != nil {
			return nil, fmt.Errorf("failed to read mip level %d of %q: %w", n, p.Key(), err)
		}
		levels[n], err = NewFromPixels(img.Width, img.Height, img.Pixels)
		if err != nil {
			return nil, fmt.Errorf("mip level %d of %q: %w", n, p.Key(), err)
		}
	}

	levels[0].Wrap = p.WrapMode()
	levels[0].Filter = p.FilterMode()
	return NewMipmapped(levels...)
}

// Cache maps asset keys to their decoded mip chains. Entries are built
// lazily on first use and never invalidated, so cached textures are shared
// read-only between goroutines.
type Cache struct {
	mu       sync.Mutex
	textures map[string]*Texture
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{textures: make(map[string]*Texture)}
}

// DefaultCache is the process-wide texture cache used by materials
var DefaultCache = NewCache()

// Get returns the cached texture for p, building it on first use
func (c *Cache) Get(p Provider) (*Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.textures[p.Key()]; ok {
		return t, nil
	}

	t, err := FromProvider(p)
	if err != nil {
		return nil, err
	}
	c.textures[p.Key()] = t
	core.Logger().Debug("texture cached",
		"key", p.Key(), "width", t.Width(), "height", t.Height(), "mips", t.MipCount())
	return t, nil
}

// Len returns the number of cached textures
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}
