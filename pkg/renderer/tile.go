package renderer

import "image"

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds in image coordinates
}

// NewTileGrid creates a grid of tiles covering bounds. Tiles on the right
// and bottom edges are cut to fit.
func NewTileGrid(bounds image.Rectangle, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	for y0 := bounds.Min.Y; y0 < bounds.Max.Y; y0 += tileSize {
		for x0 := bounds.Min.X; x0 < bounds.Max.X; x0 += tileSize {
			x1 := min(x0+tileSize, bounds.Max.X)
			y1 := min(y0+tileSize, bounds.Max.Y)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}
