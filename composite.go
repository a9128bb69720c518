package main

// gridMinZoom is the smallest zoom at which grid lines are worth drawing.
const gridMinZoom = 4

// Composite flattens the visible layers bottom to top into a new size×size
// grid. A painted cell of an opaque layer replaces whatever is below it.
// A painted cell of a translucent layer is stored with its alpha scaled by
// the layer opacity, and it also replaces what is below: colors are not
// blended against lower layers.
func Composite(layers []*Layer, size int) Grid {
	out := NewGrid(size)
	for _, l := range layers {
		if !l.Visible {
			continue
		}
		for y := 0; y < size && y < len(l.Data); y++ {
			row := l.Data[y]
			for x := 0; x < size && x < len(row); x++ {
				c := row[x]
				if c.IsEmpty() {
					continue
				}
				if l.Opacity < 1 {
					c = c.WithAlpha(l.Opacity)
				}
				out[y][x] = c
			}
		}
	}
	return out
}

// Surface is a display target for a composite. Implementations own the
// pixels; the engine only tells them what to paint.
type Surface interface {
	// PaintCell paints canvas cell (x, y) with c. It is only called for
	// non-empty cells.
	PaintCell(x, y int, c Color)
	// PaintGrid draws the cell grid for a size×size canvas.
	PaintGrid(size int)
}

// Render paints g onto s, followed by the grid when requested.
func Render(s Surface, g Grid, showGrid bool) {
	for y := range g {
		for x, c := range g[y] {
			if !c.IsEmpty() {
				s.PaintCell(x, y, c)
			}
		}
	}
	if showGrid {
		s.PaintGrid(g.Size())
	}
}
