package main

// gradientAnchor is the pending first click of the gradient tool.
type gradientAnchor struct {
	X, Y  int
	Color Color
}

// gradientFill paints every cell of g with the linear interpolation from
// start to end, projecting each cell onto the start→end vector. Cells
// behind the start get the start color, cells past the end get the end
// color. A zero-length vector paints the whole grid with the start color.
func gradientFill(g Grid, x0, y0, x1, y1 int, start, end Color) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	lengthSq := dx*dx + dy*dy

	for y := range g {
		for x := range g[y] {
			t := 0.0
			if lengthSq != 0 {
				t = clampUnit((float64(x-x0)*dx + float64(y-y0)*dy) / lengthSq)
			}
			g[y][x] = lerpColor(start, end, t)
		}
	}
}
