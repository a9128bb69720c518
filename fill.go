package main

type point struct {
	X, Y int
}

// floodFill replaces the 4-connected region of cells matching the color at
// (x, y) with fill and returns the number of cells changed. Cells are
// recolored as they are queued, so each one is visited at most once and the
// work list never grows past the region size.
func floodFill(g Grid, x, y int, fill Color) int {
	if !g.InBounds(x, y) {
		return 0
	}
	target := g[y][x]
	if target == fill {
		return 0
	}

	g[y][x] = fill
	queue := []point{{x, y}}
	changed := 1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		adjacent := [4]point{
			{current.X, current.Y - 1}, // up
			{current.X, current.Y + 1}, // down
			{current.X - 1, current.Y}, // left
			{current.X + 1, current.Y}, // right
		}
		for _, adj := range adjacent {
			if !g.InBounds(adj.X, adj.Y) || g[adj.Y][adj.X] != target {
				continue
			}
			g[adj.Y][adj.X] = fill
			changed++
			queue = append(queue, adj)
		}
	}
	return changed
}
