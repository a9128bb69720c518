package main

import "testing"

func TestFloodFillRegion(t *testing.T) {
	g := gridOf(
		[]string{"#000000", "#000000", "#000000"},
		[]string{"#000000", "#FFFFFF", "#000000"},
		[]string{"#000000", "#000000", "#000000"},
	)
	n := floodFill(g, 0, 0, MustParseColor("#0000FF"))
	if n != 8 {
		t.Errorf("changed %d cells, want 8", n)
	}
	want := gridOf(
		[]string{"#0000FF", "#0000FF", "#0000FF"},
		[]string{"#0000FF", "#FFFFFF", "#0000FF"},
		[]string{"#0000FF", "#0000FF", "#0000FF"},
	)
	if !g.Equal(want) {
		t.Errorf("grid = %v, want %v", g, want)
	}
}

func TestFloodFillIdempotent(t *testing.T) {
	g := NewGrid(4)
	blue := RGB(0, 0, 255)
	floodFill(g, 1, 1, blue)
	before := g.Clone()

	if n := floodFill(g, 2, 3, blue); n != 0 {
		t.Errorf("second fill changed %d cells", n)
	}
	if !g.Equal(before) {
		t.Error("second fill modified the grid")
	}
}

func TestFloodFillStaysConnected(t *testing.T) {
	// Two empty regions split by a wall; diagonal contact does not connect.
	g := gridOf(
		[]string{"", "", "#808080", ""},
		[]string{"", "#808080", "", ""},
		[]string{"#808080", "", "", ""},
		[]string{"", "", "", "#FF0000"},
	)
	floodFill(g, 0, 0, RGB(0, 255, 0))

	want := gridOf(
		[]string{"#00FF00", "#00FF00", "#808080", ""},
		[]string{"#00FF00", "#808080", "", ""},
		[]string{"#808080", "", "", ""},
		[]string{"", "", "", "#FF0000"},
	)
	if !g.Equal(want) {
		t.Errorf("grid = %v, want %v", g, want)
	}
}

func TestFloodFillOutOfBounds(t *testing.T) {
	g := NewGrid(2)
	for _, p := range []point{{-1, 0}, {0, 2}, {5, 5}} {
		if n := floodFill(g, p.X, p.Y, RGB(1, 1, 1)); n != 0 {
			t.Errorf("fill at (%d,%d) changed %d cells", p.X, p.Y, n)
		}
	}
}

func TestFloodFillLargeRegion(t *testing.T) {
	const size = 256
	g := NewGrid(size)
	if n := floodFill(g, size/2, size/2, RGB(1, 2, 3)); n != size*size {
		t.Errorf("changed %d cells, want %d", n, size*size)
	}
}
