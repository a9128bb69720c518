package main

import "testing"

// gridOf builds a grid from rows of color strings; "" is an empty cell.
func gridOf(rows ...[]string) Grid {
	g := NewGrid(len(rows))
	for y, row := range rows {
		for x, s := range row {
			g[y][x] = MustParseColor(s)
		}
	}
	return g
}

func TestGridClone(t *testing.T) {
	g := NewGrid(3)
	g.Set(1, 1, RGB(1, 2, 3))

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone differs from source")
	}
	c.Set(0, 0, RGB(9, 9, 9))
	if !g.At(0, 0).IsEmpty() {
		t.Error("writing to the clone changed the source")
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(4)
	for _, p := range []point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if g.InBounds(p.X, p.Y) {
			t.Errorf("InBounds(%d,%d) = true", p.X, p.Y)
		}
		g.Set(p.X, p.Y, RGB(1, 1, 1))
		if got := g.At(p.X, p.Y); !got.IsEmpty() {
			t.Errorf("At(%d,%d) = %v outside the grid", p.X, p.Y, got)
		}
	}
}

func TestNewDocument(t *testing.T) {
	d := NewDocument(8)
	if d.Len() != 1 || d.ActiveIndex() != 0 {
		t.Fatalf("new document has %d layers, active %d", d.Len(), d.ActiveIndex())
	}
	l := d.Active()
	if l.ID != "layer-1" || l.Name != "Layer 1" || !l.Visible || l.Opacity != 1 {
		t.Errorf("first layer = %+v", l)
	}
	if l.Data.Size() != 8 {
		t.Errorf("layer size = %d, want 8", l.Data.Size())
	}

	if NewDocument(0).Size() != DefaultCanvasSize {
		t.Error("size 0 did not fall back to the default")
	}
}

func TestDocumentAddLayer(t *testing.T) {
	d := NewDocument(4)
	d.AddLayer()
	l := d.AddLayer()
	if d.Len() != 3 || d.ActiveIndex() != 2 {
		t.Fatalf("len %d active %d, want 3 and 2", d.Len(), d.ActiveIndex())
	}
	if l.ID != "layer-3" {
		t.Errorf("id = %q, want layer-3", l.ID)
	}

	d.RemoveLayer(2)
	if got := d.AddLayer().ID; got != "layer-4" {
		t.Errorf("id after remove = %q, ids must not be reused", got)
	}
}

func TestDocumentRemoveLayer(t *testing.T) {
	tests := []struct {
		name       string
		layers     int
		active     int
		remove     int
		wantLen    int
		wantActive int
	}{
		{"only layer", 1, 0, 0, 1, 0},
		{"out of range", 3, 1, 5, 3, 1},
		{"active top", 3, 2, 2, 2, 1},
		{"active middle", 3, 1, 1, 2, 0},
		{"active bottom", 3, 0, 0, 2, 0},
		{"below active", 3, 2, 0, 2, 1},
		{"above active", 3, 0, 2, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(2)
			for i := 1; i < tt.layers; i++ {
				d.AddLayer()
			}
			d.SetActive(tt.active)
			keep := d.Active()

			d.RemoveLayer(tt.remove)
			if d.Len() != tt.wantLen || d.ActiveIndex() != tt.wantActive {
				t.Errorf("len %d active %d, want %d and %d", d.Len(), d.ActiveIndex(), tt.wantLen, tt.wantActive)
			}
			if tt.remove != tt.active && d.Active() != keep {
				t.Error("active layer changed identity")
			}
		})
	}
}

func TestDocumentMoveLayer(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		from, to   int
		wantOrder  []string
		wantActive int
	}{
		{"move active up", 0, 0, 2, []string{"layer-2", "layer-3", "layer-1"}, 2},
		{"move active down", 2, 2, 0, []string{"layer-3", "layer-1", "layer-2"}, 0},
		{"move below active above it", 1, 0, 2, []string{"layer-2", "layer-3", "layer-1"}, 0},
		{"move above active below it", 1, 2, 0, []string{"layer-3", "layer-1", "layer-2"}, 2},
		{"unrelated swap", 0, 1, 2, []string{"layer-1", "layer-3", "layer-2"}, 0},
		{"same index", 1, 1, 1, []string{"layer-1", "layer-2", "layer-3"}, 1},
		{"out of range", 1, 0, 3, []string{"layer-1", "layer-2", "layer-3"}, 1},
		{"negative", 1, -1, 0, []string{"layer-1", "layer-2", "layer-3"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(2)
			d.AddLayer()
			d.AddLayer()
			d.SetActive(tt.active)
			activeID := d.Active().ID

			d.MoveLayer(tt.from, tt.to)
			for i, id := range tt.wantOrder {
				if d.Layer(i).ID != id {
					t.Fatalf("layer %d = %s, want %s", i, d.Layer(i).ID, id)
				}
			}
			if d.ActiveIndex() != tt.wantActive {
				t.Errorf("active = %d, want %d", d.ActiveIndex(), tt.wantActive)
			}
			if d.Active().ID != activeID {
				t.Errorf("active layer is %s, want %s", d.Active().ID, activeID)
			}
		})
	}
}

func TestDocumentDuplicateLayer(t *testing.T) {
	d := NewDocument(2)
	d.AddLayer()
	d.Layer(0).Data.Set(0, 0, RGB(1, 2, 3))

	d.DuplicateLayer(0)
	if d.Len() != 3 || d.ActiveIndex() != 1 {
		t.Fatalf("len %d active %d, want 3 and 1", d.Len(), d.ActiveIndex())
	}
	dup := d.Layer(1)
	if dup.Name != "Layer 1 copy" || dup.ID == d.Layer(0).ID {
		t.Errorf("duplicate = %q/%q", dup.ID, dup.Name)
	}
	dup.Data.Set(0, 0, RGB(9, 9, 9))
	if d.Layer(0).Data.At(0, 0) != RGB(1, 2, 3) {
		t.Error("duplicate shares cells with its source")
	}
}

func TestDocumentSetOpacityClamps(t *testing.T) {
	d := NewDocument(2)
	d.SetOpacity(0, 1.7)
	if d.Active().Opacity != 1 {
		t.Errorf("opacity = %v, want 1", d.Active().Opacity)
	}
	d.SetOpacity(0, -0.2)
	if d.Active().Opacity != 0 {
		t.Errorf("opacity = %v, want 0", d.Active().Opacity)
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	d := NewDocument(3)
	d.Active().Data.Set(1, 1, RGB(255, 0, 0))

	c := d.Clone()
	if !c.Equal(d) {
		t.Fatal("clone not equal")
	}
	d.Active().Data.Set(1, 1, RGB(0, 255, 0))
	d.Active().Name = "changed"
	if c.Active().Data.At(1, 1) != RGB(255, 0, 0) || c.Active().Name != "Layer 1" {
		t.Error("clone aliases the source document")
	}
}

func TestDocumentCompositeTracksChanges(t *testing.T) {
	d := NewDocument(2)
	if got := d.Composite().At(0, 0); !got.IsEmpty() {
		t.Fatalf("composite = %v, want empty", got)
	}
	d.Active().Data.Set(0, 0, RGB(1, 1, 1))
	d.Touch()
	if got := d.Composite().At(0, 0); got != RGB(1, 1, 1) {
		t.Errorf("composite after touch = %v", got)
	}
	d.ToggleVisibility(0)
	if got := d.Composite().At(0, 0); !got.IsEmpty() {
		t.Errorf("composite after hide = %v, want empty", got)
	}
}
